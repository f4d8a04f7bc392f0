// Package mapper converts parsed dataset rows into address records.
package mapper

import (
	"math"
	"strconv"
	"strings"

	"japan-address-api/internal/apperror"
	"japan-address-api/internal/models"
)

// Column names of the open address dataset.
const (
	FieldPrefCode = "pref_code"
	FieldPref     = "pref"
	FieldCityCode = "city_code"
	FieldCity     = "city"
	FieldTownID   = "town_id"
	FieldTown     = "town"
	FieldKoaza    = "koaza"
	FieldLat      = "lat"
	FieldLng      = "lng"
)

var requiredFields = []string{FieldPrefCode, FieldCityCode, FieldCity, FieldTownID, FieldLat, FieldLng}

// MapRecord converts the row at position row into an AddressRecord.
// A missing koaza maps to the empty string.
func MapRecord(raw models.RawRecord, row int) (models.AddressRecord, error) {
	for _, field := range requiredFields {
		if strings.TrimSpace(raw[field]) == "" {
			return models.AddressRecord{}, &apperror.ValidationError{Row: row, Field: field, Reason: "required field is missing"}
		}
	}

	prefCode := strings.TrimSpace(raw[FieldPrefCode])
	if len(prefCode) != 2 {
		return models.AddressRecord{}, &apperror.ValidationError{
			Row: row, Field: FieldPrefCode, Value: prefCode, Reason: "must be 2 characters",
		}
	}

	lat, err := parseCoordinate(raw, FieldLat, row, 90)
	if err != nil {
		return models.AddressRecord{}, err
	}
	lng, err := parseCoordinate(raw, FieldLng, row, 180)
	if err != nil {
		return models.AddressRecord{}, err
	}

	return models.AddressRecord{
		PrefCode:  prefCode,
		PrefName:  strings.TrimSpace(raw[FieldPref]),
		CityCode:  strings.TrimSpace(raw[FieldCityCode]),
		CityName:  strings.TrimSpace(raw[FieldCity]),
		TownCode:  strings.TrimSpace(raw[FieldTownID]),
		TownName:  strings.TrimSpace(raw[FieldTown]),
		Koaza:     strings.TrimSpace(raw[FieldKoaza]),
		Latitude:  lat,
		Longitude: lng,
	}, nil
}

// MapRecords maps every row, stopping at the first invalid one.
func MapRecords(raws []models.RawRecord) ([]models.AddressRecord, error) {
	records := make([]models.AddressRecord, 0, len(raws))
	for i, raw := range raws {
		record, err := MapRecord(raw, i)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func parseCoordinate(raw models.RawRecord, field string, row int, limit float64) (float64, error) {
	value := strings.TrimSpace(raw[field])
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &apperror.ValidationError{Row: row, Field: field, Value: value, Reason: "not a number"}
	}
	if f < -limit || f > limit {
		return 0, &apperror.ValidationError{Row: row, Field: field, Value: value, Reason: "out of range"}
	}
	return f, nil
}
