package mapper

import (
	"errors"
	"testing"

	"japan-address-api/internal/apperror"
	"japan-address-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marunouchi() models.RawRecord {
	return models.RawRecord{
		"pref_code": "13",
		"pref":      "東京都",
		"city_code": "13101",
		"city":      "千代田区",
		"town_id":   "0001001",
		"town":      "丸の内一丁目",
		"koaza":     "",
		"lat":       "35.681236",
		"lng":       "139.767125",
	}
}

func TestMapRecord(t *testing.T) {
	record, err := MapRecord(marunouchi(), 0)
	require.NoError(t, err)

	assert.Equal(t, models.AddressRecord{
		PrefCode:  "13",
		PrefName:  "東京都",
		CityCode:  "13101",
		CityName:  "千代田区",
		TownCode:  "0001001",
		TownName:  "丸の内一丁目",
		Koaza:     "",
		Latitude:  35.681236,
		Longitude: 139.767125,
	}, record)
}

func TestMapRecord_MissingKoazaIsEmpty(t *testing.T) {
	raw := marunouchi()
	delete(raw, "koaza")

	record, err := MapRecord(raw, 0)
	require.NoError(t, err)
	assert.Equal(t, "", record.Koaza)

	raw["koaza"] = "字東"
	record, err = MapRecord(raw, 0)
	require.NoError(t, err)
	assert.Equal(t, "字東", record.Koaza)
}

func TestMapRecord_ValidationErrors(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(r models.RawRecord)
		expectedField string
	}{
		{name: "lat not a number", mutate: func(r models.RawRecord) { r["lat"] = "not-a-number" }, expectedField: "lat"},
		{name: "lng not a number", mutate: func(r models.RawRecord) { r["lng"] = "east" }, expectedField: "lng"},
		{name: "lat NaN", mutate: func(r models.RawRecord) { r["lat"] = "NaN" }, expectedField: "lat"},
		{name: "lat out of range", mutate: func(r models.RawRecord) { r["lat"] = "135.0" }, expectedField: "lat"},
		{name: "missing lat", mutate: func(r models.RawRecord) { delete(r, "lat") }, expectedField: "lat"},
		{name: "missing city code", mutate: func(r models.RawRecord) { r["city_code"] = " " }, expectedField: "city_code"},
		{name: "missing town id", mutate: func(r models.RawRecord) { delete(r, "town_id") }, expectedField: "town_id"},
		{name: "pref code too long", mutate: func(r models.RawRecord) { r["pref_code"] = "130" }, expectedField: "pref_code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := marunouchi()
			tt.mutate(raw)

			_, err := MapRecord(raw, 7)
			require.Error(t, err)

			var validationErr *apperror.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.expectedField, validationErr.Field)
			assert.Equal(t, 7, validationErr.Row)
		})
	}
}

func TestMapRecords(t *testing.T) {
	second := marunouchi()
	second["town_id"] = "0001002"
	second["town"] = "丸の内二丁目"

	records, err := MapRecords([]models.RawRecord{marunouchi(), second})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "0001002", records[1].TownCode)

	bad := marunouchi()
	bad["lat"] = "not-a-number"
	records, err = MapRecords([]models.RawRecord{marunouchi(), bad})
	assert.Nil(t, records)

	var validationErr *apperror.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, 1, validationErr.Row)
}
