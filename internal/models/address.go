package models

// RawRecord is one parsed row of the address dataset, keyed by header name.
type RawRecord map[string]string

// AddressRecord is a mapped row ready to be written to storage.
type AddressRecord struct {
	PrefCode  string  `json:"pref_code"`
	PrefName  string  `json:"pref"`
	CityCode  string  `json:"city_code"`
	CityName  string  `json:"city"`
	TownCode  string  `json:"town_code"`
	TownName  string  `json:"town"`
	Koaza     string  `json:"koaza"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// City returns the city reference entity the record points at.
func (r AddressRecord) City() City {
	return City{Code: r.CityCode, Name: r.CityName, PrefCode: r.PrefCode}
}

// Address is a stored address row joined with its prefecture and city names.
type Address struct {
	ID        int64   `json:"id"`
	PrefCode  string  `json:"pref_code"`
	PrefName  string  `json:"pref"`
	CityCode  string  `json:"city_code"`
	CityName  string  `json:"city"`
	TownCode  string  `json:"town_code"`
	TownName  string  `json:"town"`
	Koaza     string  `json:"koaza"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// City is a municipality keyed by its administrative code.
type City struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	PrefCode string `json:"prefCode"`
}

// PrefectureCount is the number of stored addresses in one prefecture.
type PrefectureCount struct {
	PrefCode string `json:"prefCode"`
	PrefName string `json:"prefName"`
	Count    int64  `json:"count"`
}

// CityCount is the number of stored addresses in one city.
type CityCount struct {
	CityCode string `json:"cityCode"`
	CityName string `json:"cityName"`
	Count    int64  `json:"count"`
}
