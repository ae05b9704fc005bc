package geo

import "kraal-bknd/internal/models"

// Province is a registry entry: code, display name, and a centroid used by
// coverage previews to place a simulated buyer in a province.
type Province struct {
	Code     string            `json:"code"`
	Name     string            `json:"name"`
	Centroid models.Coordinate `json:"centroid"`
}

// Country is a registry entry for a supported market.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Provinces lists the South African provinces in code order.
var Provinces = []Province{
	{Code: "EC", Name: "Eastern Cape", Centroid: models.Coordinate{Lat: -32.2968, Lng: 26.4194}},
	{Code: "FS", Name: "Free State", Centroid: models.Coordinate{Lat: -28.4541, Lng: 26.7968}},
	{Code: "GP", Name: "Gauteng", Centroid: models.Coordinate{Lat: -26.2708, Lng: 28.1123}},
	{Code: "KZN", Name: "KwaZulu-Natal", Centroid: models.Coordinate{Lat: -28.5306, Lng: 30.8958}},
	{Code: "LP", Name: "Limpopo", Centroid: models.Coordinate{Lat: -23.4013, Lng: 29.4179}},
	{Code: "MP", Name: "Mpumalanga", Centroid: models.Coordinate{Lat: -25.5653, Lng: 30.5279}},
	{Code: "NC", Name: "Northern Cape", Centroid: models.Coordinate{Lat: -29.0467, Lng: 21.8569}},
	{Code: "NW", Name: "North West", Centroid: models.Coordinate{Lat: -26.6639, Lng: 25.2838}},
	{Code: "WC", Name: "Western Cape", Centroid: models.Coordinate{Lat: -33.2278, Lng: 21.8569}},
}

// Countries lists the markets the platform trades in.
var Countries = []Country{
	{Code: "ZA", Name: "South Africa"},
	{Code: "BW", Name: "Botswana"},
	{Code: "LS", Name: "Lesotho"},
	{Code: "MZ", Name: "Mozambique"},
	{Code: "NA", Name: "Namibia"},
	{Code: "SZ", Name: "Eswatini"},
	{Code: "ZM", Name: "Zambia"},
	{Code: "ZW", Name: "Zimbabwe"},
}

// ProvinceName returns the display name for a province code, or the code
// itself when unknown.
func ProvinceName(code string) string {
	for _, p := range Provinces {
		if p.Code == code {
			return p.Name
		}
	}
	return code
}

// ProvinceCentroid returns the centroid for a province code. The second
// return is false when the code is unknown.
func ProvinceCentroid(code string) (models.Coordinate, bool) {
	for _, p := range Provinces {
		if p.Code == code {
			return p.Centroid, true
		}
	}
	return models.Coordinate{}, false
}

// CountryName returns the display name for a country code, or the code
// itself when unknown.
func CountryName(code string) string {
	for _, c := range Countries {
		if c.Code == code {
			return c.Name
		}
	}
	return code
}
