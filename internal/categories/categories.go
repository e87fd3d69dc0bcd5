// Package categories maps between the legacy place-type taxonomy and the
// backend's category identifiers.
//
// The tables are static program data: a direct list for types spelled the
// same on both sides, and a many-valued table for the rest (first entry is
// the most generic backend category). The reverse table is derived once at
// startup and never mutated, so unsynchronized concurrent reads are safe.
package categories

import "sort"

// Types spelled identically in both taxonomies.
var direct = []string{
	"airport",
	"atm",
	"bank",
	"casino",
	"cemetery",
	"hospital",
	"library",
	"museum",
	"parking",
	"pharmacy",
	"restaurant",
	"stadium",
	"zoo",
}

// Legacy type -> ordered backend category identifiers. A nil value is an
// explicit "no backend equivalent" and must stay out of category filters.
var mapped = map[string][]string{
	"accounting":              {"700-7900-0131"},
	"amusement_park":          {"550-5520-0207"},
	"aquarium":                {"550-5520-0207", "300-3200-0309"},
	"art_gallery":             {"300-3000-0024"},
	"bakery":                  {"600-6300-0244"},
	"bar":                     {"200-2000-0011", "200-2000-0013"},
	"beauty_salon":            {"600-6950-0399"},
	"bicycle_store":           {"600-6600-0077"},
	"book_store":              {"600-6700-0087"},
	"bowling_alley":           {"800-8500-0178"},
	"bus_station":             {"400-4100-0036"},
	"cafe":                    {"100-1100-0010", "100-1100-0331"},
	"campground":              {"550-5510-0378"},
	"car_dealer":              {"600-6000-0061"},
	"car_rental":              {"700-7851-0117"},
	"car_repair":              {"700-7850-0118"},
	"car_wash":                {"700-7850-0119"},
	"church":                  {"300-3200-0030", "300-3200-0031"},
	"city_hall":               {"800-8100-0163"},
	"clothing_store":          {"600-6800-0089"},
	"convenience_store":       {"600-6000-0062"},
	"courthouse":              {"800-8100-0164"},
	"dentist":                 {"800-8720-0182"},
	"department_store":        {"600-6100-0064"},
	"doctor":                  {"800-8000-0159"},
	"electronics_store":       {"600-6500-0072"},
	"embassy":                 {"800-8100-0165"},
	"establishment":           nil,
	"finance":                 {"700-7000-0107"},
	"fire_station":            {"800-8200-0173"},
	"florist":                 {"600-6900-0097"},
	"food":                    {"100"},
	"funeral_home":            {"800-8400-0176"},
	"furniture_store":         {"600-6900-0098"},
	"gas_station":             {"700-7600-0116"},
	"general_contractor":      nil,
	"grocery_or_supermarket":  {"600-6300-0066"},
	"gym":                     {"800-8600-0193"},
	"hair_care":               {"600-6950-0399"},
	"hardware_store":          {"600-6600-0076"},
	"health":                  {"800-8000"},
	"hindu_temple":            {"300-3200-0033"},
	"home_goods_store":        {"600-6900-0096"},
	"insurance_agency":        {"700-7000-0108"},
	"jewelry_store":           {"600-6900-0102"},
	"laundry":                 {"700-7400-0133"},
	"lawyer":                  {"700-7900-0132"},
	"liquor_store":            {"600-6300-0068"},
	"local_government_office": {"800-8100-0163"},
	"lodging":                 {"500-5000-0000", "500-5000-0053", "500-5100-0055"},
	"meal_delivery":           {"100-1000-0009"},
	"meal_takeaway":           {"100-1000-0009"},
	"mosque":                  {"300-3200-0032"},
	"movie_theater":           {"200-2100-0019"},
	"moving_company":          {"700-7500-0274"},
	"night_club":              {"200-2000-0014"},
	"painter":                 nil,
	"park":                    {"550-5510-0202"},
	"pet_store":               {"600-6900-0103"},
	"place_of_worship":        {"300-3200"},
	"point_of_interest":       nil,
	"police":                  {"700-7300-0111"},
	"post_office":             {"700-7450-0114"},
	"premise":                 nil,
	"real_estate_agency":      {"700-7200-0254"},
	"school":                  {"800-8200-0174"},
	"shoe_store":              {"600-6800-0090"},
	"shopping_mall":           {"600-6100-0062"},
	"spa":                     {"550-5520-0339"},
	"store":                   {"600"},
	"subway_station":          {"400-4100-0041"},
	"supermarket":             {"600-6300-0066"},
	"synagogue":               {"300-3200-0034"},
	"taxi_stand":              {"400-4100-0346"},
	"tourist_attraction":      {"300-3000-0023"},
	"train_station":           {"400-4100-0035"},
	"travel_agency":           {"700-7550-0140"},
	"university":              {"800-8200-0173"},
	"veterinary_care":         {"800-8000-0325"},
}

var directSet map[string]struct{}

// Backend category -> legacy type, built by inverting mapped (plus the
// direct list). Collisions resolve last-write-wins over the sorted legacy
// types, so the winner is the same on every process start; reverse lookups
// only need an approximate mapping.
var reverse map[string]string

func init() {
	directSet = make(map[string]struct{}, len(direct))
	reverse = make(map[string]string, len(mapped)+len(direct))

	for _, t := range direct {
		directSet[t] = struct{}{}
		reverse[t] = t
	}

	types := make([]string, 0, len(mapped))
	for t := range mapped {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, legacyType := range types {
		for _, id := range mapped[legacyType] {
			reverse[id] = legacyType
		}
	}
}

// ToBackendCategories returns the full backend category list for a legacy
// type, for building inclusion filters. Nil means no backend equivalent.
func ToBackendCategories(legacyType string) []string {
	if _, ok := directSet[legacyType]; ok {
		return []string{legacyType}
	}
	ids, ok := mapped[legacyType]
	if !ok {
		return nil
	}
	return ids
}

// ToBackendCategory returns the most generic backend category for a legacy
// type, for single-value contexts.
func ToBackendCategory(legacyType string) (string, bool) {
	ids := ToBackendCategories(legacyType)
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// ToLegacyType reverse-maps a backend category identifier.
func ToLegacyType(backendCategory string) (string, bool) {
	t, ok := reverse[backendCategory]
	return t, ok
}
