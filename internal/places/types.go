package places

import (
	"maps-compat-service/internal/categories"
	"maps-compat-service/internal/domain"
)

// LegacyTypes maps the backend's coarse result classification to the
// legacy type-tag list. Point-of-interest results are refined through the
// category mapper; everything else is a fixed tag set.
func LegacyTypes(p domain.NormalizedPlace) []string {
	switch p.ResultType {
	case domain.ResultCountry:
		return []string{"country", "political"}
	case domain.ResultRegion:
		return []string{"administrative_area_level_1", "political"}
	case domain.ResultSubRegion:
		return []string{"administrative_area_level_2", "political"}
	case domain.ResultLocality:
		return []string{"locality", "political"}
	case domain.ResultPostalCode:
		return []string{"postal_code"}
	case domain.ResultDistrict:
		return []string{"sublocality", "political"}
	case domain.ResultStreet:
		return []string{"route"}
	case domain.ResultPointAddress:
		return []string{"street_address"}
	case domain.ResultPointOfInterest:
		return poiTypes(p.Categories)
	default:
		return []string{"point_of_interest", "establishment"}
	}
}

func poiTypes(backendCategories []string) []string {
	types := make([]string, 0, len(backendCategories)+2)
	seen := make(map[string]struct{}, len(backendCategories))

	for _, id := range backendCategories {
		t, ok := categories.ToLegacyType(id)
		if !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}

	return append(types, "point_of_interest", "establishment")
}
