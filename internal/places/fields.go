// Package places converts normalized backend place records into the two
// legacy result shapes: the flat field-filtered result and the newer
// class-based result.
package places

// Sentinels accepted in a field list to request every field.
const (
	FieldAll      = "ALL"
	FieldWildcard = "*"
)

// FieldSet is a request's normalized field filter, built once per call so
// membership tests are set lookups rather than repeated list scans.
type FieldSet struct {
	all    bool
	fields map[string]struct{}
}

// NewFieldSet normalizes a requested field list. A nil/empty list or an
// all-fields sentinel selects every field.
func NewFieldSet(requested []string) FieldSet {
	if len(requested) == 0 {
		return FieldSet{all: true}
	}

	fs := FieldSet{fields: make(map[string]struct{}, len(requested))}
	for _, f := range requested {
		if f == FieldAll || f == FieldWildcard {
			return FieldSet{all: true}
		}
		fs.fields[f] = struct{}{}
	}
	return fs
}

// Has reports whether a field was requested.
func (fs FieldSet) Has(name string) bool {
	if fs.all {
		return true
	}
	_, ok := fs.fields[name]
	return ok
}
