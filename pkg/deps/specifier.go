package deps

import "strings"

// operatorChars are the version-comparison characters that end the name
// segment of a requirement specifier.
const operatorChars = "~=><!"

// BareName reduces a raw requirement specifier to its bare package name.
//
// The name segment ends at the first extras bracket ("["), environment
// marker (";") or version operator character, whichever comes first.
// Malformed input yields a best-effort name, possibly empty; it is never
// an error.
func BareName(spec string) string {
	name := spec
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := strings.IndexByte(name, ';'); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, operatorChars); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// FilterSpecs returns the specifiers whose bare name contains substr,
// case-insensitively. An empty substr keeps the whole list. Entries are
// returned verbatim and order is preserved.
func FilterSpecs(specs []string, substr string) []string {
	if substr == "" {
		return specs
	}

	needle := strings.ToLower(substr)
	var matched []string
	for _, spec := range specs {
		if strings.Contains(strings.ToLower(BareName(spec)), needle) {
			matched = append(matched, spec)
		}
	}
	return matched
}
