package annotations

// docTags are the conventional documentation tags. They are never resolved
// as annotation kinds.
var docTags = map[string]struct{}{
	"abstract":   {},
	"access":     {},
	"author":     {},
	"copyright":  {},
	"deprecated": {},
	"deprec":     {},
	"example":    {},
	"exception":  {},
	"global":     {},
	"ignore":     {},
	"internal":   {},
	"param":      {},
	"return":     {},
	"link":       {},
	"name":       {},
	"magic":      {},
	"package":    {},
	"see":        {},
	"since":      {},
	"static":     {},
	"staticvar":  {},
	"subpackage": {},
	"throws":     {},
	"todo":       {},
	"var":        {},
	"version":    {},
}

// IsDocTag reports whether name is a conventional documentation tag.
// Matching is exact and case-sensitive.
func IsDocTag(name string) bool {
	_, ok := docTags[name]
	return ok
}

// DocTags returns the conventional documentation tag names
func DocTags() []string {
	names := make([]string, 0, len(docTags))
	for name := range docTags {
		names = append(names, name)
	}
	return names
}
