package gig

// Categories is the closed set of labels a gig can be filed under.
var Categories = []string{
	"Design",
	"Development",
	"Writing",
	"Marketing",
	"Video & Animation",
	"Music & Audio",
	"Business",
}

// IsCategory reports whether s is one of Categories. Matching is exact.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}
