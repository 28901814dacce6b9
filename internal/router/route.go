package router

import "strings"

// Route is a console screen. Pattern segments starting with ':' match any
// single path segment; "**" matches everything and is only used as the
// fallback.
type Route struct {
	Name       string
	Pattern    string
	RedirectTo string
	Roles      []string
	Guards     []Guard
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// match reports whether path fits the pattern and returns the captured
// parameters.
func (r *Route) match(path string) (map[string]string, bool) {
	if r.Pattern == "**" {
		return nil, true
	}
	want := splitPath(r.Pattern)
	got := splitPath(path)
	if len(want) != len(got) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range want {
		if strings.HasPrefix(seg, ":") {
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:]] = got[i]
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}
