package github

import "strings"

// NextPageURL returns the target of the rel="next" link in a Link header,
// or "" when there is none.
//
// rel is matched as a whole token: rel="nextpage" is not a next link, while
// rel="next last" is.
func NextPageURL(header string) string {
	for _, segment := range strings.Split(header, ",") {
		parts := strings.Split(strings.TrimSpace(segment), ";")
		if len(parts) < 2 {
			continue
		}

		target := strings.TrimSpace(parts[0])
		if len(target) < 2 || target[0] != '<' || target[len(target)-1] != '>' {
			continue
		}

		for _, param := range parts[1:] {
			name, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(name), "rel") {
				continue
			}
			if hasRelToken(value, "next") {
				return target[1 : len(target)-1]
			}
		}
	}
	return ""
}

func hasRelToken(value, token string) bool {
	value = strings.Trim(strings.TrimSpace(value), `"`)
	for _, rel := range strings.Fields(value) {
		if strings.EqualFold(rel, token) {
			return true
		}
	}
	return false
}
