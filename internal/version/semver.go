package version

import (
	"strconv"
	"strings"
)

// release is a parsed "vMAJOR.MINOR.PATCH[-pre][+build]" tag.
type release struct {
	core [3]int
	pre  string
}

// IsOutdated reports whether the running build is older than the latest
// published release. Unparseable versions (e.g. "dev") never count as
// outdated.
func IsOutdated(current, latest string) bool {
	cur, ok := parseRelease(current)
	if !ok {
		return false
	}
	lat, ok := parseRelease(latest)
	if !ok {
		return false
	}
	return compare(cur, lat) < 0
}

func compare(a, b release) int {
	for i := range a.core {
		if a.core[i] != b.core[i] {
			if a.core[i] < b.core[i] {
				return -1
			}
			return 1
		}
	}
	// A pre-release sorts before the release it precedes.
	switch {
	case a.pre == b.pre:
		return 0
	case a.pre == "":
		return 1
	case b.pre == "":
		return -1
	case a.pre < b.pre:
		return -1
	default:
		return 1
	}
}

func parseRelease(v string) (release, bool) {
	s := strings.TrimLeft(strings.TrimSpace(v), "vV")
	if s == "" {
		return release{}, false
	}
	s, _, _ = strings.Cut(s, "+")
	s, pre, _ := strings.Cut(s, "-")

	var r release
	r.pre = pre
	for i, part := range strings.SplitN(s, ".", 3) {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return release{}, false
		}
		r.core[i] = n
	}
	return r, true
}
