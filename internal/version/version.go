package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a validated dot-separated version string. This is a policy
// check, not full semantic versioning: 2 or 3 components, each non-empty
// and made of ASCII alphanumerics or hyphens. Anything a package manifest
// would reasonably pin ("1.0.0", "2.1", "1.0.0-beta1") passes; pre-release
// and build metadata are not distinguished.
type Version struct {
	raw        string
	components []string
}

// Parse validates s and returns its parsed form.
func Parse(s string) (Version, error) {
	components := strings.Split(s, ".")
	if len(components) < 2 || len(components) > 3 {
		return Version{}, fmt.Errorf("version %q must have 2 or 3 dot-separated components, got %d", s, len(components))
	}

	for _, component := range components {
		if component == "" {
			return Version{}, fmt.Errorf("version %q contains an empty component", s)
		}
		for _, c := range component {
			if !isVersionChar(c) {
				return Version{}, fmt.Errorf("version %q contains invalid character %q", s, c)
			}
		}
	}

	return Version{raw: s, components: components}, nil
}

// MustParse is Parse for inputs known valid; it panics otherwise.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func isVersionChar(c rune) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c == '-':
		return true
	default:
		return false
	}
}

// String returns the original validated string.
func (v Version) String() string {
	return v.raw
}

// Major returns the leading component as an integer. A non-numeric leading
// component yields 0; callers depend on this fallback for jump detection,
// so it is contract, not accident.
func (v Version) Major() int {
	if len(v.components) == 0 {
		return 0
	}
	major, err := strconv.Atoi(v.components[0])
	if err != nil {
		return 0
	}
	return major
}

// IsMajorJump reports whether target's major component strictly exceeds
// current's. Downgrades and equal majors are never a jump.
func IsMajorJump(current, target Version) bool {
	return target.Major() > current.Major()
}
