// Package versioning bumps dotted version strings.
package versioning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DefaultIncrement bumps the major version.
const DefaultIncrement = "1.0.0"

var ErrZeroIncrement = errors.New("increment has no non-zero component")

// Increment adds increment to current. Only the most significant non-zero
// component of increment counts: it is added to the same component of
// current and every less significant component is reset to zero, so
// "1.2.3" + "0.1.0" is "1.3.0". A leading "v" on current is kept.
func Increment(current, increment string) (string, error) {
	if increment == "" {
		increment = DefaultIncrement
	}
	cur, err := semver.NewVersion(current)
	if err != nil {
		return "", fmt.Errorf("parse version %q: %w", current, err)
	}
	inc, err := semver.NewVersion(increment)
	if err != nil {
		return "", fmt.Errorf("parse increment %q: %w", increment, err)
	}

	var next *semver.Version
	switch {
	case inc.Major() > 0:
		next = semver.New(cur.Major()+inc.Major(), 0, 0, "", "")
	case inc.Minor() > 0:
		next = semver.New(cur.Major(), cur.Minor()+inc.Minor(), 0, "", "")
	case inc.Patch() > 0:
		next = semver.New(cur.Major(), cur.Minor(), cur.Patch()+inc.Patch(), "", "")
	default:
		return "", fmt.Errorf("%w: %q", ErrZeroIncrement, increment)
	}

	if strings.HasPrefix(cur.Original(), "v") {
		return "v" + next.String(), nil
	}
	return next.String(), nil
}
