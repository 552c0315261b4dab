// Package version implements epoch semantic versioning: a four-component
// version whose epoch is folded into the serialized major component as
// epoch*1000+major. An epoch bump marks a sweeping architectural change,
// senior to a regular major bump.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mskaar/pensum/internal/conventional"
)

// Version is an epoch semantic version. The semantic major must stay in
// [0, 999] for the epoch encoding to round-trip; Bump enforces this.
type Version struct {
	Epoch int
	Major int
	Minor int
	Patch int
}

// Parse splits a serialized version like "1002.3.4" into its components
// (epoch 1, major 2, minor 3, patch 4). A string with the wrong component
// count or non-numeric components is a precondition violation and fails
// loudly.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %q", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version component %q in %q", p, s)
		}
		nums[i] = n
	}

	return Version{
		Epoch: nums[0] / 1000,
		Major: nums[0] % 1000,
		Minor: nums[1],
		Patch: nums[2],
	}, nil
}

// String serializes the version back to the epoch-folded form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Epoch*1000+v.Major, v.Minor, v.Patch)
}

// Bump returns the next version for the given magnitude, zeroing every
// lower-order component. BumpNone is not a valid request: callers must
// decide first whether a bump is needed at all. A major bump past 999
// would corrupt the epoch encoding and is rejected.
func (v Version) Bump(bt conventional.BumpType) (Version, error) {
	switch bt {
	case conventional.BumpPatch:
		v.Patch++
	case conventional.BumpMinor:
		v.Minor++
		v.Patch = 0
	case conventional.BumpMajor:
		if v.Major >= 999 {
			return Version{}, fmt.Errorf("major version %d cannot grow past 999; bump the epoch instead", v.Major)
		}
		v.Major++
		v.Minor = 0
		v.Patch = 0
	case conventional.BumpEpoch:
		v.Epoch++
		v.Major = 0
		v.Minor = 0
		v.Patch = 0
	default:
		return Version{}, fmt.Errorf("invalid bump type: %s", bt)
	}
	return v, nil
}
