package access

import "fmt"

// Profile selects which historical rule set the policy engine
// enforces.
type Profile string

const (
	// ProfileStrict is the default rule set: every decision is an
	// exhaustive match over the known roles and an unknown role is
	// denied.
	ProfileStrict Profile = "strict"
	// ProfileLegacy reproduces the earlier rule set: unmatched roles
	// fall open to allow, admins and managers may create users, and a
	// manager creating a user forces manager=creator and role=staff.
	ProfileLegacy Profile = "legacy"
)

// ParseProfile parses a profile name, defaulting to strict for an
// empty value
func ParseProfile(s string) (Profile, error) {
	switch Profile(s) {
	case ProfileStrict, "":
		return ProfileStrict, nil
	case ProfileLegacy:
		return ProfileLegacy, nil
	}
	return "", fmt.Errorf("unknown policy profile %q", s)
}
