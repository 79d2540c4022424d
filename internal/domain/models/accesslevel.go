// internal/domain/models/accesslevel.go
package models

import "fmt"

// AccessLevel is the ordered permission tier a member holds within a group.
// The ordering matters: a higher level strictly includes the rights of the
// levels below it.
type AccessLevel int

const (
	AccessGuest AccessLevel = iota + 1
	AccessReporter
	AccessDeveloper
	AccessMaintainer
	AccessOwner
)

var accessLevelNames = map[AccessLevel]string{
	AccessGuest:      "guest",
	AccessReporter:   "reporter",
	AccessDeveloper:  "developer",
	AccessMaintainer: "maintainer",
	AccessOwner:      "owner",
}

// Valid reports whether l is one of the defined access levels.
func (l AccessLevel) Valid() bool {
	_, ok := accessLevelNames[l]
	return ok
}

func (l AccessLevel) String() string {
	if s, ok := accessLevelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("access_level(%d)", int(l))
}

// ParseAccessLevel converts a name ("guest" … "owner") to an AccessLevel.
func ParseAccessLevel(s string) (AccessLevel, error) {
	for l, name := range accessLevelNames {
		if name == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown access level %q", s)
}

// The external platform expresses access levels on its own numeric scale.
// The mapping must stay bijective for the levels both systems support;
// anything outside that intersection is rejected.
const (
	externalGuest      = 10
	externalReporter   = 20
	externalDeveloper  = 30
	externalMaintainer = 40
	externalOwner      = 50
)

// ExternalAccessLevel translates a local level to the external platform's
// numeric scale.
func ExternalAccessLevel(l AccessLevel) (int, error) {
	switch l {
	case AccessGuest:
		return externalGuest, nil
	case AccessReporter:
		return externalReporter, nil
	case AccessDeveloper:
		return externalDeveloper, nil
	case AccessMaintainer:
		return externalMaintainer, nil
	case AccessOwner:
		return externalOwner, nil
	}
	return 0, fmt.Errorf("access level %d has no external equivalent", int(l))
}

// AccessLevelFromExternal translates the external platform's numeric scale
// to a local level.
func AccessLevelFromExternal(n int) (AccessLevel, error) {
	switch n {
	case externalGuest:
		return AccessGuest, nil
	case externalReporter:
		return AccessReporter, nil
	case externalDeveloper:
		return AccessDeveloper, nil
	case externalMaintainer:
		return AccessMaintainer, nil
	case externalOwner:
		return AccessOwner, nil
	}
	return 0, fmt.Errorf("external access level %d has no local equivalent", n)
}
