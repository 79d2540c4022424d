package models

import "testing"

func TestAccessLevelOrdering(t *testing.T) {
	ordered := []AccessLevel{AccessGuest, AccessReporter, AccessDeveloper, AccessMaintainer, AccessOwner}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("%s should rank below %s", ordered[i-1], ordered[i])
		}
	}
}

func TestAccessLevelExternalRoundTrip(t *testing.T) {
	for _, l := range []AccessLevel{AccessGuest, AccessReporter, AccessDeveloper, AccessMaintainer, AccessOwner} {
		n, err := ExternalAccessLevel(l)
		if err != nil {
			t.Fatalf("ExternalAccessLevel(%s): %v", l, err)
		}
		back, err := AccessLevelFromExternal(n)
		if err != nil {
			t.Fatalf("AccessLevelFromExternal(%d): %v", n, err)
		}
		if back != l {
			t.Errorf("round trip for %s: got %s", l, back)
		}
	}
}

func TestAccessLevelExternalMapping(t *testing.T) {
	cases := []struct {
		level    AccessLevel
		external int
	}{
		{AccessGuest, 10},
		{AccessReporter, 20},
		{AccessDeveloper, 30},
		{AccessMaintainer, 40},
		{AccessOwner, 50},
	}
	for _, tc := range cases {
		n, err := ExternalAccessLevel(tc.level)
		if err != nil {
			t.Fatalf("ExternalAccessLevel(%s): %v", tc.level, err)
		}
		if n != tc.external {
			t.Errorf("ExternalAccessLevel(%s): got %d, want %d", tc.level, n, tc.external)
		}
	}
}

func TestAccessLevelFromExternalRejectsUnknown(t *testing.T) {
	for _, n := range []int{0, 5, 15, 25, 45, 60, -10} {
		if _, err := AccessLevelFromExternal(n); err == nil {
			t.Errorf("AccessLevelFromExternal(%d): expected error", n)
		}
	}
}

func TestExternalAccessLevelRejectsInvalid(t *testing.T) {
	for _, l := range []AccessLevel{0, 6, -1} {
		if _, err := ExternalAccessLevel(l); err == nil {
			t.Errorf("ExternalAccessLevel(%d): expected error", int(l))
		}
	}
}

func TestParseAccessLevel(t *testing.T) {
	for _, l := range []AccessLevel{AccessGuest, AccessReporter, AccessDeveloper, AccessMaintainer, AccessOwner} {
		parsed, err := ParseAccessLevel(l.String())
		if err != nil {
			t.Fatalf("ParseAccessLevel(%q): %v", l.String(), err)
		}
		if parsed != l {
			t.Errorf("ParseAccessLevel(%q): got %s", l.String(), parsed)
		}
	}
	if _, err := ParseAccessLevel("superuser"); err == nil {
		t.Error("ParseAccessLevel(superuser): expected error")
	}
}

func TestValidVisibility(t *testing.T) {
	for _, v := range []string{VisibilityPrivate, VisibilityInternal, VisibilityPublic} {
		if !ValidVisibility(v) {
			t.Errorf("ValidVisibility(%q): got false", v)
		}
	}
	for _, v := range []string{"", "secret", "Private"} {
		if ValidVisibility(v) {
			t.Errorf("ValidVisibility(%q): got true", v)
		}
	}
}
