package domain

import "testing"

func TestResolveOrgID(t *testing.T) {
	cases := []struct {
		userID string
		want   string
	}{
		{"HYLA35_ORG12", "ORG12"},
		{"GUEST7", "GUEST7"},
		{"A_B_C", "B"},
		{"_ORG9", "ORG9"},
		{"", ""},
	}

	for _, c := range cases {
		if got := ResolveOrgID(c.userID); got != c.want {
			t.Errorf("ResolveOrgID(%q) = %q, want %q", c.userID, got, c.want)
		}
	}
}

func TestIdentityOrgID(t *testing.T) {
	org := Identity{Role: RoleOrgUser, UserID: "HYLA35_ORG12"}
	if id, ok := org.OrgID(); !ok || id != "ORG12" {
		t.Fatalf("expected ORG12, got %q ok=%v", id, ok)
	}

	admin := Identity{Role: RolePlatformAdmin, UserID: "root"}
	if _, ok := admin.OrgID(); ok {
		t.Fatalf("platform admin must not resolve to a tenant")
	}

	guest := Identity{Role: RoleGuest, UserID: "GUEST7"}
	if _, ok := guest.OrgID(); ok {
		t.Fatalf("guest must not resolve to a tenant")
	}
}

func TestParseRoleFailClosed(t *testing.T) {
	if ParseRole("superuser") != RoleUnknown {
		t.Fatalf("unrecognized role must parse to RoleUnknown")
	}
	if ParseRole("org-admin") != RoleOrgAdmin {
		t.Fatalf("org-admin did not parse")
	}
}
