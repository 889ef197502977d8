package usecase

import (
	"context"
	"testing"

	"github.com/harborview/fleetwatch"
	"github.com/harborview/fleetwatch/internal/domain"
)

func mkLink(imo int64, loginUserID string) domain.TrackedVessel {
	link := domain.TrackedVessel{IMO: imo, LoginUserID: loginUserID}
	orgID := domain.ResolveOrgID(loginUserID)
	link.OrgID = &orgID
	return link
}

func imos(records []domain.TrackedVessel) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.IMO)
	}
	return out
}

func TestFilterPlatformAdminSeesAll(t *testing.T) {
	records := []domain.TrackedVessel{
		mkLink(9619907, "HYLA35_ORG12"),
		mkLink(9321483, "KESTREL9_ORG77"),
		mkLink(9458036, "GUEST7"),
	}

	admin := domain.Identity{Role: domain.RolePlatformAdmin, UserID: "ROOT1"}
	got := Filter(admin, records)
	if len(got) != len(records) {
		t.Fatalf("platform-admin must see all %d records, got %d", len(records), len(got))
	}
}

func TestFilterOrgMembersSeeSameSet(t *testing.T) {
	records := []domain.TrackedVessel{
		mkLink(9619907, "HYLA35_ORG12"),
		mkLink(9321483, "BRAVO2_ORG12"),
		mkLink(9458036, "KESTREL9_ORG77"),
	}

	// Any member of the same organization resolves to the same visible set,
	// regardless of which member created the links.
	members := []domain.Identity{
		{Role: domain.RoleOrgAdmin, UserID: "HYLA35_ORG12"},
		{Role: domain.RoleOrgUser, UserID: "BRAVO2_ORG12"},
		{Role: domain.RoleOrgUser, UserID: "CHARLIE8_ORG12"},
	}
	for _, id := range members {
		got := Filter(id, records)
		if len(got) != 2 {
			t.Fatalf("%s: expected 2 visible records, got %v", id.UserID, imos(got))
		}
		for _, r := range got {
			if r.IMO != 9619907 && r.IMO != 9321483 {
				t.Fatalf("%s: unexpected vessel %d in visible set", id.UserID, r.IMO)
			}
		}
	}
}

func TestFilterOrgVisibilityIsByIMO(t *testing.T) {
	// Two unrelated tenants track the same hull. An org member sees every
	// link for an IMO their org tracks, including the foreign one; visibility
	// is keyed by vessel, not by row ownership.
	records := []domain.TrackedVessel{
		mkLink(9619907, "HYLA35_ORG12"),
		mkLink(9619907, "KESTREL9_ORG77"),
		mkLink(9321483, "KESTREL9_ORG77"),
	}

	member := domain.Identity{Role: domain.RoleOrgUser, UserID: "HYLA35_ORG12"}
	got := Filter(member, records)
	if len(got) != 2 {
		t.Fatalf("expected both links for the shared hull, got %v", imos(got))
	}
	for _, r := range got {
		if r.IMO != 9619907 {
			t.Fatalf("vessel %d must not be visible to ORG12", r.IMO)
		}
	}
}

func TestFilterGuestSeesOwnLinksOnly(t *testing.T) {
	records := []domain.TrackedVessel{
		mkLink(9619907, "GUEST7"),
		mkLink(9321483, "GUEST7"),
		mkLink(9619907, "HYLA35_ORG12"),
		mkLink(9458036, "GUEST4"),
	}

	guest := domain.Identity{Role: domain.RoleGuest, UserID: "GUEST7"}
	got := Filter(guest, records)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %v", imos(got))
	}
	for _, r := range got {
		if r.LoginUserID != "GUEST7" {
			t.Fatalf("guest must never see %s's link", r.LoginUserID)
		}
	}
}

func TestFilterUnknownRoleSeesNothing(t *testing.T) {
	records := []domain.TrackedVessel{mkLink(9619907, "HYLA35_ORG12")}

	for _, id := range []domain.Identity{
		{Role: domain.RoleUnknown, UserID: "HYLA35_ORG12"},
		{Role: domain.Role(42), UserID: "HYLA35_ORG12"},
	} {
		if got := Filter(id, records); len(got) != 0 {
			t.Fatalf("role %d must see nothing, got %v", id.Role, imos(got))
		}
	}
}

func TestFilterEmptyInput(t *testing.T) {
	admin := domain.Identity{Role: domain.RolePlatformAdmin, UserID: "ROOT1"}
	if got := Filter(admin, nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", imos(got))
	}
}

func TestListInPortOrdering(t *testing.T) {
	repo := newMemTrackingRepo()

	seed := []struct {
		imo    int64
		pullGf string
		gfType string
	}{
		{9100001, "inport", "N/A"},
		{9100002, "outport", "Berth"}, // left port already, excluded
		{9100003, "inport", "Anchorage"},
		{9100004, "inport", "Berth"},
		{9100005, "inport", "Terminal"},
	}
	for _, s := range seed {
		repo.enrichments[s.imo] = domain.VesselEnrichment{
			IMO: s.imo,
			AIS: fleetwatch.AisSnapshot{PullGfType: s.pullGf, GeofenceType: s.gfType},
		}
		if _, err := repo.InsertLinkIfAbsent(context.Background(), mkLink(s.imo, "HYLA35_ORG12")); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	uc := NewVisibilityUsecase(repo)
	admin := domain.Identity{Role: domain.RolePlatformAdmin, UserID: "ROOT1"}
	got, err := uc.ListInPort(context.Background(), admin)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := []int64{9100004, 9100005, 9100003, 9100001}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, imos(got))
	}
	for i, imo := range want {
		if got[i].IMO != imo {
			t.Fatalf("position %d: expected %d, got %v", i, imo, imos(got))
		}
	}
}
