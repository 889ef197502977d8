package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/harborview/fleetwatch"
	"github.com/harborview/fleetwatch/internal/domain"
	"github.com/harborview/fleetwatch/internal/service"
	"github.com/harborview/fleetwatch/internal/usecase"
)

type stubTrackingRepo struct {
	mu          sync.Mutex
	enrichments map[int64]domain.VesselEnrichment
	links       []domain.TrackedVessel
}

func newStubTrackingRepo() *stubTrackingRepo {
	return &stubTrackingRepo{enrichments: make(map[int64]domain.VesselEnrichment)}
}

func (s *stubTrackingRepo) ListGlobal(ctx context.Context) ([]domain.TrackedVessel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TrackedVessel{}, s.links...), nil
}

func (s *stubTrackingRepo) ListByUser(ctx context.Context, loginUserID string) ([]domain.TrackedVessel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.TrackedVessel{}
	for _, l := range s.links {
		if l.LoginUserID == loginUserID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubTrackingRepo) CountByOrg(ctx context.Context, orgID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, l := range s.links {
		if l.OrgID != nil && *l.OrgID == orgID {
			n++
		}
	}
	return n, nil
}

func (s *stubTrackingRepo) HasEnrichment(ctx context.Context, imo int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.enrichments[imo]
	return ok, nil
}

func (s *stubTrackingRepo) InsertEnrichmentIfAbsent(ctx context.Context, rec domain.VesselEnrichment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.enrichments[rec.IMO]; ok {
		return false, nil
	}
	s.enrichments[rec.IMO] = rec
	return true, nil
}

func (s *stubTrackingRepo) InsertLinkIfAbsent(ctx context.Context, link domain.TrackedVessel) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.links {
		if l.IMO == link.IMO && l.LoginUserID == link.LoginUserID {
			return false, nil
		}
	}
	s.links = append(s.links, link)
	return true, nil
}

type stubSalesRepo struct{}

func (stubSalesRepo) InsertIfAbsent(ctx context.Context, rec domain.SalesInfo) (bool, error) {
	return true, nil
}

func (stubSalesRepo) ListByOrg(ctx context.Context, orgID string) ([]domain.SalesInfo, error) {
	return []domain.SalesInfo{}, nil
}

type stubCatalog struct{}

func (stubCatalog) GetVesselByIMO(ctx context.Context, imo int64) (fleetwatch.VesselAisRecord, error) {
	return fleetwatch.VesselAisRecord{
		Vessel: fleetwatch.Vessel{IMO: imo, Name: fmt.Sprintf("MV %d", imo)},
	}, nil
}

func (stubCatalog) SearchVessels(ctx context.Context, query string, page, limit int) (fleetwatch.VesselPage, error) {
	return fleetwatch.VesselPage{Page: page}, nil
}

type stubOrgs struct{}

func (stubOrgs) GetOrganization(ctx context.Context, orgID string) (domain.Organization, error) {
	return domain.Organization{OrgID: orgID, AssignShips: 5}, nil
}

type stubUsers struct{}

func (stubUsers) ListUsers(ctx context.Context) ([]domain.User, error) {
	return []domain.User{{ID: "HYLA35_ORG12", Name: "Ops"}}, nil
}

type stubPublisher struct{}

func (stubPublisher) Publish(ctx context.Context, channel string, event fleetwatch.Event) error {
	return nil
}

func newTestHandler(repo *stubTrackingRepo) *Handler {
	tracking := usecase.NewTrackingUsecase(repo, stubSalesRepo{}, stubCatalog{}, stubPublisher{})
	return NewHandler(
		usecase.NewVisibilityUsecase(repo),
		tracking,
		usecase.NewQuotaUsecase(repo, stubOrgs{}),
		usecase.NewCatalogUsecase(stubCatalog{}),
		usecase.NewDirectoryUsecase(stubUsers{}),
		service.NewAlertService(stubPublisher{}),
		nil,
	)
}

func doRequest(h *Handler, identity *domain.Identity, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if identity != nil {
		ctx := context.WithValue(req.Context(), domain.IdentityCtxKey, *identity)
		req = req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandleAddToTrack(t *testing.T) {
	h := newTestHandler(newStubTrackingRepo())
	identity := domain.Identity{Role: domain.RoleOrgUser, UserID: "HYLA35_ORG12"}

	rec := doRequest(h, &identity, http.MethodPost, "/api/v1/tracked", `{"imoNumber": 9619907}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp addToTrackResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "added" {
		t.Fatalf("expected added, got %s", resp.Status)
	}
	if resp.Vessel.IMO != 9619907 {
		t.Fatalf("unexpected vessel: %+v", resp.Vessel)
	}
}

func TestHandleAddToTrackUnauthenticated(t *testing.T) {
	h := newTestHandler(newStubTrackingRepo())

	rec := doRequest(h, nil, http.MethodPost, "/api/v1/tracked", `{"imoNumber": 9619907}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleListTrackedGuest(t *testing.T) {
	repo := newStubTrackingRepo()
	h := newTestHandler(repo)

	seedOrg := "ORG12"
	repo.links = []domain.TrackedVessel{
		{IMO: 9619907, LoginUserID: "GUEST7"},
		{IMO: 9321483, LoginUserID: "HYLA35_ORG12", OrgID: &seedOrg},
	}

	identity := domain.Identity{Role: domain.RoleGuest, UserID: "GUEST7"}
	rec := doRequest(h, &identity, http.MethodGet, "/api/v1/tracked", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var vessels []domain.TrackedVessel
	if err := json.Unmarshal(rec.Body.Bytes(), &vessels); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(vessels) != 1 || vessels[0].IMO != 9619907 {
		t.Fatalf("guest must only see their own link: %+v", vessels)
	}
}

func TestHandleQuotaForbiddenForForeignOrg(t *testing.T) {
	h := newTestHandler(newStubTrackingRepo())

	identity := domain.Identity{Role: domain.RoleOrgUser, UserID: "HYLA35_ORG12"}
	rec := doRequest(h, &identity, http.MethodGet, "/api/v1/organizations/ORG77/quota", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(h, &identity, http.MethodGet, "/api/v1/organizations/ORG12/quota", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for own org, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleSearchVesselsLimitValidation(t *testing.T) {
	h := newTestHandler(newStubTrackingRepo())
	identity := domain.Identity{Role: domain.RoleOrgUser, UserID: "HYLA35_ORG12"}

	rec := doRequest(h, &identity, http.MethodGet, "/api/v1/vessels?limit=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for garbage limit, got %d", rec.Code)
	}

	rec = doRequest(h, &identity, http.MethodGet, "/api/v1/vessels?search=aurora&limit=500", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("oversized limit must be clamped, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleImportPartial(t *testing.T) {
	h := newTestHandler(newStubTrackingRepo())
	identity := domain.Identity{Role: domain.RoleOrgUser, UserID: "HYLA35_ORG12"}

	body := `[{"imo": "IMO"}, {"imo": "9619907"}]`
	rec := doRequest(h, &identity, http.MethodPost, "/api/v1/tracked/import", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp importResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %+v", resp)
	}
	if resp.Results[0].Status != "rejected" || resp.Results[1].Status != "added" {
		t.Fatalf("unexpected statuses: %+v", resp.Results)
	}
	if resp.Added != 1 {
		t.Fatalf("expected 1 added, got %d", resp.Added)
	}
}

func TestHandleSendAlertValidation(t *testing.T) {
	h := newTestHandler(newStubTrackingRepo())
	identity := domain.Identity{Role: domain.RoleOrgAdmin, UserID: "HYLA35_ORG12"}

	rec := doRequest(h, &identity, http.MethodPost, "/api/v1/alerts", `{"subject": "ETA slipped"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without recipients, got %d", rec.Code)
	}

	body := `{"subject": "ETA slipped", "message": "MV 9619907 delayed", "recipients": ["ops@org12.example"]}`
	rec = doRequest(h, &identity, http.MethodPost, "/api/v1/alerts", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleListUsersDeniedForGuest(t *testing.T) {
	h := newTestHandler(newStubTrackingRepo())

	identity := domain.Identity{Role: domain.RoleGuest, UserID: "GUEST7"}
	rec := doRequest(h, &identity, http.MethodGet, "/api/v1/users", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
