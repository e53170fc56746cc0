package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/caredash/impactboard/pkg/aggregate"
	"github.com/caredash/impactboard/pkg/client"
	"github.com/caredash/impactboard/pkg/session"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/programs":
			w.Write([]byte(`{"data":[
				{"id":"pr-1","status":"Active","partnerId":"p-1","startDate":"2024-01-10"},
				{"id":"pr-2","status":"Completed","partnerId":"p-2"}
			]}`))
		case "/api/donations":
			w.Write([]byte(`[{"id":"d-1","estimatedQuantity":"6-15 Items","createdAt":"2024-01-20"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestServer(t *testing.T, backendURL string, sess session.Reader) *Server {
	t.Helper()
	s := New(Config{
		Client:  client.New(backendURL, ""),
		Engine:  aggregate.New(aggregate.DefaultConfig()),
		Session: sess,
	})
	s.refresh(context.Background())
	return s
}

func TestHandleDashboard(t *testing.T) {
	backend := newBackend(t)
	defer backend.Close()

	s := newTestServer(t, backend.URL, nil)

	rec := httptest.NewRecorder()
	s.handleDashboard(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(resp.Stats) == 0 {
		t.Fatal("no stat cards in response")
	}
	if len(resp.Series) == 0 {
		t.Fatal("no series in response")
	}
}

func TestHandlePartnerDashboardWithActor(t *testing.T) {
	backend := newBackend(t)
	defer backend.Close()

	s := newTestServer(t, backend.URL, session.Map{"partnerId": "p-1"})

	rec := httptest.NewRecorder()
	s.handlePartnerDashboard(rec, httptest.NewRequest(http.MethodGet, "/api/partner/dashboard", nil))

	var resp partnerDashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if !resp.ActorAvailable {
		t.Fatal("actorAvailable = false, want true")
	}
	if resp.OwnedPrograms == nil || *resp.OwnedPrograms != 1 {
		t.Fatalf("ownedPrograms = %v, want 1", resp.OwnedPrograms)
	}
}

func TestHandlePartnerDashboardWithoutActor(t *testing.T) {
	backend := newBackend(t)
	defer backend.Close()

	s := newTestServer(t, backend.URL, session.Map{})

	rec := httptest.NewRecorder()
	s.handlePartnerDashboard(rec, httptest.NewRequest(http.MethodGet, "/api/partner/dashboard", nil))

	var resp partnerDashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if resp.ActorAvailable {
		t.Fatal("actorAvailable = true, want false")
	}
	if resp.OwnedPrograms != nil {
		t.Fatalf("ownedPrograms = %d, want null", *resp.OwnedPrograms)
	}
}

func TestBasicAuth(t *testing.T) {
	s := &Server{cfg: Config{Username: "admin", Password: "secret"}}
	handler := s.basicAuth(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated request got %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.SetBasicAuth("admin", "secret")
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated request got %d, want 200", rec.Code)
	}
}
