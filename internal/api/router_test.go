package api

import (
	"accident-alert-service/internal/adapters/facilities"
	"accident-alert-service/internal/adapters/repositories"
	"accident-alert-service/internal/api/dto"
	"accident-alert-service/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type testEnv struct {
	store   *facilities.MemoryFacilityStore
	reports *repositories.MemoryReportRepository
	handler http.Handler
}

func newTestEnv() *testEnv {
	store := facilities.NewMemoryFacilityStore()
	store.Add(domain.CategoryPolice,
		domain.Facility{ID: "p-ermita", Coordinates: &domain.Coordinates{Lat: 14.5826, Lon: 120.9787}, Name: "Manila Police District", LocationLabel: "Ermita"},
		domain.Facility{ID: "p-cebu", Coordinates: &domain.Coordinates{Lat: 10.3157, Lon: 123.8854}, Name: "Cebu City Police", LocationLabel: "Cebu"},
	)
	store.Add(domain.CategoryRescue,
		domain.Facility{ID: "r-missing", Name: "No coordinates"},
	)

	reports := repositories.NewMemoryReportRepository()
	return &testEnv{
		store:   store,
		reports: reports,
		handler: NewRouter(Deps{Store: store, Reports: reports}),
	}
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := newTestEnv().do(http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected a request id header")
	}
}

func TestNearestReturnsBothCategories(t *testing.T) {
	rec := newTestEnv().do(http.MethodGet, "/nearest?lat=14.5995&lon=120.9842", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	var res dto.FindNearestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Police.Found || res.Police.FacilityID != "p-ermita" {
		t.Fatalf("police = %+v", res.Police)
	}
	if res.Rescue.Found {
		t.Fatalf("rescue should be absent, got %+v", res.Rescue)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].FacilityID != "r-missing" || res.Skipped[0].Category != "rescue" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestNearestBadQuery(t *testing.T) {
	env := newTestEnv()

	tests := []string{
		"/nearest?lon=120",
		"/nearest?lat=abc&lon=120",
		"/nearest?lat=NaN&lon=120",
		"/nearest?lat=14&lon=Inf",
	}
	for _, target := range tests {
		rec := env.do(http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestNearestStoreFailure(t *testing.T) {
	env := newTestEnv()
	env.store.FailWith(errors.New("store down"))

	rec := env.do(http.MethodGet, "/nearest?lat=1&lon=1", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestCreateAlert(t *testing.T) {
	env := newTestEnv()

	body := `{"witness_name":"juan dela cruz","lat":14.5995,"lon":120.9842,"area_label":"Manila, Roxas Blvd","evidence_url":"s3://evidence/1.jpg"}`
	rec := env.do(http.MethodPost, "/alerts", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	var res dto.AlertResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Report.WitnessName != "Juan Dela Cruz" {
		t.Fatalf("witness = %q", res.Report.WitnessName)
	}
	if res.Report.Police.FacilityID != "p-ermita" || res.Report.Rescue.Found {
		t.Fatalf("report = %+v", res.Report)
	}
	if !strings.Contains(res.Message, "Area Name: Manila, Roxas Blvd") ||
		!strings.Contains(res.Message, "Message alerted by: Juan Dela Cruz") {
		t.Fatalf("message = %q", res.Message)
	}

	stored, err := env.reports.ListReports(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListReports error: %v", err)
	}
	if len(stored) != 1 || stored[0].ReportID.String() != res.Report.ReportID {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestCreateAlertWithoutGeocoderUsesUnknownArea(t *testing.T) {
	rec := newTestEnv().do(http.MethodPost, "/alerts", `{"lat":14.6,"lon":121}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	var res dto.AlertResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Report.AreaLabel != domain.UnknownAreaLabel || res.Report.WitnessName != domain.UnknownWitness {
		t.Fatalf("report = %+v", res.Report)
	}
}

func TestCreateAlertRejectsBadBodies(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name string
		body string
	}{
		{"not json", `nope`},
		{"unknown field", `{"lat":1,"lon":1,"speed":3}`},
		{"two objects", `{"lat":1,"lon":1}{"lat":2,"lon":2}`},
		{"missing lon", `{"lat":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/alerts", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestListReports(t *testing.T) {
	env := newTestEnv()
	for _, w := range []string{"ana", "ben", "cris"} {
		if rec := env.do(http.MethodPost, "/alerts", `{"witness_name":"`+w+`","lat":14.6,"lon":121}`); rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d", rec.Code)
		}
	}

	rec := env.do(http.MethodGet, "/reports?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res dto.ListReportsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(res.Reports))
	}

	if rec := env.do(http.MethodGet, "/reports?limit=0", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("limit=0 status = %d, want 400", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := newTestEnv().do(http.MethodGet, "/alerts", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestMetricsExposed(t *testing.T) {
	env := newTestEnv()
	env.do(http.MethodGet, "/health", "")

	rec := env.do(http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatal("expected http request counter in exposition")
	}
}
