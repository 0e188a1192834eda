package handlers_test

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backend/internal/auth"
	intconfig "backend/internal/config"
	"backend/internal/domain/models"
	api "backend/internal/http"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	return api.NewRouter(intconfig.Env{
		CORSOrigins: []string{"http://localhost:3000"},
	})
}

// useMockDB swaps the shared connection for a sqlmock and restores it after.
func useMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}

	prev := intconfig.DB
	intconfig.DB = db
	t.Cleanup(func() {
		intconfig.DB = prev
		db.Close()
	})
	return mock
}

var enquiryCols = []string{
	"id", "created_at", "status",
	"full_name", "email", "phone", "contact_preference", "best_time_to_contact", "referral_source",
	"departure_airport", "destination", "from_date", "to_date", "flexible_dates", "travel_reason", "other_travel_reason",
	"adults", "children", "children_ages",
	"hotel_rating", "preferred_hotel", "board_basis", "budget",
	"special_requests", "additional_information",
}

func storedEnquiryRow(id int64) []driver.Value {
	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, created, "new",
		"Jane Doe", "jane@example.com", "1234567890", "email", nil, "search",
		"LHR", "Maldives", created.AddDate(0, 1, 0), created.AddDate(0, 1, 9), false, "holiday", nil,
		2, 1, "[8]",
		5, nil, "All Inclusive", "£3000-£4000",
		nil, nil,
	}
}

func tripRequestBody() map[string]any {
	return map[string]any{
		"fullName":          "Jane Doe",
		"email":             "jane@example.com",
		"phone":             "1234567890",
		"contactPreference": "email",
		"referralSource":    "search",
		"departureAirport":  "LHR",
		"destination":       "Maldives",
		"fromDate":          "2025-06-01",
		"toDate":            "2025-06-10",
		"travelReason":      "holiday",
		"adults":            2,
		"children":          1,
		"childrenAges":      []int{8},
		"hotelRating":       5,
		"boardBasis":        "All Inclusive",
		"budget":            "£3000-£4000",
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.SignToken(1, models.RoleAdmin)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestCreateTripRequestStoresAndEchoes(t *testing.T) {
	mock := useMockDB(t)
	mock.ExpectExec("INSERT INTO enquiries").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("FROM enquiries WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(enquiryCols).AddRow(storedEnquiryRow(7)...))

	w := doJSON(t, newTestRouter(), http.MethodPost, "/api/trip-requests", tripRequestBody(), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var stored models.Enquiry
	if err := json.Unmarshal(w.Body.Bytes(), &stored); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stored.ID != 7 || stored.Status != "new" {
		t.Fatalf("unexpected stored enquiry: %+v", stored)
	}
	if len(stored.ChildrenAges) != 1 || stored.ChildrenAges[0] != 8 {
		t.Fatalf("children ages not echoed: %v", stored.ChildrenAges)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTripRequestRejectsInvalidPayload(t *testing.T) {
	mock := useMockDB(t)

	body := tripRequestBody()
	body["toDate"] = "2025-05-01"
	delete(body, "email")

	w := doJSON(t, newTestRouter(), http.MethodPost, "/api/trip-requests", body, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var reject struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reject); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, name := range []string{"email", "fromDate", "toDate"} {
		if reject.Fields[name] == "" {
			t.Errorf("expected violation for %q, got %v", name, reject.Fields)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("rejected payload must not reach the database: %v", err)
	}
}

func TestEnquiriesRejectsMissingToken(t *testing.T) {
	useMockDB(t)

	w := doJSON(t, newTestRouter(), http.MethodGet, "/api/enquiries", nil, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"Unauthorized"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestEnquiriesRejectsStaffToken(t *testing.T) {
	useMockDB(t)

	token, err := auth.SignToken(2, models.RoleStaff)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	w := doJSON(t, newTestRouter(), http.MethodGet, "/api/enquiries", nil, token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("staff tokens must not pass the admin gate, got %d", w.Code)
	}
}

func TestEnquiriesListsForAdmin(t *testing.T) {
	mock := useMockDB(t)
	mock.ExpectQuery("ORDER BY created_at DESC, id DESC").
		WillReturnRows(sqlmock.NewRows(enquiryCols).
			AddRow(storedEnquiryRow(8)...).
			AddRow(storedEnquiryRow(7)...))

	w := doJSON(t, newTestRouter(), http.MethodGet, "/api/enquiries", nil, adminToken(t))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var list []models.Enquiry
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 2 || list[0].ID != 8 || list[0].FullName != "Jane Doe" {
		t.Fatalf("unexpected listing: %+v", list)
	}
}

func TestGetEnquiryByIDNotFound(t *testing.T) {
	mock := useMockDB(t)
	mock.ExpectQuery("FROM enquiries WHERE id").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	w := doJSON(t, newTestRouter(), http.MethodGet, "/api/enquiries/99", nil, adminToken(t))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetEnquiryByIDStorageFailureIsServerError(t *testing.T) {
	mock := useMockDB(t)
	mock.ExpectQuery("FROM enquiries WHERE id").
		WithArgs(int64(7)).
		WillReturnError(errors.New("connection reset"))

	w := doJSON(t, newTestRouter(), http.MethodGet, "/api/enquiries/7", nil, adminToken(t))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("storage failure must be a 500, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateEnquiryStatus(t *testing.T) {
	mock := useMockDB(t)
	mock.ExpectQuery("FROM enquiries WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(enquiryCols).AddRow(storedEnquiryRow(7)...))
	mock.ExpectExec("UPDATE enquiries SET status").
		WithArgs("contacted", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	contacted := storedEnquiryRow(7)
	contacted[2] = "contacted"
	mock.ExpectQuery("FROM enquiries WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(enquiryCols).AddRow(contacted...))

	w := doJSON(t, newTestRouter(), http.MethodPut, "/api/enquiries/7/status", gin.H{"status": "contacted"}, adminToken(t))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Enquiry
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Status != "contacted" {
		t.Fatalf("expected contacted, got %q", updated.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateEnquiryStatusRejectsUnknownValue(t *testing.T) {
	mock := useMockDB(t)

	w := doJSON(t, newTestRouter(), http.MethodPut, "/api/enquiries/7/status", gin.H{"status": "archived"}, adminToken(t))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("invalid status must not reach the database: %v", err)
	}
}

func TestEnquirySummaryServesInlinePDF(t *testing.T) {
	mock := useMockDB(t)
	mock.ExpectQuery("FROM enquiries WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(enquiryCols).AddRow(storedEnquiryRow(7)...))

	w := doJSON(t, newTestRouter(), http.MethodGet, "/api/enquiries/7/summary", nil, adminToken(t))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "inline") || !strings.Contains(cd, "ENQUIRY_7_Jane_Doe.pdf") {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("body is not a PDF")
	}
}

func TestSiteContentEndpointsArePublic(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/destinations", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Maldives") {
		t.Fatalf("destinations: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/testimonials", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Nomad Co-Founder") {
		t.Fatalf("testimonials: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
}
