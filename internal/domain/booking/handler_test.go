package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockRepo) {
	svc, repo := newTestService()
	return NewHandler(svc), repo
}

func doJSONRequest(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandlerCreate(t *testing.T) {
	h, repo := newTestHandler()

	body := `{
		"premises_id": "` + uuid.NewString() + `",
		"crn": "X123456",
		"arrival_date": "2024-03-10",
		"departure_date": "2024-03-15",
		"criteria": ["hasEnSuite"]
	}`
	c, rec := doJSONRequest(http.MethodPost, "/space-bookings", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var created SpaceBooking
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected assigned booking id")
	}
	if created.CRN != "X123456" {
		t.Errorf("expected CRN X123456, got %q", created.CRN)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("expected 1 stored booking, got %d", len(repo.bookings))
	}
}

func TestHandlerCreate_MalformedDate(t *testing.T) {
	h, _ := newTestHandler()

	body := `{
		"premises_id": "` + uuid.NewString() + `",
		"crn": "X123456",
		"arrival_date": "10/03/2024",
		"departure_date": "2024-03-15"
	}`
	c, _ := doJSONRequest(http.MethodPost, "/space-bookings", body)

	err := h.Create(c)
	if err == nil {
		t.Fatal("expected error for malformed arrival date")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandlerCreate_UnknownCriteria(t *testing.T) {
	h, _ := newTestHandler()

	body := `{
		"premises_id": "` + uuid.NewString() + `",
		"crn": "X123456",
		"arrival_date": "2024-03-10",
		"departure_date": "2024-03-15",
		"criteria": ["noSuchCharacteristic"]
	}`
	c, _ := doJSONRequest(http.MethodPost, "/space-bookings", body)

	err := h.Create(c)
	if err == nil {
		t.Fatal("expected error for unknown criteria")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandlerGet(t *testing.T) {
	h, repo := newTestHandler()
	b := validBooking()
	b.ID = uuid.New()
	repo.bookings[b.ID] = b

	c, rec := doJSONRequest(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(b.ID.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got SpaceBooking
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.ID != b.ID {
		t.Errorf("expected booking %s, got %s", b.ID, got.ID)
	}
}

func TestHandlerGet_NotFound(t *testing.T) {
	h, _ := newTestHandler()

	c, _ := doJSONRequest(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Get(c)
	if err == nil {
		t.Fatal("expected not found error")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandlerCancel(t *testing.T) {
	h, repo := newTestHandler()
	b := validBooking()
	b.ID = uuid.New()
	repo.bookings[b.ID] = b

	c, rec := doJSONRequest(http.MethodPost, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(b.ID.String())

	if err := h.Cancel(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if b.CancelledAt == nil {
		t.Error("expected booking to be cancelled")
	}
}

func TestHandlerCancel_InvalidID(t *testing.T) {
	h, _ := newTestHandler()

	c, _ := doJSONRequest(http.MethodPost, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Cancel(c)
	if err == nil {
		t.Fatal("expected error for invalid id")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandlerListByPremises(t *testing.T) {
	h, repo := newTestHandler()
	premisesID := uuid.New()

	b := validBooking()
	b.ID = uuid.New()
	b.PremisesID = premisesID
	repo.bookings[b.ID] = b

	c, rec := doJSONRequest(http.MethodGet, "/?start_date=2024-03-01&end_date=2024-03-31", "")
	c.SetParamNames("id")
	c.SetParamValues(premisesID.String())

	if err := h.ListByPremises(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  []*SpaceBooking `json:"data"`
		Total int             `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 {
		t.Fatalf("expected 1 booking, got total=%d len=%d", resp.Total, len(resp.Data))
	}
	if resp.Data[0].CRN != b.CRN {
		t.Errorf("expected CRN %q, got %q", b.CRN, resp.Data[0].CRN)
	}
}

func TestHandlerListByPremises_MissingDates(t *testing.T) {
	h, _ := newTestHandler()

	c, _ := doJSONRequest(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.ListByPremises(c)
	if err == nil {
		t.Fatal("expected error for missing dates")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
