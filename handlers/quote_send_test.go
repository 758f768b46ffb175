package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"solarquote/testhelpers"
)

// Sending itself needs an SMTP server, so these tests only cover the
// validation branches before the mail client is reached.

func TestHandleQuoteSend_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteSend(app)
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/missing123/send", nil)
	req.SetPathValue("id", "missing123")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleQuoteSend_MissingID(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteSend(app)
	req := httptest.NewRequest(http.MethodPost, "/api/quotes//send", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleQuoteSend_NoEmail(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "SQ-26-0001", "Ana Torres", 1000, map[string]any{})
	quote.Set("customer_email", "")
	if err := app.Save(quote); err != nil {
		t.Fatalf("failed to clear email: %v", err)
	}

	handler := HandleQuoteSend(app)
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/"+quote.Id+"/send", nil)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for quote without email, got %d", rec.Code)
	}
}
