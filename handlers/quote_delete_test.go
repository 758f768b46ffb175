package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"solarquote/testhelpers"
)

func TestHandleQuoteDelete_Deletes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "SQ-26-0001", "Ana Torres", 1000, map[string]any{})

	handler := HandleQuoteDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/api/quotes/"+quote.Id, nil)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("quotes", quote.Id); err == nil {
		t.Error("quote should have been deleted")
	}
}

func TestHandleQuoteDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/api/quotes/missing123", nil)
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

func TestHandleQuoteDelete_MissingID(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/api/quotes/", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
