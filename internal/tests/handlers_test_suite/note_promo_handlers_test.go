package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	api "github.com/rogerio-castellano/retail-manager/internal/http"
	handler "github.com/rogerio-castellano/retail-manager/internal/http/handlers"
)

func TestNoteHandlers_CRUD(t *testing.T) {
	t.Cleanup(clearAllNotes)
	r := api.NewRouter()

	remindAt := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	w := doAuthorizedJSON(r, http.MethodPost, "/notes",
		handler.NoteRequest{Title: "Order napkins", Body: "Call the supplier", RemindAt: &remindAt})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var created handler.NoteResponse
	json.NewDecoder(w.Body).Decode(&created)
	if created.RemindAt == nil || !created.RemindAt.Equal(remindAt) {
		t.Errorf("expected remind_at %v, got %v", remindAt, created.RemindAt)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/notes", nil)
	listW := httptest.NewRecorder()
	r.ServeHTTP(listW, listReq)
	var notes []handler.NoteResponse
	json.NewDecoder(listW.Body).Decode(&notes)
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}

	updateW := doAuthorizedJSON(r, http.MethodPut, fmt.Sprintf("/notes/%d", created.Id),
		handler.NoteRequest{Title: "Order napkins", Body: "Done already"})
	if updateW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", updateW.Code)
	}
	var updated handler.NoteResponse
	json.NewDecoder(updateW.Body).Decode(&updated)
	if updated.Body != "Done already" || updated.RemindAt != nil {
		t.Errorf("unexpected updated note: %+v", updated)
	}

	deleteW := doAuthorizedJSON(r, http.MethodDelete, fmt.Sprintf("/notes/%d", created.Id), nil)
	if deleteW.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", deleteW.Code)
	}
}

func TestCreateNoteHandler_MissingTitle(t *testing.T) {
	r := api.NewRouter()

	w := doAuthorizedJSON(r, http.MethodPost, "/notes", handler.NoteRequest{Body: "no title"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestGetNoteByIDHandler_NotFound(t *testing.T) {
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/notes/999999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestPromoHandlers_CRUD(t *testing.T) {
	t.Cleanup(clearAllPromos)
	r := api.NewRouter()

	w := doAuthorizedJSON(r, http.MethodPost, "/promos", handler.PromoRequest{
		Title:       "Summer combo",
		Description: "Two for one",
		Price:       9.99,
		ImageURL:    "https://cdn.example.com/combo.png",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var created handler.PromoResponse
	json.NewDecoder(w.Body).Decode(&created)
	if created.Price != 9.99 || created.ImageURL == "" {
		t.Errorf("unexpected created promo: %+v", created)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/promos", nil)
	listW := httptest.NewRecorder()
	r.ServeHTTP(listW, listReq)
	var promos []handler.PromoResponse
	json.NewDecoder(listW.Body).Decode(&promos)
	if len(promos) != 1 {
		t.Fatalf("expected 1 promo, got %d", len(promos))
	}

	updateW := doAuthorizedJSON(r, http.MethodPut, fmt.Sprintf("/promos/%d", created.Id),
		handler.PromoRequest{Title: "Summer combo", Price: 7.5})
	if updateW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", updateW.Code)
	}
	var updated handler.PromoResponse
	json.NewDecoder(updateW.Body).Decode(&updated)
	if updated.Price != 7.5 {
		t.Errorf("expected price 7.5, got %v", updated.Price)
	}

	deleteW := doAuthorizedJSON(r, http.MethodDelete, fmt.Sprintf("/promos/%d", created.Id), nil)
	if deleteW.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", deleteW.Code)
	}
}

func TestCreatePromoHandler_Invalid(t *testing.T) {
	r := api.NewRouter()

	t.Run("missing title", func(t *testing.T) {
		w := doAuthorizedJSON(r, http.MethodPost, "/promos", handler.PromoRequest{Price: 1})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})

	t.Run("negative price", func(t *testing.T) {
		w := doAuthorizedJSON(r, http.MethodPost, "/promos", handler.PromoRequest{Title: "Bad", Price: -1})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})
}
