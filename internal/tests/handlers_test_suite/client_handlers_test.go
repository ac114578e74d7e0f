package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/rogerio-castellano/retail-manager/internal/http"
	handler "github.com/rogerio-castellano/retail-manager/internal/http/handlers"
)

func TestCreateClientHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllClients)
	r := api.NewRouter()

	w := createClient(r, handler.ClientRequest{
		Name:     "Maria Souza",
		Document: "123.456.789-00",
		Phone:    "+55 11 99999-0000",
		Email:    "maria@example.com",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.ClientResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Name != "Maria Souza" {
		t.Errorf("expected name 'Maria Souza', got %v", resp.Name)
	}
	if resp.Document != "123.456.789-00" {
		t.Errorf("expected document '123.456.789-00', got %v", resp.Document)
	}
	if resp.Id == 0 {
		t.Error("expected a non-zero id")
	}
}

func TestCreateClientHandler_MissingName(t *testing.T) {
	t.Cleanup(clearAllClients)
	r := api.NewRouter()

	w := createClient(r, handler.ClientRequest{Document: "42"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}

	var resp []handler.ValidationError
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp) == 0 || resp[0].Field != "Name" {
		t.Errorf("expected validation error for 'Name', got %v", resp)
	}
}

func TestGetClientsHandler(t *testing.T) {
	t.Cleanup(clearAllClients)
	r := api.NewRouter()

	for _, name := range []string{"Ana", "Bruno"} {
		w := createClient(r, handler.ClientRequest{Name: name})
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create test client %q: %d", name, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var clients []handler.ClientResponse
	if err := json.NewDecoder(w.Body).Decode(&clients); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}
	if clients[0].Name != "Ana" || clients[1].Name != "Bruno" {
		t.Errorf("unexpected client order: %v", clients)
	}
}

func TestSearchClientsHandler(t *testing.T) {
	t.Cleanup(clearAllClients)
	r := api.NewRouter()

	fixtures := []handler.ClientRequest{
		{Name: "Maria Souza", Document: "111"},
		{Name: "Mario Rossi", Document: "222"},
		{Name: "John Doe", Document: "maria-999"},
	}
	for _, c := range fixtures {
		if w := createClient(r, c); w.Code != http.StatusCreated {
			t.Fatalf("failed to create test client %q: %d", c.Name, w.Code)
		}
	}

	t.Run("matches name case-insensitively", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/clients/search?q=maria", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		var clients []handler.ClientResponse
		json.NewDecoder(w.Body).Decode(&clients)
		if len(clients) != 2 {
			t.Errorf("expected 2 matches (name and document), got %d: %v", len(clients), clients)
		}
	})

	t.Run("no match yields empty list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/clients/search?q=zzz", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		var clients []handler.ClientResponse
		json.NewDecoder(w.Body).Decode(&clients)
		if len(clients) != 0 {
			t.Errorf("expected no matches, got %v", clients)
		}
	})
}

func TestUpdateClientHandler(t *testing.T) {
	t.Cleanup(clearAllClients)
	r := api.NewRouter()

	w := createClient(r, handler.ClientRequest{Name: "Old Name"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var created handler.ClientResponse
	json.NewDecoder(w.Body).Decode(&created)

	updateW := doAuthorizedJSON(r, http.MethodPut, fmt.Sprintf("/clients/%d", created.Id),
		handler.ClientRequest{Name: "New Name", Phone: "555"})

	if updateW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", updateW.Code)
	}
	var updated handler.ClientResponse
	json.NewDecoder(updateW.Body).Decode(&updated)
	if updated.Name != "New Name" || updated.Phone != "555" {
		t.Errorf("unexpected updated client: %+v", updated)
	}
}

func TestUpdateClientHandler_NotFound(t *testing.T) {
	r := api.NewRouter()

	w := doAuthorizedJSON(r, http.MethodPut, "/clients/999999", handler.ClientRequest{Name: "Ghost"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestDeleteClientHandler(t *testing.T) {
	t.Cleanup(clearAllClients)
	r := api.NewRouter()

	w := createClient(r, handler.ClientRequest{Name: "Short Lived"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var created handler.ClientResponse
	json.NewDecoder(w.Body).Decode(&created)

	deleteW := doAuthorizedJSON(r, http.MethodDelete, fmt.Sprintf("/clients/%d", created.Id), nil)
	if deleteW.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", deleteW.Code)
	}

	getReq := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/clients/%d", created.Id), nil)
	getW := httptest.NewRecorder()
	r.ServeHTTP(getW, getReq)
	if getW.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", getW.Code)
	}
}

func TestCreateClientHandler_Unauthorized(t *testing.T) {
	r := api.NewRouter()

	body := `{"name":"No Token"}`
	req := httptest.NewRequest(http.MethodPost, "/clients", jsonBody(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}
