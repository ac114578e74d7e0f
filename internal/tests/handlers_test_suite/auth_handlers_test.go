package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/rogerio-castellano/retail-manager/internal/http"
	handler "github.com/rogerio-castellano/retail-manager/internal/http/handlers"
)

func postJSON(r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	json.NewEncoder(&body).Encode(payload)
	req := httptest.NewRequest(http.MethodPost, path, &body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler(t *testing.T) {
	r := api.NewRouter()

	w := postJSON(r, "/register", handler.CredentialsRequest{Username: "newuser", Password: "longenough"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.RegisterResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token for the freshly registered user")
	}

	t.Run("duplicate username", func(t *testing.T) {
		w := postJSON(r, "/register", handler.CredentialsRequest{Username: "newuser", Password: "longenough"})
		if w.Code != http.StatusConflict {
			t.Errorf("expected 409 Conflict, got %d", w.Code)
		}
	})

	t.Run("short password", func(t *testing.T) {
		w := postJSON(r, "/register", handler.CredentialsRequest{Username: "other", Password: "abc"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})
}

func TestLoginHandler(t *testing.T) {
	r := api.NewRouter()

	t.Run("valid credentials", func(t *testing.T) {
		w := postJSON(r, "/login", handler.CredentialsRequest{Username: "admin", Password: "secret"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		var resp handler.LoginResult
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Token == "" {
			t.Error("expected a JWT")
		}
		if resp.RefreshToken == "" {
			t.Error("expected a refresh token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(r, "/login", handler.CredentialsRequest{Username: "admin", Password: "wrong"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		w := postJSON(r, "/login", handler.CredentialsRequest{Username: "nobody", Password: "whatever"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})
}

func TestRefreshAndLogout(t *testing.T) {
	r := api.NewRouter()

	loginW := postJSON(r, "/login", handler.CredentialsRequest{Username: "admin", Password: "secret"})
	if loginW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", loginW.Code)
	}
	var login handler.LoginResult
	json.NewDecoder(loginW.Body).Decode(&login)

	t.Run("refresh yields a new token", func(t *testing.T) {
		w := postJSON(r, "/refresh", handler.RefreshRequest{RefreshToken: login.RefreshToken})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		var resp handler.LoginResult
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Token == "" {
			t.Error("expected a fresh JWT")
		}
	})

	t.Run("logout invalidates the refresh token", func(t *testing.T) {
		w := postJSON(r, "/logout", handler.RefreshRequest{RefreshToken: login.RefreshToken})
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204 No Content, got %d", w.Code)
		}

		w = postJSON(r, "/refresh", handler.RefreshRequest{RefreshToken: login.RefreshToken})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 after logout, got %d", w.Code)
		}
	})

	t.Run("unknown refresh token", func(t *testing.T) {
		w := postJSON(r, "/refresh", handler.RefreshRequest{RefreshToken: "bogus"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})
}

func TestAuthStatusHandler(t *testing.T) {
	r := api.NewRouter()

	t.Run("active with valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		var resp handler.AuthStatusResult
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Status != "active" {
			t.Errorf("expected status 'active', got %q", resp.Status)
		}
	})

	t.Run("not-found without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK even without a token, got %d", w.Code)
		}
		var resp handler.AuthStatusResult
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Status != "not-found" {
			t.Errorf("expected status 'not-found', got %q", resp.Status)
		}
	})

	t.Run("not-found with garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var resp handler.AuthStatusResult
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Status != "not-found" {
			t.Errorf("expected status 'not-found', got %q", resp.Status)
		}
	})
}

func TestRegisterAsAdminHandler(t *testing.T) {
	r := api.NewRouter()

	t.Run("admin can create users with roles", func(t *testing.T) {
		w := doAuthorizedJSON(r, http.MethodPost, "/admin/users",
			handler.RegisterAsAdminRequest{Username: "clerk", Password: "longenough", Role: "user"})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		clerkToken, err := generateToken(r, "clerk", "longenough")
		if err != nil {
			t.Fatalf("could not log in as clerk: %v", err)
		}

		var body bytes.Buffer
		json.NewEncoder(&body).Encode(handler.RegisterAsAdminRequest{Username: "x", Password: "longenough", Role: "admin"})
		req := httptest.NewRequest(http.MethodPost, "/admin/users", &body)
		req.Header.Set("Authorization", "Bearer "+clerkToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403 Forbidden, got %d", w.Code)
		}
	})
}
