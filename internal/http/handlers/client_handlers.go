package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	models "github.com/rogerio-castellano/retail-manager/internal/models"
	repo "github.com/rogerio-castellano/retail-manager/internal/repo"
	"github.com/rogerio-castellano/retail-manager/internal/watch"
)

func clientResponse(c models.Client) ClientResponse {
	return ClientResponse{
		Id:       c.ID,
		Name:     c.Name,
		Document: c.Document,
		Phone:    c.Phone,
		Email:    c.Email,
		Notes:    c.Notes,
		Address:  c.Address,
	}
}

// CreateClientHandler godoc
// @Summary Create a new client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param client body ClientRequest true "Client to add"
// @Success 201 {object} ClientResponse
// @Failure 400 {object} []ValidationError
// @Router /clients [post]
func CreateClientHandler(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateClient(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	client := models.Client{
		Name:      req.Name,
		Document:  req.Document,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
		Address:   req.Address,
		CreatedAt: time.Now().Format(time.RFC3339),
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	created, err := clientRepo.Create(client)
	if err != nil {
		http.Error(w, "could not create client", http.StatusInternalServerError)
		return
	}
	watch.Publish("clients", "created", created.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(clientResponse(created))
}

// GetClientsHandler godoc
// @Summary List all clients
// @Tags clients
// @Produce json
// @Success 200 {array} ClientResponse
// @Failure 500 {string} string "Internal error"
// @Router /clients [get]
func GetClientsHandler(w http.ResponseWriter, r *http.Request) {
	clients, err := clientRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch clients", http.StatusInternalServerError)
		return
	}
	response := make([]ClientResponse, len(clients))
	for i, c := range clients {
		response[i] = clientResponse(c)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// SearchClientsHandler godoc
// @Summary Search clients by name or document
// @Tags clients
// @Produce json
// @Param q query string true "Substring to match"
// @Success 200 {array} ClientResponse
// @Failure 500 {string} string "Internal error"
// @Router /clients/search [get]
func SearchClientsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	clients, err := clientRepo.Search(q)
	if err != nil {
		http.Error(w, "could not search clients", http.StatusInternalServerError)
		return
	}
	response := make([]ClientResponse, len(clients))
	for i, c := range clients {
		response[i] = clientResponse(c)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetClientByIDHandler godoc
// @Summary Get client by ID
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} ClientResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /clients/{id} [get]
func GetClientByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid client ID", http.StatusBadRequest)
		return
	}

	client, err := clientRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrClientNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch client", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(clientResponse(client))
}

// UpdateClientHandler godoc
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param client body ClientRequest true "Updated client"
// @Success 200 {object} ClientResponse
// @Failure 400 {object} []ValidationError
// @Failure 404 {string} string "Not found"
// @Router /clients/{id} [put]
func UpdateClientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid client ID", http.StatusBadRequest)
		return
	}

	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateClient(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	client := models.Client{
		ID:        id,
		Name:      req.Name,
		Document:  req.Document,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
		Address:   req.Address,
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	updated, err := clientRepo.Update(client)
	if err != nil {
		if errors.Is(err, repo.ErrClientNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update client", http.StatusInternalServerError)
		return
	}
	watch.Publish("clients", "updated", updated.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(clientResponse(updated))
}

// DeleteClientHandler godoc
// @Summary Delete a client
// @Tags clients
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /clients/{id} [delete]
func DeleteClientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid client ID", http.StatusBadRequest)
		return
	}
	if err := clientRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrClientNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete client", http.StatusInternalServerError)
		return
	}
	watch.Publish("clients", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
