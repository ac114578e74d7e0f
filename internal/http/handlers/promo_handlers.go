package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	models "github.com/rogerio-castellano/retail-manager/internal/models"
	repo "github.com/rogerio-castellano/retail-manager/internal/repo"
	"github.com/rogerio-castellano/retail-manager/internal/watch"
)

func promoResponse(p models.Promo) PromoResponse {
	return PromoResponse{
		Id:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
}

// CreatePromoHandler godoc
// @Summary Create a promotional offer
// @Tags promos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param promo body PromoRequest true "Promo to add"
// @Success 201 {object} PromoResponse
// @Failure 400 {object} []ValidationError
// @Router /promos [post]
func CreatePromoHandler(w http.ResponseWriter, r *http.Request) {
	var req PromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validatePromo(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	created, err := promoRepo.Create(models.Promo{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		http.Error(w, "could not create promo", http.StatusInternalServerError)
		return
	}
	watch.Publish("promos", "created", created.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(promoResponse(created))
}

// GetPromosHandler godoc
// @Summary List all promos
// @Tags promos
// @Produce json
// @Success 200 {array} PromoResponse
// @Failure 500 {string} string "Internal error"
// @Router /promos [get]
func GetPromosHandler(w http.ResponseWriter, r *http.Request) {
	promos, err := promoRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch promos", http.StatusInternalServerError)
		return
	}
	response := make([]PromoResponse, len(promos))
	for i, p := range promos {
		response[i] = promoResponse(p)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetPromoByIDHandler godoc
// @Summary Get promo by ID
// @Tags promos
// @Produce json
// @Param id path int true "Promo ID"
// @Success 200 {object} PromoResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /promos/{id} [get]
func GetPromoByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid promo ID", http.StatusBadRequest)
		return
	}

	promo, err := promoRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrPromoNotFound) {
			http.Error(w, "promo not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch promo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(promoResponse(promo))
}

// UpdatePromoHandler godoc
// @Summary Update a promo
// @Tags promos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Promo ID"
// @Param promo body PromoRequest true "Updated promo"
// @Success 200 {object} PromoResponse
// @Failure 400 {object} []ValidationError
// @Failure 404 {string} string "Not found"
// @Router /promos/{id} [put]
func UpdatePromoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid promo ID", http.StatusBadRequest)
		return
	}

	var req PromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validatePromo(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	updated, err := promoRepo.Update(models.Promo{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, repo.ErrPromoNotFound) {
			http.Error(w, "promo not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update promo", http.StatusInternalServerError)
		return
	}
	watch.Publish("promos", "updated", updated.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(promoResponse(updated))
}

// DeletePromoHandler godoc
// @Summary Delete a promo
// @Tags promos
// @Security BearerAuth
// @Param id path int true "Promo ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /promos/{id} [delete]
func DeletePromoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid promo ID", http.StatusBadRequest)
		return
	}
	if err := promoRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrPromoNotFound) {
			http.Error(w, "promo not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete promo", http.StatusInternalServerError)
		return
	}
	watch.Publish("promos", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
