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

func noteResponse(n models.Note) NoteResponse {
	return NoteResponse{Id: n.ID, Title: n.Title, Body: n.Body, RemindAt: n.RemindAt}
}

// CreateNoteHandler godoc
// @Summary Create a reminder note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param note body NoteRequest true "Note to add"
// @Success 201 {object} NoteResponse
// @Failure 400 {object} []ValidationError
// @Router /notes [post]
func CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateNote(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	created, err := noteRepo.Create(models.Note{Title: req.Title, Body: req.Body, RemindAt: req.RemindAt})
	if err != nil {
		http.Error(w, "could not create note", http.StatusInternalServerError)
		return
	}
	watch.Publish("notes", "created", created.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(noteResponse(created))
}

// GetNotesHandler godoc
// @Summary List all notes, reminders first
// @Tags notes
// @Produce json
// @Success 200 {array} NoteResponse
// @Failure 500 {string} string "Internal error"
// @Router /notes [get]
func GetNotesHandler(w http.ResponseWriter, r *http.Request) {
	notes, err := noteRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch notes", http.StatusInternalServerError)
		return
	}
	response := make([]NoteResponse, len(notes))
	for i, n := range notes {
		response[i] = noteResponse(n)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetNoteByIDHandler godoc
// @Summary Get note by ID
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} NoteResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /notes/{id} [get]
func GetNoteByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid note ID", http.StatusBadRequest)
		return
	}

	note, err := noteRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNoteNotFound) {
			http.Error(w, "note not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch note", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(noteResponse(note))
}

// UpdateNoteHandler godoc
// @Summary Update a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Param note body NoteRequest true "Updated note"
// @Success 200 {object} NoteResponse
// @Failure 400 {object} []ValidationError
// @Failure 404 {string} string "Not found"
// @Router /notes/{id} [put]
func UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid note ID", http.StatusBadRequest)
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateNote(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	updated, err := noteRepo.Update(models.Note{ID: id, Title: req.Title, Body: req.Body, RemindAt: req.RemindAt})
	if err != nil {
		if errors.Is(err, repo.ErrNoteNotFound) {
			http.Error(w, "note not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update note", http.StatusInternalServerError)
		return
	}
	watch.Publish("notes", "updated", updated.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(noteResponse(updated))
}

// DeleteNoteHandler godoc
// @Summary Delete a note
// @Tags notes
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /notes/{id} [delete]
func DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid note ID", http.StatusBadRequest)
		return
	}
	if err := noteRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrNoteNotFound) {
			http.Error(w, "note not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete note", http.StatusInternalServerError)
		return
	}
	watch.Publish("notes", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
