package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/reads-stash/server/internal/auth"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/service"
)

// JournalHandler serves a user's journal entries, guarded the same way as
// collections.
type JournalHandler struct {
	journals *service.JournalService
	logger   *slog.Logger
}

func NewJournalHandler(journals *service.JournalService, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{journals: journals, logger: logger}
}

func (h *JournalHandler) guard(r *http.Request) (auth.Principal, error) {
	p, err := requirePrincipal(r)
	if err != nil {
		return auth.Principal{}, err
	}
	if err := auth.AuthorizeOwnerID(p, r.PathValue("userId"), auth.FamilyJournals); err != nil {
		return auth.Principal{}, err
	}
	return p, nil
}

// GET /api/users/{userId}/journals
func (h *JournalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	journals, err := h.journals.List(r.Context(), p.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, journals)
}

// GET /api/users/{userId}/journals/{journalId}
func (h *JournalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	id, err := pathID(r, "journalId", "Journal")
	if err != nil {
		WriteError(w, err)
		return
	}

	j, err := h.journals.Get(r.Context(), p.ID, id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

type journalRequest struct {
	Title string     `json:"title" validate:"required"`
	Text  string     `json:"text" validate:"required"`
	Date  *time.Time `json:"date"`
}

// POST /api/users/{userId}/journals
func (h *JournalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req journalRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	j := &model.Journal{Title: req.Title, Text: req.Text, UserID: p.ID}
	if req.Date != nil {
		j.Date = *req.Date
	}

	created, err := h.journals.Create(r.Context(), j)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// PATCH /api/users/{userId}/journals/{journalId}
func (h *JournalHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	id, err := pathID(r, "journalId", "Journal")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req journalRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	// The current entry supplies the date when the body omits it.
	current, err := h.journals.Get(r.Context(), p.ID, id)
	if err != nil {
		WriteError(w, err)
		return
	}

	j := &model.Journal{ID: id, Title: req.Title, Text: req.Text, Date: current.Date, UserID: p.ID}
	if req.Date != nil {
		j.Date = *req.Date
	}

	updated, err := h.journals.Update(r.Context(), j)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/users/{userId}/journals/{journalId}
// → 200 {"msg":"Deleted user journal <id>"}
func (h *JournalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	id, err := pathID(r, "journalId", "Journal")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.journals.Delete(r.Context(), p.ID, id); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgResponse{Msg: fmt.Sprintf("Deleted user journal %d", id)})
}
