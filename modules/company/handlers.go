package company

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/registrahq/registra/core"
	"github.com/registrahq/registra/modules/identity"
)

// Capabilities gating the company routes. Reads and writes are granted
// independently.
const (
	CapabilityRead = "read:company"
	CapabilityEdit = "edit:company"
)

// Handler exposes the company service over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler wraps a service with its HTTP transport.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Router mounts the company routes. Callers must mount it behind
// identity.Authenticate; the capability checks here assume an identity
// is already attached to the request context.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Group(func(read chi.Router) {
		read.Use(identity.RequireCapability(CapabilityRead))
		read.Get("/", h.list)
		read.Get("/{id}", h.get)
	})

	r.Group(func(edit chi.Router) {
		edit.Use(identity.RequireCapability(CapabilityEdit))
		edit.Post("/", h.create)
		edit.Put("/{id}", h.update)
		edit.Delete("/{id}", h.remove)
	})

	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companies, err := h.svc.List(r.Context())
	if err != nil {
		core.WriteError(w, err)
		return
	}
	core.WriteJSON(w, http.StatusOK, companies)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteError(w, core.ErrBadRequest)
		return
	}

	company, err := h.svc.Get(r.Context(), id)
	if err != nil {
		core.WriteError(w, mapServiceError(err))
		return
	}
	core.WriteJSON(w, http.StatusOK, company)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var params CompanyParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		core.WriteError(w, core.ErrBadRequest)
		return
	}

	actor := identity.GetIdentityFromContext(r.Context())
	company, err := h.svc.Create(r.Context(), actor.User.ID, params)
	if err != nil {
		core.WriteError(w, mapServiceError(err))
		return
	}
	core.WriteJSON(w, http.StatusCreated, company)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteError(w, core.ErrBadRequest)
		return
	}

	var params CompanyParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		core.WriteError(w, core.ErrBadRequest)
		return
	}

	company, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		core.WriteError(w, mapServiceError(err))
		return
	}
	core.WriteJSON(w, http.StatusOK, company)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteError(w, core.ErrBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		core.WriteError(w, mapServiceError(err))
		return
	}
	core.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidParams):
		return core.ErrUnprocessableEntity
	case errors.Is(err, ErrCompanyNotFound):
		return core.ErrNotFound
	case errors.Is(err, ErrRegistrationNumberUsed):
		return core.ErrConflict
	default:
		return err
	}
}
