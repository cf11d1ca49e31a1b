package identity

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/registrahq/registra/core"
	"github.com/registrahq/registra/pkg/authz"
	"github.com/registrahq/registra/pkg/clientip"
)

// Handler exposes the identity service over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler wraps a service with its HTTP transport.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// writeError renders err, clearing the session cookie first whenever
// the response is Unauthorized. Every 401 leaving this module carries
// the clearing instruction, whichever check produced it.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var httpErr core.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code == http.StatusUnauthorized {
		h.svc.sessions.ClearCookie(w)
	}
	core.WriteError(w, err)
}

// Router mounts the identity routes. Auth endpoints are public; user
// endpoints require an authenticated session; admin endpoints
// additionally require the admin role.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	authn := Authenticate(h.svc.sessions, h.svc.users)

	r.Route("/auth", func(auth chi.Router) {
		auth.Post("/register", h.register)
		auth.Post("/login", h.login)
		auth.With(authn).Post("/logout", h.logout)
	})

	r.Route("/me", func(me chi.Router) {
		me.Use(authn)
		me.Get("/", h.me)
		me.Get("/sessions", h.mySessions)
	})

	r.Route("/admin/users", func(admin chi.Router) {
		admin.Use(authn, RequireAdmin())
		admin.Get("/", h.pendingUsers)
		admin.Post("/{id}/approve", h.approve)
		admin.Post("/{id}/reject", h.reject)
	})

	return r
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var params RegisterParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		core.WriteError(w, core.ErrBadRequest)
		return
	}

	user, err := h.svc.Register(r.Context(), params)
	if err != nil {
		h.writeError(w, mapServiceError(err))
		return
	}
	core.WriteJSON(w, http.StatusCreated, user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var params LoginParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		core.WriteError(w, core.ErrBadRequest)
		return
	}
	params.UserAgent = r.UserAgent()
	params.ClientIP = clientip.GetIP(r)

	user, _, err := h.svc.Login(r.Context(), w, params)
	if err != nil {
		h.writeError(w, mapServiceError(err))
		return
	}
	core.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	id := GetIdentityFromContext(r.Context())
	if err := h.svc.Logout(r.Context(), w, id.Session); err != nil {
		core.WriteError(w, err)
		return
	}
	core.WriteJSON(w, http.StatusOK, map[string]bool{"loggedOut": true})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id := GetIdentityFromContext(r.Context())
	core.WriteJSON(w, http.StatusOK, id.User)
}

func (h *Handler) mySessions(w http.ResponseWriter, r *http.Request) {
	id := GetIdentityFromContext(r.Context())
	sessions, err := h.svc.Sessions(r.Context(), id.User.ID)
	if err != nil {
		core.WriteError(w, err)
		return
	}
	core.WriteJSON(w, http.StatusOK, sessions)
}

func (h *Handler) pendingUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.PendingUsers(r.Context())
	if err != nil {
		core.WriteError(w, err)
		return
	}
	core.WriteJSON(w, http.StatusOK, users)
}

// approveRequest optionally names the role to grant; defaults to member.
type approveRequest struct {
	Role string `json:"role"`
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteError(w, core.ErrBadRequest)
		return
	}

	var req approveRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}
	}
	if req.Role == "" {
		req.Role = authz.RoleMember
	}

	user, err := h.svc.Approve(r.Context(), id, req.Role)
	if err != nil {
		h.writeError(w, mapServiceError(err))
		return
	}
	core.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteError(w, core.ErrBadRequest)
		return
	}

	user, err := h.svc.Reject(r.Context(), id)
	if err != nil {
		h.writeError(w, mapServiceError(err))
		return
	}
	core.WriteJSON(w, http.StatusOK, user)
}

// mapServiceError translates domain errors into HTTP errors. Anything
// unmapped falls through to WriteError's opaque 500.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidParams):
		return core.ErrUnprocessableEntity
	case errors.Is(err, ErrEmailTaken):
		return core.ErrConflict
	case errors.Is(err, ErrInvalidCredentials):
		return core.NewHTTPError(http.StatusUnauthorized, "invalid_credentials")
	case errors.Is(err, ErrAccountPending):
		return core.NewHTTPError(http.StatusForbidden, "account_pending")
	case errors.Is(err, ErrAccountRejected):
		return core.NewHTTPError(http.StatusForbidden, "account_rejected")
	case errors.Is(err, ErrTooManyAttempts):
		return core.ErrTooManyRequests
	case errors.Is(err, ErrUserNotFound):
		return core.ErrNotFound
	case errors.Is(err, ErrNotPending):
		return core.ErrConflict
	default:
		return err
	}
}
