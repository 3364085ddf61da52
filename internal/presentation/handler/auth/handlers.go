package auth

import (
	"context"
	"net/http"

	"github.com/hilthontt/roombook/internal/domain"
	"github.com/hilthontt/roombook/internal/infrastructure/json"
	"github.com/hilthontt/roombook/internal/presentation/utils"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Session, error)
	Signup(ctx context.Context, email, password string) (string, *domain.Session, error)
	Logout(ctx context.Context, id string) error
}

type Handler struct {
	auth   AuthService
	cookie utils.CookieOptions
}

func NewHandler(auth AuthService, cookie utils.CookieOptions) *Handler {
	return &Handler{
		auth:   auth,
		cookie: cookie,
	}
}

func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, h.auth.Signup, http.StatusCreated)
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, h.auth.Login, http.StatusOK)
}

func (h *Handler) start(
	w http.ResponseWriter,
	r *http.Request,
	authenticate func(ctx context.Context, email, password string) (string, *domain.Session, error),
	status int,
) {
	var req credentialsRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	id, session, err := authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	// a new login replaces whatever session the browser had
	if old := utils.SessionID(r, h.cookie); old != "" {
		_ = h.auth.Logout(r.Context(), old)
	}

	utils.SetSessionCookie(w, h.cookie, id)
	json.Write(w, status, userResponse{User: *session.User})
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), utils.SessionID(r, h.cookie)); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.ClearSessionCookie(w, h.cookie)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	session := utils.SessionFrom(r.Context())
	if !session.Authenticated() {
		json.WriteUnauthorizedError(w)
		return
	}

	json.Write(w, http.StatusOK, userResponse{User: *session.User})
}
