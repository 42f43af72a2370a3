// internal/adapters/in/http/handlers/auth_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	usecase "storefront/internal/application/usecase"
)

// AuthHandler は /auth/* と /me を扱います。
type AuthHandler struct {
	uc  *usecase.AuthUsecase
	log logrus.FieldLogger
}

func NewAuthHandler(uc *usecase.AuthUsecase, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type meResponse struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// RegisterPublicRoutes は認証不要のルート。
func (h *AuthHandler) RegisterPublicRoutes(r *mux.Router) {
	r.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
}

// RegisterUserRoutes は RequireUser の内側に置くルート。
func (h *AuthHandler) RegisterUserRoutes(r *mux.Router) {
	r.HandleFunc("/auth/logout", h.logout).Methods(http.MethodPost)
	r.HandleFunc("/me", h.me).Methods(http.MethodGet)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	cred, err := h.uc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, cred)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	cred, err := h.uc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, cred)
}

// logout はトークンの持ち主の refresh token をすべて失効させる。
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if err := h.uc.RevokeSessions(r.Context(), u.UID); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	writeJSON(w, http.StatusOK, meResponse{
		UID:     u.UID,
		Email:   u.Email,
		IsAdmin: h.uc.IsAdmin(u),
	})
}
