package handlers

import (
	"net/http"

	"blogstarter/internal/models"
)

// writeAuth answers with the pair and the user behind its access token. The
// pair was issued in this request, so it needs no further verification.
func (h *Handlers) writeAuth(w http.ResponseWriter, r *http.Request, pair models.TokenPair, status int) {
	user, err := h.AuthService.ResolveUser(r.Context(), pair.AccessToken)
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	WriteJSON(w, models.Auth{TokenPair: pair, User: user}, status)
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupInput
	if !h.decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.AuthService.Signup(r.Context(), req)
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	h.writeAuth(w, r, pair, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginInput
	if !h.decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	h.writeAuth(w, r, pair, http.StatusOK)
}

func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshInput
	if !h.decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.Token)
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	WriteJSON(w, pair, http.StatusOK)
}
