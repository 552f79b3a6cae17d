package handlers

import (
	"net/http"

	"blogstarter/internal/models"

	"github.com/gorilla/mux"
)

// currentUser is only reachable behind the auth middleware; a missing user
// means the route was wired without it.
func (h *Handlers) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		WriteError(w, "authentication required", http.StatusUnauthorized)
	}
	return user, ok
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	me, err := h.UserService.Me(r.Context(), user.ID)
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	WriteJSON(w, me, http.StatusOK)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req models.UpdateUserInput
	if !h.decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.UserService.UpdateUser(r.Context(), user.ID, req)
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	WriteJSON(w, updated, http.StatusOK)
}

func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req models.ChangePasswordInput
	if !h.decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.UserService.ChangePassword(r.Context(), user.ID, req)
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	WriteJSON(w, updated, http.StatusOK)
}

func (h *Handlers) UserPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.UserPosts(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	WriteJSON(w, posts, http.StatusOK)
}
