package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"blogstarter/internal/models"
	"blogstarter/internal/pagination"
	"blogstarter/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const sseKeepAlive = 25 * time.Second

func optionalInt(values url.Values, key string) (*int, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", models.ErrBadRequest, key)
	}
	return &v, nil
}

func optionalString(values url.Values, key string) *string {
	if !values.Has(key) {
		return nil
	}
	v := values.Get(key)
	return &v
}

func parsePostsQuery(values url.Values) (service.PostsQuery, error) {
	first, err := optionalInt(values, "first")
	if err != nil {
		return service.PostsQuery{}, err
	}
	last, err := optionalInt(values, "last")
	if err != nil {
		return service.PostsQuery{}, err
	}

	return service.PostsQuery{
		Args: pagination.Args{
			First:  first,
			Last:   last,
			After:  optionalString(values, "after"),
			Before: optionalString(values, "before"),
		},
		Query:          values.Get("query"),
		OrderField:     values.Get("orderField"),
		OrderDirection: values.Get("orderDirection"),
	}, nil
}

func (h *Handlers) PublishedPosts(w http.ResponseWriter, r *http.Request) {
	q, err := parsePostsQuery(r.URL.Query())
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	conn, err := h.PostService.PublishedPosts(r.Context(), q)
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	WriteJSON(w, conn, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req models.CreatePostInput
	if !h.decodeJSON(w, r, &req) {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), user.ID, req)
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	WriteJSON(w, post, http.StatusCreated)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.Post(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) PostAuthor(w http.ResponseWriter, r *http.Request) {
	author, err := h.PostService.PostAuthor(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	WriteJSON(w, author, http.StatusOK)
}

// SubscribePosts streams postCreated events as server-sent events until the
// client goes away.
func (h *Handlers) SubscribePosts(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	events, cancel := h.PostService.Subscribe()
	defer cancel()

	h.Metrics.SubscriberAdded()
	defer h.Metrics.SubscriberRemoved()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := rc.Flush(); err != nil {
		h.Log.Warn("streaming unsupported", zap.Error(err))
		return
	}

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case post, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(post)
			if err != nil {
				h.Log.Error("encode post event", zap.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: postCreated\nid: %s\ndata: %s\n\n", post.ID, data); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
