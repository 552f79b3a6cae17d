package app

import (
	"net/http"

	handlers "blogstarter/internal/handler"
	"blogstarter/internal/middleware"

	"github.com/gorilla/mux"
)

// NewRouter registers every route and wraps the router with the request
// middlewares.
func NewRouter(h *handlers.Handlers) http.Handler {
	r := mux.NewRouter()
	r.Use(mux.MiddlewareFunc(middleware.Metrics(h.Metrics)))

	authed := func(fn http.HandlerFunc) http.Handler {
		return middleware.Auth(h.AuthService, h.Log)(fn)
	}

	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/hello/{name}", h.Hello).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", h.Ready).Methods(http.MethodGet)
	r.Handle(h.Cfg.MetricsPath, h.Metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/signup", h.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Refresh).Methods(http.MethodPost)

	api.Handle("/me", authed(h.Me)).Methods(http.MethodGet)
	api.Handle("/me", authed(h.UpdateUser)).Methods(http.MethodPatch)
	api.Handle("/me/password", authed(h.ChangePassword)).Methods(http.MethodPut)

	api.HandleFunc("/posts", h.PublishedPosts).Methods(http.MethodGet)
	api.Handle("/posts", authed(h.CreatePost)).Methods(http.MethodPost)
	api.HandleFunc("/posts/subscribe", h.SubscribePosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", h.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}/author", h.PostAuthor).Methods(http.MethodGet)
	api.Handle("/posts/{id}/images", authed(h.AddImage)).Methods(http.MethodPost)
	api.Handle("/posts/{id}/images/{imageId}", authed(h.DeleteImage)).Methods(http.MethodDelete)

	api.HandleFunc("/users/{id}/posts", h.UserPosts).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	chain := []middleware.Middleware{middleware.CorrelationID, middleware.Logging(h.Log)}
	if h.Cfg.Server.CORSEnabled {
		chain = append(chain, middleware.CORS)
	}

	return middleware.Chain(r, chain...)
}
