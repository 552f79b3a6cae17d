package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	writeText(w, h.HealthService.Hello())
}

func (h *Handlers) Hello(w http.ResponseWriter, r *http.Request) {
	writeText(w, h.HealthService.HelloName(mux.Vars(r)["name"]))
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handlers) Ready(w http.ResponseWriter, r *http.Request) {
	readiness := h.HealthService.Ready(r.Context())

	status := http.StatusOK
	if !readiness.Ready {
		status = http.StatusServiceUnavailable
	}
	WriteJSON(w, readiness, status)
}
