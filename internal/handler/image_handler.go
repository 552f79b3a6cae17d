package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"blogstarter/internal/service"

	"github.com/gorilla/mux"
)

const sniffLen = 512

func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	// room for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, "file too large", http.StatusRequestEntityTooLarge)
			return
		}
		WriteError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		WriteError(w, "cannot read image", http.StatusBadRequest)
		return
	}
	head = head[:n]

	image, err := h.PostService.AddImage(r.Context(), user.ID, mux.Vars(r)["id"], service.ImageUpload{
		FileName:    header.Filename,
		ContentType: http.DetectContentType(head),
		Size:        header.Size,
		File:        io.MultiReader(bytes.NewReader(head), file),
	})
	if err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	WriteJSON(w, image, http.StatusCreated)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	if err := h.PostService.DeleteImage(r.Context(), user.ID, vars["id"], vars["imageId"]); err != nil {
		WriteServiceError(w, h.Log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
