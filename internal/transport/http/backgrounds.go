package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/cwrk-planet/meeting-service/internal/domain"
	"github.com/cwrk-planet/meeting-service/internal/service"
	"github.com/cwrk-planet/meeting-service/pkg/httputil"

	"github.com/go-chi/chi/v5"
)

const uploadField = "background"

// GET /backgrounds
func (h *Handler) ListBackgrounds(w http.ResponseWriter, r *http.Request) {
	items, err := h.backgroundSvc.ListBackgrounds(r.Context())
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, items)
}

// GET /backgrounds/{id}
func (h *Handler) GetBackground(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	bg, err := h.backgroundSvc.GetBackground(r.Context(), id)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, bg)
}

// GET /backgrounds/{id}/image
func (h *Handler) BackgroundImage(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	data, contentType, err := h.backgroundSvc.BackgroundImage(r.Context(), id)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

// POST /backgrounds, multipart поле "background"
func (h *Handler) UploadBackground(w http.ResponseWriter, r *http.Request) {
	// запас под заголовки multipart
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxBackgroundSize+64<<10)
	if err := r.ParseMultipartForm(service.MaxBackgroundSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.Error(r.Context(), w, domain.ErrTooLarge)
			return
		}
		httputil.Error(r.Context(), w, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error()))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		httputil.Error(r.Context(), w, fmt.Errorf("%w: no file uploaded", domain.ErrInvalidInput))
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxBackgroundSize+1))
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}

	bg, err := h.backgroundSvc.UploadBackground(r.Context(), header.Filename, data)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, bg)
}

// DELETE /backgrounds/{id}
func (h *Handler) DeleteBackground(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	if err := h.backgroundSvc.DeleteBackground(r.Context(), id); err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, DeletedResponse{Deleted: true})
}

// GET /users/{userID}/background
func (h *Handler) GetUserBackground(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	id, err := h.preferenceSvc.GetUserBackground(r.Context(), userID)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, UserBackgroundResponse{UserID: userID, BackgroundID: id})
}

// PUT /users/{userID}/background
func (h *Handler) SetUserBackground(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	var req UserBackgroundRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	if err := h.preferenceSvc.SetUserBackground(r.Context(), userID, req.BackgroundID); err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, UserBackgroundResponse{UserID: userID, BackgroundID: req.BackgroundID})
}

// GET /users/{userID}/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.preferenceSvc.GetSettings(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, st)
}

// PUT /users/{userID}/settings
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var st domain.UserSettings
	if err := decodeJSON(r, &st); err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	saved, err := h.preferenceSvc.SaveSettings(r.Context(), chi.URLParam(r, "userID"), st)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, saved)
}

// DELETE /users/{userID}/settings
func (h *Handler) ResetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.preferenceSvc.ResetSettings(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, st)
}
