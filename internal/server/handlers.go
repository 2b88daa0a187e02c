package server

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/varoOP/seasonal/internal/calendar"
	"github.com/varoOP/seasonal/internal/domain"
)

// activeResponse is what the page renderer consumes
type activeResponse struct {
	Active bool `json:"active"`
	*domain.ActiveImage
}

// Active /api/active
func (s *Server) Active(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	img, err := s.service.GetActiveImage(r.Context(), s.clock.Now())
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	resp := activeResponse{Active: img != nil}
	if img != nil {
		resp.ActiveImage = &domain.ActiveImage{
			URL:         s.imageURL(img.ImagePath),
			ImagePath:   img.ImagePath,
			Position:    img.Position,
			Description: img.Description,
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// imageURL joins the configured base with the record's image path
func (s *Server) imageURL(imagePath string) string {
	base := s.cfg.ImageBaseURL
	if base == "" {
		base = "/"
	}

	if u, err := url.Parse(base); err == nil && u.IsAbs() {
		u.Path = path.Join(u.Path, imagePath)
		return u.String()
	}

	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(imagePath, "/")
}

// ListImages /api/images
func (s *Server) ListImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	images, err := s.service.GetAllImages(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, images)
}

// GetImage /api/images/:id
func (s *Server) GetImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := s.parseID(w, ps)
	if !ok {
		return
	}

	img, err := s.service.GetImage(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, img)
}

// AddImage POST /api/images
func (s *Server) AddImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	img := domain.NewSeasonalImage()
	if err := json.NewDecoder(r.Body).Decode(&img); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	img.ID = 0

	id, err := s.service.AddImage(r.Context(), img)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// UpdateImage PUT /api/images/:id
func (s *Server) UpdateImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := s.parseID(w, ps)
	if !ok {
		return
	}

	var update domain.ImageUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	found, err := s.service.UpdateImage(r.Context(), id, update)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		s.writeError(w, domain.ErrNotFound)
		return
	}

	s.GetImage(w, r, ps)
}

// DeleteImage DELETE /api/images/:id
func (s *Server) DeleteImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := s.parseID(w, ps)
	if !ok {
		return
	}

	found, err := s.service.DeleteImage(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		s.writeError(w, domain.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleImage POST /api/images/:id/toggle
func (s *Server) ToggleImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := s.parseID(w, ps)
	if !ok {
		return
	}

	found, err := s.service.ToggleEnabled(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		s.writeError(w, domain.ErrNotFound)
		return
	}

	s.GetImage(w, r, ps)
}

// Calendar renders /calendar.ics
func (s *Server) Calendar(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	images, err := s.service.GetAllImages(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := calendar.Encode(&buf, images, s.clock.Now()); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", calendar.MimeType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes())
}

// Health /healthz
func (s *Server) Health(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			s.writeError(w, domain.NewStoreError(err, "ping"))
			return
		}
	}
	w.Header().Set("content-type", "text/plain")
	w.Write([]byte("ok\n"))
}

func (s *Server) requireAdmin(h httprouter.Handle) httprouter.Handle {
	if s.cfg.AdminToken == "" {
		return h
	}

	want := []byte("Bearer " + s.cfg.AdminToken)
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		got := []byte(r.Header.Get("Authorization"))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		h(w, r, ps)
	}
}

func (s *Server) parseID(w http.ResponseWriter, ps httprouter.Params) (int64, bool) {
	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Not Found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Reason, Field: verr.Field})
	case errors.Is(err, domain.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		s.log.Error().Err(err).Msg("Record store unavailable")
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "record store unavailable"})
	default:
		s.log.Error().Err(err).Msg("Request failed")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn().Err(err).Msg("Failed to write response")
	}
}
