package api

import (
	"encoding/json/v2"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
)

// maxVideoUploadBytes caps video uploads at 512MB.
const maxVideoUploadBytes = 512 << 20

func (s *Server) registerUploadRoutes() {
	// Multipart upload goes through chi directly because Huma doesn't
	// easily support multipart forms. Wrapped with an extended timeout
	// since video files are large.
	s.router.Post("/api/v1/uploads/video", withExtendedTimeout(s.handleUploadVideo, 10*time.Minute))
	s.router.Get("/api/v1/videos/{name}", s.handleServeVideo)
}

// UploadVideoResponse tells the client how to reference the stored video
// when creating an edit.
type UploadVideoResponse struct {
	Video  string `json:"video" doc:"Storage locator for the uploaded video"`
	Source string `json:"source" doc:"Always internal-storage"`
}

// handleUploadVideo accepts a multipart upload with a "video" field and
// stores it as an internal-storage blob.
func (s *Server) handleUploadVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, err := s.authenticateRequest(r.Header.Get("Authorization")); err != nil {
		writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxVideoUploadBytes)

	file, header, err := r.FormFile("video")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "VALIDATION", "No file uploaded. Use 'video' field in multipart form")
		return
	}
	defer file.Close()

	locator, err := s.videos.Save(ctx, file, filepath.Ext(header.Filename))
	if err != nil {
		s.logger.Error("video upload failed", "error", err, "filename", header.Filename)
		writeJSONError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	s.logger.Info("video uploaded", "locator", locator, "original_filename", header.Filename)

	writeJSON(w, http.StatusCreated, UploadVideoResponse{
		Video:  locator,
		Source: "internal-storage",
	})
}

// handleServeVideo streams a stored video blob.
func (s *Server) handleServeVideo(w http.ResponseWriter, r *http.Request) {
	locator := "videos/" + chi.URLParam(r, "name")

	path, err := s.videos.Path(locator)
	if err != nil || !s.videos.Exists(locator) {
		writeJSONError(w, http.StatusNotFound, "NOT_FOUND", "Video not found")
		return
	}

	http.ServeFile(w, r, path)
}

// withExtendedTimeout overrides per-request read and write deadlines for
// long-running transfers.
func withExtendedTimeout(next http.HandlerFunc, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := http.NewResponseController(w)
		_ = rc.SetReadDeadline(time.Now().Add(timeout))
		_ = rc.SetWriteDeadline(time.Now().Add(timeout))
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best effort response body
	_ = json.MarshalWrite(w, body)
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
