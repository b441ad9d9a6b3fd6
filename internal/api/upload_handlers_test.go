package api

import (
	"bytes"
	"encoding/json/v2"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadVideoRequest(t *testing.T, token, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("video", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/video", &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadVideo(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "uploader@example.com")

	content := []byte("fake video bytes")
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, uploadVideoRequest(t, token, "clip.mp4", content))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp UploadVideoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Video, "videos/"))
	assert.True(t, strings.HasSuffix(resp.Video, ".mp4"))
	assert.Equal(t, "internal-storage", resp.Source)

	// Stored blob is served back.
	name := strings.TrimPrefix(resp.Video, "videos/")
	get := httptest.NewRequest(http.MethodGet, "/api/v1/videos/"+name, nil)
	w = httptest.NewRecorder()
	ts.ServeHTTP(w, get)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
}

func TestUploadVideo_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	w := httptest.NewRecorder()
	ts.ServeHTTP(w, uploadVideoRequest(t, "", "clip.mp4", []byte("data")))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadVideo_UnknownExtension(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "uploader@example.com")

	w := httptest.NewRecorder()
	ts.ServeHTTP(w, uploadVideoRequest(t, token, "notes.txt", []byte("data")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServeVideo_Unknown(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/missing.mp4", nil)
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
