package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"socialblaster/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore records the last saved file and returns a fixed URL.
type stubStore struct {
	savedName string
	savedType string
	err       error
}

func (s *stubStore) Save(filename string, file io.Reader, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.savedName = filename
	s.savedType = contentType
	return "/uploads/stored-file.png", nil
}

func multipartBody(t *testing.T, filename, contentType, data string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func uploadRequest(t *testing.T, store *stubStore, filename, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewUploadHandler(store, logger.New())
	router := setupTestRouter()
	router.POST("/api/upload", handler.Upload)

	body, formType := multipartBody(t, filename, contentType, "file contents")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", formType)
	router.ServeHTTP(w, req)
	return w
}

func TestUpload_Success(t *testing.T) {
	store := &stubStore{}
	w := uploadRequest(t, store, "vacation.png", "image/png")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		URL          string `json:"url"`
		OriginalName string `json:"originalName"`
		Size         int64  `json:"size"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/uploads/stored-file.png", resp.URL)
	assert.Equal(t, "vacation.png", resp.OriginalName)
	assert.Equal(t, int64(len("file contents")), resp.Size)
	assert.Equal(t, "vacation.png", store.savedName)
	assert.Equal(t, "image/png", store.savedType)
}

func TestUpload_VideoTypes(t *testing.T) {
	for _, tc := range []struct {
		filename    string
		contentType string
	}{
		{"clip.mp4", "video/mp4"},
		{"clip.mov", "video/quicktime"},
		{"clip.avi", "video/avi"},
		{"photo.jpg", "image/jpeg"},
		{"anim.gif", "image/gif"},
	} {
		w := uploadRequest(t, &stubStore{}, tc.filename, tc.contentType)
		assert.Equal(t, http.StatusOK, w.Code, "expected %s (%s) to be accepted", tc.filename, tc.contentType)
	}
}

func TestUpload_NoFile(t *testing.T) {
	handler := NewUploadHandler(&stubStore{}, logger.New())
	router := setupTestRouter()
	router.POST("/api/upload", handler.Upload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/upload", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file uploaded")
}

func TestUpload_DisallowedType(t *testing.T) {
	for _, tc := range []struct {
		filename    string
		contentType string
	}{
		{"script.exe", "application/octet-stream"},
		{"notes.txt", "text/plain"},
		{"page.html", "text/html"},
		// Extension and MIME type must both be allowed
		{"fake.png", "application/octet-stream"},
		{"fake.exe", "image/png"},
	} {
		w := uploadRequest(t, &stubStore{}, tc.filename, tc.contentType)
		assert.Equal(t, http.StatusBadRequest, w.Code, "expected %s (%s) to be rejected", tc.filename, tc.contentType)
		assert.Contains(t, w.Body.String(), "Only images and videos are allowed")
	}
}

func TestUpload_StoreFailure(t *testing.T) {
	store := &stubStore{err: fmt.Errorf("disk full")}
	w := uploadRequest(t, store, "vacation.png", "image/png")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Upload failed")
}
