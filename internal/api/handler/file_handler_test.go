package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/service"
	"github.com/99minutos/user-service/internal/infrastructure/storage"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newFileHandler(t *testing.T) (*FileHandler, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	clock := time.UnixMilli(1718000000000)
	store, err := storage.NewLocalStore(fsys, "uploads", storage.WithClock(func() time.Time { return clock }))
	require.NoError(t, err)
	return NewFileHandler(service.NewFileService(store, zerolog.Nop())), fsys
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestFileHandler_Upload_StoresSanitisedName(t *testing.T) {
	h, fsys := newFileHandler(t)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(multipartRequest(t, "photo", "my:photo?.png", pngBytes), rec)

	require.NoError(t, h.Upload(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "File uploaded successfully", resp.Message)
	assert.Equal(t, "/file/1718000000000_myphoto.png", resp.Data)

	stored, err := afero.ReadFile(fsys, "uploads/1718000000000_myphoto.png")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)
}

func TestFileHandler_Upload_EscapesDataPath(t *testing.T) {
	h, _ := newFileHandler(t)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(multipartRequest(t, "photo", "summer trip.png", pngBytes), rec)

	require.NoError(t, h.Upload(c))
	assert.Contains(t, rec.Body.String(), `"/file/1718000000000_summer%20trip.png"`)
}

func TestFileHandler_Upload_MissingFile(t *testing.T) {
	h, _ := newFileHandler(t)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(multipartRequest(t, "avatar", "a.png", pngBytes), rec)

	err := h.Upload(c)

	de, ok := domain.AsError(err)
	require.True(t, ok, "expected domain error, got %v", err)
	assert.Equal(t, domain.KindValidation, de.Kind)
	require.Len(t, de.Violations, 1)
	assert.Equal(t, "photo", de.Violations[0].Field)
	assert.Equal(t, domain.ViolationRequired, de.Violations[0].Kind)
}

func TestFileHandler_Upload_NotMultipart(t *testing.T) {
	h, _ := newFileHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	assert.True(t, domain.IsKind(h.Upload(c), domain.KindValidation))
}

// retrieveContext builds the context echo's router would hand to Retrieve
// for a request to /file/<escaped>.
func retrieveContext(escaped string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/file/"+escaped, nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("filename")
	c.SetParamValues(strings.TrimPrefix(echo.GetPath(req), "/file/"))
	return c, rec
}

func TestFileHandler_Retrieve_RoundTrip(t *testing.T) {
	h, _ := newFileHandler(t)

	up := httptest.NewRecorder()
	require.NoError(t, h.Upload(echo.New().NewContext(multipartRequest(t, "photo", "summer trip.png", pngBytes), up)))

	c, rec := retrieveContext("1718000000000_summer%20trip.png")
	require.NoError(t, h.Retrieve(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))
	assert.Equal(t, pngBytes, rec.Body.Bytes())
}

func TestFileHandler_Retrieve_NotFound(t *testing.T) {
	h, fsys := newFileHandler(t)
	require.NoError(t, afero.WriteFile(fsys, "secret.txt", []byte("top secret"), 0o644))

	for _, name := range []string{
		"nope.png",
		"../secret.txt",
		"..%2Fsecret.txt",
		"%2e%2e%2fsecret.txt",
		"/secret.txt",
		"..",
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := retrieveContext(name)
			err := h.Retrieve(c)
			assert.ErrorIs(t, err, domain.ErrFileNotFound)
			assert.Zero(t, rec.Body.Len())
		})
	}
}

func TestFileHandler_Retrieve_PercentInName(t *testing.T) {
	for _, original := range []string{"50%.png", "a%41.png", "100%25.png"} {
		t.Run(original, func(t *testing.T) {
			h, _ := newFileHandler(t)

			up := httptest.NewRecorder()
			require.NoError(t, h.Upload(echo.New().NewContext(multipartRequest(t, "photo", original, pngBytes), up)))
			var resp struct {
				Data string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(up.Body.Bytes(), &resp))

			c, rec := retrieveContext(strings.TrimPrefix(resp.Data, "/file/"))
			require.NoError(t, h.Retrieve(c))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, pngBytes, rec.Body.Bytes())
		})
	}
}
