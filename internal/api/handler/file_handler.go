package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

// photoField is the multipart field carrying the uploaded file.
const photoField = "photo"

// FileHandler handles photo upload and retrieval.
type FileHandler struct {
	service ports.FileService
}

func NewFileHandler(service ports.FileService) *FileHandler {
	return &FileHandler{service: service}
}

// Upload handles POST /upload.
//
// @Summary      Upload a photo
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        photo  formData  file  true  "File to store"
// @Success      201    {object}  uploadEnvelope
// @Failure      400    {object}  map[string]any
// @Failure      413    {object}  map[string]any
// @Failure      500    {object}  map[string]string
// @Router       /upload [post]
func (h *FileHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile(photoField)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			metrics.UploadsTotal.WithLabelValues("failed").Inc()
			return he
		}
		metrics.UploadsTotal.WithLabelValues("missing_file").Inc()
		return domain.NewValidationError([]domain.FieldViolation{{
			Field: photoField,
			Kind:  domain.ViolationRequired,
		}})
	}

	src, err := fh.Open()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return domain.NewInternalError("open multipart file", err)
	}
	defer src.Close()

	body := &countingReader{r: src}
	name, err := h.service.Upload(c.Request().Context(), fh.Filename, body)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return err
	}

	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	metrics.UploadSizeBytes.Observe(float64(body.n))
	return respond(c, http.StatusCreated, "File uploaded successfully", "/file/"+url.PathEscape(name))
}

// Retrieve handles GET /file/:filename and streams the stored bytes.
//
// @Summary      Download an uploaded file
// @Tags         files
// @Produce      octet-stream
// @Param        filename  path  string  true  "Stored file name"
// @Success      200
// @Failure      404  {object}  map[string]any
// @Router       /file/{filename} [get]
func (h *FileHandler) Retrieve(c echo.Context) error {
	name, err := pathParam(c, "filename")
	if err != nil {
		return domain.ErrFileNotFound
	}

	f, err := h.service.Open(c.Request().Context(), name)
	if err != nil {
		return err
	}
	defer f.Content.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentType, f.ContentType)
	header.Set(echo.HeaderXContentTypeOptions, "nosniff")
	http.ServeContent(c.Response(), c.Request(), f.Name, f.ModTime, f.Content)
	return nil
}

// pathParam returns the decoded value of a path parameter. Echo matches on
// the raw path only when the request carries one, so only then is the value
// still escaped.
func pathParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

// countingReader records how many bytes were read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}
