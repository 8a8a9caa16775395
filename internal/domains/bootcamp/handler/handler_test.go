package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootcamp-backend/internal/domains/bootcamp/model"
	"bootcamp-backend/internal/query"
	"bootcamp-backend/internal/shared/auth"
	"bootcamp-backend/internal/shared/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubService records photo uploads; the other operations are unused here
type stubService struct {
	uploads int
	read    []byte
}

func (s *stubService) ListBootcamps(context.Context, url.Values) (*query.Result, error) {
	return &query.Result{}, nil
}

func (s *stubService) GetBootcamp(context.Context, uuid.UUID) (*model.Bootcamp, error) {
	return &model.Bootcamp{}, nil
}

func (s *stubService) GetWithinRadius(context.Context, string, float64) ([]*model.Bootcamp, error) {
	return nil, nil
}

func (s *stubService) CreateBootcamp(context.Context, *auth.Principal, model.CreateBootcampRequest) (*model.Bootcamp, error) {
	return &model.Bootcamp{}, nil
}

func (s *stubService) UpdateBootcamp(context.Context, *auth.Principal, uuid.UUID, model.UpdateBootcampRequest) (*model.Bootcamp, error) {
	return &model.Bootcamp{}, nil
}

func (s *stubService) DeleteBootcamp(context.Context, *auth.Principal, uuid.UUID) error {
	return nil
}

func (s *stubService) UploadPhoto(_ context.Context, _ *auth.Principal, id uuid.UUID, file io.Reader) (*model.PhotoResponse, error) {
	s.uploads++
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	s.read = data
	return &model.PhotoResponse{Photo: "photo_" + id.String() + ".png"}, nil
}

func photoRouter(svc *stubService, maxUpload int64) *gin.Engine {
	h := NewBootcampHandler(svc, maxUpload)
	r := gin.New()
	r.PUT("/bootcamps/:id/photo", func(c *gin.Context) {
		c.Set(middleware.PrincipalKey, &auth.Principal{ID: uuid.New(), Role: auth.RolePublisher})
		c.Next()
	}, h.UploadPhoto)
	return r
}

func multipartPhoto(t *testing.T, size int) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0x89}, size))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestUploadPhoto_RejectsOversizeBeforeService(t *testing.T) {
	svc := &stubService{}
	r := photoRouter(svc, 16)

	body, contentType := multipartPhoto(t, 64)
	req := httptest.NewRequest(http.MethodPut, "/bootcamps/"+uuid.NewString()+"/photo", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Please upload an image less than 16 bytes", resp["error"])
	assert.Zero(t, svc.uploads)
}

func TestUploadPhoto_StreamsFileToService(t *testing.T) {
	svc := &stubService{}
	r := photoRouter(svc, 1024)

	body, contentType := multipartPhoto(t, 100)
	req := httptest.NewRequest(http.MethodPut, "/bootcamps/"+uuid.NewString()+"/photo", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.uploads)
	assert.Len(t, svc.read, 100)
}

func TestUploadPhoto_MissingFile(t *testing.T) {
	svc := &stubService{}
	r := photoRouter(svc, 1024)

	req := httptest.NewRequest(http.MethodPut, "/bootcamps/"+uuid.NewString()+"/photo", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.uploads)
}
