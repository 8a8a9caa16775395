package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bootcamp-backend/internal/domains/bootcamp/model"
	"bootcamp-backend/internal/domains/bootcamp/service"
	"bootcamp-backend/internal/shared/apperror"
	"bootcamp-backend/internal/shared/middleware"
	"bootcamp-backend/internal/shared/response"
)

// =====================================================
// BOOTCAMP HANDLER
// =====================================================

// multipartOverhead is the body allowance for the form envelope around a photo
const multipartOverhead = 64 << 10

type BootcampHandler struct {
	svc       service.Service
	maxUpload int64
}

// NewBootcampHandler caps photo uploads at maxUpload bytes, 0 disables the cap
func NewBootcampHandler(svc service.Service, maxUpload int64) *BootcampHandler {
	return &BootcampHandler{svc: svc, maxUpload: maxUpload}
}

// ListBootcamps
// GET /api/v1/bootcamps
func (h *BootcampHandler) ListBootcamps(c *gin.Context) {
	result, err := h.svc.ListBootcamps(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBootcamp
// GET /api/v1/bootcamps/:id
func (h *BootcampHandler) GetBootcamp(c *gin.Context) {
	id, ok := parseBootcampID(c)
	if !ok {
		return
	}

	b, err := h.svc.GetBootcamp(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// GetBootcampsInRadius
// GET /api/v1/bootcamps/radius/:zipcode/:distance
func (h *BootcampHandler) GetBootcampsInRadius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		response.Error(c, apperror.Validation("Invalid distance '%s'", c.Param("distance")))
		return
	}

	bootcamps, err := h.svc.GetWithinRadius(c.Request.Context(), c.Param("zipcode"), distance)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithCount(c, http.StatusOK, len(bootcamps), nil, bootcamps)
}

// CreateBootcamp
// POST /api/v1/bootcamps
func (h *BootcampHandler) CreateBootcamp(c *gin.Context) {
	// Step 1: principal
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Not authorized to access this route"))
		return
	}

	// Step 2: bind
	var req model.CreateBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("%s", err.Error()))
		return
	}

	// Step 3: create
	b, err := h.svc.CreateBootcamp(c.Request.Context(), p, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

// UpdateBootcamp
// PUT /api/v1/bootcamps/:id
func (h *BootcampHandler) UpdateBootcamp(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Not authorized to access this route"))
		return
	}
	id, ok := parseBootcampID(c)
	if !ok {
		return
	}

	var req model.UpdateBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("%s", err.Error()))
		return
	}

	b, err := h.svc.UpdateBootcamp(c.Request.Context(), p, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// DeleteBootcamp
// DELETE /api/v1/bootcamps/:id
func (h *BootcampHandler) DeleteBootcamp(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Not authorized to access this route"))
		return
	}
	id, ok := parseBootcampID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteBootcamp(c.Request.Context(), p, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// UploadPhoto expects a multipart "file" field
// PUT /api/v1/bootcamps/:id/photo
func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Not authorized to access this route"))
		return
	}
	id, ok := parseBootcampID(c)
	if !ok {
		return
	}

	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+multipartOverhead)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.Error(c, h.tooLarge())
			return
		}
		response.Error(c, apperror.Validation("Please upload a file"))
		return
	}
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		response.Error(c, h.tooLarge())
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error(c, apperror.Internal(err))
		return
	}
	defer f.Close()

	res, err := h.svc.UploadPhoto(c.Request.Context(), p, id, f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *BootcampHandler) tooLarge() error {
	return apperror.Validation("Please upload an image less than %d bytes", h.maxUpload)
}

func parseBootcampID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Error(c, apperror.NotFound("Bootcamp not found with id of %s", raw))
		return uuid.Nil, false
	}
	return id, true
}
