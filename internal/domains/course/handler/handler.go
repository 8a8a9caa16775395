package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bootcamp-backend/internal/domains/course/model"
	"bootcamp-backend/internal/domains/course/service"
	"bootcamp-backend/internal/shared/apperror"
	"bootcamp-backend/internal/shared/middleware"
	"bootcamp-backend/internal/shared/response"
)

// =====================================================
// COURSE HANDLER
// =====================================================

type CourseHandler struct {
	svc service.Service
}

func NewCourseHandler(svc service.Service) *CourseHandler {
	return &CourseHandler{svc: svc}
}

// ListCourses
// GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	h.list(c, nil)
}

// ListBootcampCourses
// GET /api/v1/bootcamps/:id/courses
func (h *CourseHandler) ListBootcampCourses(c *gin.Context) {
	bootcampID, ok := parseID(c, "Bootcamp")
	if !ok {
		return
	}
	h.list(c, &bootcampID)
}

func (h *CourseHandler) list(c *gin.Context, bootcampID *uuid.UUID) {
	result, err := h.svc.ListCourses(c.Request.Context(), bootcampID, c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCourse
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := parseID(c, "Course")
	if !ok {
		return
	}

	course, err := h.svc.GetCourse(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

// CreateCourse
// POST /api/v1/bootcamps/:id/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Not authorized to access this route"))
		return
	}
	bootcampID, ok := parseID(c, "Bootcamp")
	if !ok {
		return
	}

	var req model.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("%s", err.Error()))
		return
	}

	course, err := h.svc.CreateCourse(c.Request.Context(), p, bootcampID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, course)
}

// UpdateCourse
// PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Not authorized to access this route"))
		return
	}
	id, ok := parseID(c, "Course")
	if !ok {
		return
	}

	var req model.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("%s", err.Error()))
		return
	}

	course, err := h.svc.UpdateCourse(c.Request.Context(), p, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

// DeleteCourse
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Not authorized to access this route"))
		return
	}
	id, ok := parseID(c, "Course")
	if !ok {
		return
	}

	if err := h.svc.DeleteCourse(c.Request.Context(), p, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// parseID reads the :id path parameter
func parseID(c *gin.Context, resource string) (uuid.UUID, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Error(c, apperror.NotFound("%s not found with id of %s", resource, raw))
		return uuid.Nil, false
	}
	return id, true
}
