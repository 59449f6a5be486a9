package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"spacecatalog-backend/internal/domains/space"
	"spacecatalog-backend/internal/shared/middleware"
	"spacecatalog-backend/internal/shared/response"
)

type SpaceHandler struct {
	service space.Service
}

func NewSpaceHandler(service space.Service) *SpaceHandler {
	return &SpaceHandler{service: service}
}

// Create handles POST /spaces
func (h *SpaceHandler) Create(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req space.CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), callerID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Update handles PATCH /spaces/:identifier. The payload is only bound
// here; validation order (existence, then authorship, then fields) is the
// service's concern.
func (h *SpaceHandler) Update(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req space.UpdateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), callerID, c.Param("identifier"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Delete handles DELETE /spaces/:id
func (h *SpaceHandler) Delete(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("identifier"))
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), callerID, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Get handles GET /spaces/:identifier (id or slug)
func (h *SpaceHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// List handles GET /spaces
func (h *SpaceHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
