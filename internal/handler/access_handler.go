package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accesshub/internal/apperrors"
	"accesshub/internal/response"
	"accesshub/internal/service/access"
)

type AccessHandler struct {
	svc *access.Service
}

func NewAccessHandler(svc *access.Service) *AccessHandler {
	return &AccessHandler{svc: svc}
}

// Increment handles POST /api/access/increment
func (h *AccessHandler) Increment(c *gin.Context) {
	v, err := h.svc.Increment(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "access count incremented", v)
}

// Count handles GET /api/access/count
func (h *AccessHandler) Count(c *gin.Context) {
	v, err := h.svc.CurrentCount(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "current access count", v)
}

// Statistics handles GET /api/access/statistics
func (h *AccessHandler) Statistics(c *gin.Context) {
	stats, err := h.svc.Statistics(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "access statistics", stats)
}

// Health handles GET /api/access/health
func (h *AccessHandler) Health(c *gin.Context) {
	valid, err := h.svc.ValidateIntegrity(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	if !valid {
		response.Fail(c, apperrors.Internal("access counter integrity check failed", nil))
		return
	}
	response.OK(c, http.StatusOK, "access counter healthy", gin.H{
		"status": "healthy",
		"valid":  true,
	})
}

// Reset handles POST /api/access/reset
func (h *AccessHandler) Reset(c *gin.Context) {
	v, err := h.svc.Reset(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "access count reset", v)
}
