package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"accesshub/internal/apperrors"
	"accesshub/internal/response"
	"accesshub/internal/service/user"
)

type UserHandler struct {
	svc *user.Service
}

func NewUserHandler(svc *user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create handles POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperrors.Validation("invalid request body"))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "user created", created)
}

// List handles GET /api/users?page&limit
func (h *UserHandler) List(c *gin.Context) {
	page, ok := queryInt(c, "page", user.DefaultPage)
	if !ok {
		response.Fail(c, apperrors.Validation("page must be a number"))
		return
	}
	limit, ok := queryInt(c, "limit", user.DefaultLimit)
	if !ok {
		response.Fail(c, apperrors.Validation("limit must be a number"))
		return
	}

	users, pagination, err := h.svc.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "users listed", gin.H{
		"users":      users,
		"pagination": pagination,
	})
}

// GetByID handles GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "user found", u)
}

// Update handles PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperrors.Validation("invalid request body"))
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Email)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "user updated", updated)
}

// Delete handles DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "user deleted", nil)
}

// Statistics handles GET /api/users/statistics
func (h *UserHandler) Statistics(c *gin.Context) {
	stats, err := h.svc.Statistics(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "user statistics", stats)
}

// SearchByEmail handles GET /api/users/search/email?email=
func (h *UserHandler) SearchByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Fail(c, apperrors.Validation("email query parameter is required"))
		return
	}

	u, err := h.svc.GetByEmail(c.Request.Context(), email)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if u == nil {
		response.Fail(c, apperrors.NotFound("user not found"))
		return
	}
	response.OK(c, http.StatusOK, "user found", u.Public())
}

// Exists handles GET /api/users/:id/exists
func (h *UserHandler) Exists(c *gin.Context) {
	id := c.Param("id")
	exists, err := h.svc.Exists(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "existence check", gin.H{
		"exists": exists,
		"userId": id,
	})
}

// queryInt parses an optional integer query parameter.
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
