package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plantstore/backend/internal/interfaces/http/dto"
	"github.com/plantstore/backend/internal/interfaces/http/middleware"
)

// uuidParam parses a UUID path parameter. On failure it writes a 400
// response and reports false.
func uuidParam(h *BaseHandler, c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// requireUser returns the authenticated user or writes a 401. Routes
// behind RequireAuth never hit the error path; this guards handlers
// mounted on mixed public/authenticated groups.
func requireUser(h *BaseHandler, c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}
