package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/session"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/response"
	"github.com/sangkips/cafe-api/internal/presentation/http/middleware"
)

// GetSession returns the session the auth middleware attached to the request
func GetSession(c *gin.Context) *session.Session {
	return middleware.GetSession(c)
}

// parseIDParam reads a uuid path parameter, writing a 400 when it is malformed
func parseIDParam(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body, writing a 400 when it does not parse
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.InvalidBody(c, err)
		return false
	}
	return true
}
