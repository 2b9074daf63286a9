package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseUUIDParam reads a path parameter as a UUID. On failure it writes a 400
// response and returns false.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid "+name+".")
		return uuid.Nil, false
	}
	return id, true
}
