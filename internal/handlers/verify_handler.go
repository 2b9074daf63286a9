package handlers

import (
	"net/http"

	"github.com/farellandr/secretsanta/internal/helpers"
	"github.com/farellandr/secretsanta/internal/middleware"
	"github.com/gin-gonic/gin"
)

type VerifyCodeRequest struct {
	Code string `json:"code" binding:"max=128"`
}

func VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeInvalidRequest, "Invalid input. Please check your fields.")
		return
	}

	result, err := middleware.GetService(c).Verify(c.Request.Context(), req.Code)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
