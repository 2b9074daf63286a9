package handlers

import (
	"net/http"

	"github.com/farellandr/secretsanta/internal/exchange"
	"github.com/farellandr/secretsanta/internal/helpers"
	"github.com/farellandr/secretsanta/internal/middleware"
	"github.com/gin-gonic/gin"
)

// UpdateParticipantRequest is a partial update; omitted fields are kept and an
// empty contact removes the address.
type UpdateParticipantRequest struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
}

func AddParticipant(c *gin.Context) {
	eventID, ok := helpers.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeInvalidRequest, "Invalid input. Please check your fields.")
		return
	}

	participant, err := middleware.GetService(c).AddParticipant(c.Request.Context(), eventID, exchange.ParticipantInput{
		Name:    req.Name,
		Contact: req.Contact,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Participant added successfully.",
		"participant": participant,
	})
}

func UpdateParticipant(c *gin.Context) {
	eventID, ok := helpers.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	participantID, ok := helpers.ParseUUIDParam(c, "participantId")
	if !ok {
		return
	}

	var req UpdateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeInvalidRequest, "Invalid input. Please check your fields.")
		return
	}
	if req.Name == nil && req.Contact == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeInvalidRequest, "Nothing to update.")
		return
	}

	participant, err := middleware.GetService(c).UpdateParticipant(c.Request.Context(), eventID, participantID, exchange.UpdateParticipantInput{
		Name:    req.Name,
		Contact: req.Contact,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Participant updated successfully.",
		"participant": participant,
	})
}

func RemoveParticipant(c *gin.Context) {
	eventID, ok := helpers.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	participantID, ok := helpers.ParseUUIDParam(c, "participantId")
	if !ok {
		return
	}

	if err := middleware.GetService(c).RemoveParticipant(c.Request.Context(), eventID, participantID); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Participant removed successfully."})
}

func RegenerateCode(c *gin.Context) {
	eventID, ok := helpers.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	participantID, ok := helpers.ParseUUIDParam(c, "participantId")
	if !ok {
		return
	}

	participant, err := middleware.GetService(c).RegenerateCode(c.Request.Context(), eventID, participantID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Access code regenerated successfully.",
		"participant": participant,
	})
}
