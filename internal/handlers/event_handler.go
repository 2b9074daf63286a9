package handlers

import (
	"net/http"

	"github.com/farellandr/secretsanta/internal/exchange"
	"github.com/farellandr/secretsanta/internal/helpers"
	"github.com/farellandr/secretsanta/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ParticipantRequest struct {
	Name    string  `json:"name" binding:"max=200"`
	Contact *string `json:"contact" binding:"omitempty,max=320"`
}

type CreateEventRequest struct {
	Name         string               `json:"name"`
	Participants []ParticipantRequest `json:"participants" binding:"max=100,dive"`
}

func (r CreateEventRequest) input() exchange.CreateEventInput {
	in := exchange.CreateEventInput{
		Name:         r.Name,
		Participants: make([]exchange.ParticipantInput, 0, len(r.Participants)),
	}
	for _, p := range r.Participants {
		in.Participants = append(in.Participants, exchange.ParticipantInput{
			Name:    p.Name,
			Contact: p.Contact,
		})
	}
	return in
}

func CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeInvalidRequest, "Invalid input. Please check your fields.")
		return
	}

	event, err := middleware.GetService(c).CreateEvent(c.Request.Context(), req.input())
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully.",
		"event":   event,
	})
}

func ListEvents(c *gin.Context) {
	events, err := middleware.GetService(c).ListEvents(c.Request.Context())
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func GetEvent(c *gin.Context) {
	eventID, ok := helpers.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	event, err := middleware.GetService(c).GetEvent(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

func DeleteEvent(c *gin.Context) {
	eventID, ok := helpers.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	event, err := middleware.GetService(c).DeleteEvent(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully.",
		"event":   event,
	})
}

func CompleteEvent(c *gin.Context) {
	eventID, ok := helpers.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := middleware.GetService(c).Complete(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Event completed successfully.",
		"event":         result.Event,
		"notifications": result.Notifications,
	})
}

func RegenerateCodes(c *gin.Context) {
	eventID, ok := helpers.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	participants, err := middleware.GetService(c).RegenerateAllCodes(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Access codes regenerated successfully.",
		"participants": participants,
	})
}

func NotifyEvent(c *gin.Context) {
	eventID, ok := helpers.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := middleware.GetService(c).SendNotifications(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Notifications processed.",
		"notifications": result,
	})
}
