package main

import (
	"net/http"

	"teambuilder/models"

	"github.com/gin-gonic/gin"
)

func (a *App) createFeedbackHandler(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		Feedback string `json:"feedback" binding:"required"`
		Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusBadRequest, err.Error()))
		return
	}

	feedback := models.Feedback{UserID: user.ID, Feedback: req.Feedback, Rating: req.Rating}
	if err := a.db.Create(&feedback).Error; err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, "Feedback submitted successfully", feedback)
}

func (a *App) listFeedbackHandler(c *gin.Context) {
	var feedback []models.Feedback
	if err := a.db.Order("id desc").Find(&feedback).Error; err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Feedback retrieved successfully", feedback)
}
