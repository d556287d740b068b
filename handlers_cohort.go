package main

import (
	"net/http"
	"time"

	"teambuilder/models"

	"github.com/gin-gonic/gin"
)

type cohortPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndDate     string `json:"endDate" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	IsActive    *bool  `json:"isActive"`
	Members     []uint `json:"members"`
}

func (p *cohortPayload) apply(cohort *models.Cohort) {
	cohort.Name = p.Name
	cohort.Description = p.Description
	if p.StartDate != "" {
		if t, err := time.Parse(time.RFC3339, p.StartDate); err == nil {
			cohort.StartDate = &t
		}
	}
	if p.EndDate != "" {
		if t, err := time.Parse(time.RFC3339, p.EndDate); err == nil {
			cohort.EndDate = &t
		}
	}
	if p.IsActive != nil {
		cohort.IsActive = *p.IsActive
	}
}

func (a *App) addCohortHandler(c *gin.Context) {
	var req cohortPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusBadRequest, err.Error()))
		return
	}

	cohort := models.Cohort{IsActive: true}
	req.apply(&cohort)
	if err := a.db.Create(&cohort).Error; err != nil {
		if isUniqueConstraintError(err) {
			respondError(c, newAPIError(http.StatusConflict, "cohort with this name already exists"))
			return
		}
		respondError(c, err)
		return
	}
	if len(req.Members) > 0 {
		if err := a.replaceCohortMembers(&cohort, req.Members); err != nil {
			respondError(c, err)
			return
		}
	}
	respondJSON(c, http.StatusCreated, "Cohort added successfully", cohort)
}

func (a *App) updateCohortHandler(c *gin.Context) {
	var cohort models.Cohort
	if err := a.db.First(&cohort, c.Param("cohortId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Cohort not found"))
		return
	}

	var req cohortPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusBadRequest, err.Error()))
		return
	}
	req.apply(&cohort)
	if err := a.db.Save(&cohort).Error; err != nil {
		if isUniqueConstraintError(err) {
			respondError(c, newAPIError(http.StatusConflict, "cohort with this name already exists"))
			return
		}
		respondError(c, err)
		return
	}
	if req.Members != nil {
		if err := a.replaceCohortMembers(&cohort, req.Members); err != nil {
			respondError(c, err)
			return
		}
	}
	respondJSON(c, http.StatusOK, "Cohort updated successfully", cohort)
}

func (a *App) deleteCohortHandler(c *gin.Context) {
	var cohort models.Cohort
	if err := a.db.First(&cohort, c.Param("cohortId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Cohort not found"))
		return
	}
	if err := a.db.Select("Members").Delete(&cohort).Error; err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Cohort deleted successfully", cohort)
}

func (a *App) getCohortHandler(c *gin.Context) {
	var cohort models.Cohort
	if err := a.db.Preload("Members").First(&cohort, c.Param("cohortId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Cohort not found"))
		return
	}
	respondJSON(c, http.StatusOK, "Cohort retrieved successfully", cohort)
}

func (a *App) listCohortsHandler(c *gin.Context) {
	var cohorts []models.Cohort
	if err := a.db.Order("id desc").Find(&cohorts).Error; err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Cohorts retrieved successfully", cohorts)
}

func (a *App) replaceCohortMembers(cohort *models.Cohort, memberIDs []uint) error {
	var users []models.User
	if err := a.db.Omit(models.SensitiveUserColumns...).Find(&users, memberIDs).Error; err != nil {
		return err
	}
	return a.db.Model(cohort).Association("Members").Replace(users)
}
