package main

import (
	"net/http"

	"teambuilder/models"

	"github.com/gin-gonic/gin"
)

type profilePayload struct {
	FullName          string           `json:"fullName" binding:"required"`
	DisplayName       string           `json:"displayName"`
	Pronouns          string           `json:"pronouns"`
	Title             string           `json:"title"`
	Bio               string           `json:"bio"`
	Skills            []string         `json:"skills"`
	Roles             []string         `json:"roles"`
	ExperienceYears   int              `json:"experienceYears" binding:"omitempty,min=0"`
	ExperienceSummary string           `json:"experienceSummary"`
	Projects          []models.Project `json:"projects"`
	GithubURL         string           `json:"githubUrl" binding:"omitempty,url"`
	LinkedinURL       string           `json:"linkedinUrl" binding:"omitempty,url"`
	WebsiteURL        string           `json:"websiteUrl" binding:"omitempty,url"`
	TwitterURL        string           `json:"twitterUrl" binding:"omitempty,url"`
	PreferredRoles    []string         `json:"preferredRoles"`
	PreferredTeamSize int              `json:"preferredTeamSize" binding:"omitempty,min=1"`
	WillingToLead     bool             `json:"willingToLead"`
	Availability      string           `json:"availability" binding:"omitempty,oneof=AVAILABLE BUSY MAYBE"`
	AvatarURL         string           `json:"avatarUrl" binding:"omitempty,url"`
	CohortID          *uint            `json:"cohortId"`
}

func (p *profilePayload) apply(profile *models.Profile) {
	profile.FullName = p.FullName
	profile.DisplayName = p.DisplayName
	profile.Pronouns = p.Pronouns
	profile.Title = p.Title
	profile.Bio = p.Bio
	profile.Skills = p.Skills
	profile.Roles = p.Roles
	profile.ExperienceYears = p.ExperienceYears
	profile.ExperienceSummary = p.ExperienceSummary
	profile.Projects = p.Projects
	profile.GithubURL = p.GithubURL
	profile.LinkedinURL = p.LinkedinURL
	profile.WebsiteURL = p.WebsiteURL
	profile.TwitterURL = p.TwitterURL
	profile.PreferredRoles = p.PreferredRoles
	profile.PreferredTeamSize = p.PreferredTeamSize
	profile.WillingToLead = p.WillingToLead
	if p.Availability != "" {
		profile.Availability = p.Availability
	}
	if p.AvatarURL != "" {
		profile.AvatarURL = p.AvatarURL
	}
}

func (a *App) createProfileHandler(c *gin.Context) {
	user := currentUser(c)

	var req profilePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusBadRequest, err.Error()))
		return
	}

	var existing models.Profile
	if err := a.db.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		respondError(c, newAPIError(http.StatusConflict, "profile already exists for this user"))
		return
	}

	profile := models.Profile{UserID: user.ID, Availability: models.AvailabilityAvailable}
	req.apply(&profile)
	if err := a.db.Create(&profile).Error; err != nil {
		respondError(c, err)
		return
	}

	if req.CohortID != nil {
		var cohort models.Cohort
		if err := a.db.First(&cohort, *req.CohortID).Error; err == nil {
			if err := a.db.Model(&profile).Association("Cohorts").Append(&cohort); err != nil {
				respondError(c, err)
				return
			}
		}
	}

	// Link the profile back onto the user record.
	if err := a.db.Model(&models.User{}).Where("id = ?", user.ID).Update("profile_id", profile.ID).Error; err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, "Profile added successfully", profile)
}

func (a *App) listProfilesHandler(c *gin.Context) {
	var profiles []models.Profile
	if err := a.db.Preload("Cohorts").Order("id desc").Find(&profiles).Error; err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Profiles retrieved successfully", profiles)
}

func (a *App) getProfileHandler(c *gin.Context) {
	var profile models.Profile
	if err := a.db.Preload("Cohorts").First(&profile, c.Param("profileId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Profile not found"))
		return
	}
	respondJSON(c, http.StatusOK, "Profile retrieved successfully", profile)
}

func (a *App) updateProfileHandler(c *gin.Context) {
	var profile models.Profile
	if err := a.db.First(&profile, c.Param("profileId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Profile not found"))
		return
	}

	var req profilePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusBadRequest, err.Error()))
		return
	}
	req.apply(&profile)
	if err := a.db.Save(&profile).Error; err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Profile updated successfully", profile)
}

func (a *App) deleteProfileHandler(c *gin.Context) {
	var profile models.Profile
	if err := a.db.First(&profile, c.Param("profileId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Profile not found"))
		return
	}
	if err := a.db.Delete(&profile).Error; err != nil {
		respondError(c, err)
		return
	}
	// Drop the back-reference so the user can create a fresh profile.
	if err := a.db.Model(&models.User{}).Where("profile_id = ?", profile.ID).Update("profile_id", nil).Error; err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Profile deleted successfully", nil)
}

func (a *App) addCohortToProfileHandler(c *gin.Context) {
	var req struct {
		CohortID uint `json:"cohortId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusBadRequest, err.Error()))
		return
	}

	var profile models.Profile
	if err := a.db.First(&profile, c.Param("profileId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Profile not found"))
		return
	}
	var cohort models.Cohort
	if err := a.db.First(&cohort, req.CohortID).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Cohort not found"))
		return
	}
	if err := a.db.Model(&profile).Association("Cohorts").Append(&cohort); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Cohort added to profile successfully", profile)
}

// initialUserDataHandler returns the user plus profile (with cohorts) in
// one round trip for app bootstrap.
func (a *App) initialUserDataHandler(c *gin.Context) {
	var user models.User
	if err := a.db.Omit(models.SensitiveUserColumns...).First(&user, c.Param("userId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "User not found"))
		return
	}
	var profile *models.Profile
	if user.ProfileID != nil {
		var p models.Profile
		if err := a.db.Preload("Cohorts").First(&p, *user.ProfileID).Error; err == nil {
			profile = &p
		}
	}
	respondJSON(c, http.StatusOK, "Initial user data fetched successfully", gin.H{
		"user":    user,
		"profile": profile,
	})
}
