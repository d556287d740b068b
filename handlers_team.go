package main

import (
	"fmt"
	"net/http"

	"teambuilder/models"

	"github.com/gin-gonic/gin"
)

// isTeamAdmin reports whether the user manages the given team.
func (a *App) isTeamAdmin(teamID, userID uint) bool {
	var count int64
	a.db.Table("team_admins").Where("team_id = ? AND user_id = ?", teamID, userID).Count(&count)
	return count > 0
}

func (a *App) canManageTeam(user *models.User, teamID uint) bool {
	return user.Role == models.RoleAdmin || a.isTeamAdmin(teamID, user.ID)
}

func (a *App) isTeamMember(teamID, userID uint) bool {
	var count int64
	a.db.Table("team_members").Where("team_id = ? AND user_id = ?", teamID, userID).Count(&count)
	return count > 0
}

func (a *App) listTeamsHandler(c *gin.Context) {
	var teams []models.Team
	if err := a.db.Preload("Members").Preload("Admins").Preload("Leaders").Order("id desc").Find(&teams).Error; err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Teams fetched successfully", teams)
}

func (a *App) createTeamHandler(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Members     []uint `json:"members"`
		Leaders     []uint `json:"leaders"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusBadRequest, err.Error()))
		return
	}

	team := models.Team{Name: req.Name, Description: req.Description}
	if err := a.db.Create(&team).Error; err != nil {
		if isUniqueConstraintError(err) {
			respondError(c, newAPIError(http.StatusConflict, "team with this name already exists"))
			return
		}
		respondError(c, err)
		return
	}

	// Creator becomes the team admin and its first member.
	if err := a.db.Model(&team).Association("Admins").Append(user); err != nil {
		respondError(c, err)
		return
	}
	if err := a.db.Model(&team).Association("Members").Append(user); err != nil {
		respondError(c, err)
		return
	}

	if len(req.Members) > 0 {
		var members []models.User
		if err := a.db.Find(&members, req.Members).Error; err == nil && len(members) > 0 {
			if err := a.db.Model(&team).Association("Members").Append(members); err != nil {
				respondError(c, err)
				return
			}
		}
	}
	if len(req.Leaders) > 0 {
		var leaders []models.User
		if err := a.db.Find(&leaders, req.Leaders).Error; err == nil && len(leaders) > 0 {
			if err := a.db.Model(&team).Association("Leaders").Append(leaders); err != nil {
				respondError(c, err)
				return
			}
		}
	}

	respondJSON(c, http.StatusCreated, "Team created successfully", team)
}

func (a *App) addTeamMemberHandler(c *gin.Context) {
	user := currentUser(c)

	var team models.Team
	if err := a.db.First(&team, c.Param("teamId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Team not found"))
		return
	}
	if !a.canManageTeam(user, team.ID) {
		respondError(c, newAPIError(http.StatusForbidden, "You are not allowed to perform this action"))
		return
	}

	var member models.User
	if err := a.db.Omit(models.SensitiveUserColumns...).First(&member, c.Param("memberId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "User not found"))
		return
	}
	if a.isTeamMember(team.ID, member.ID) {
		respondError(c, newAPIError(http.StatusConflict, "user is already a member of this team"))
		return
	}
	if err := a.db.Model(&team).Association("Members").Append(&member); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, fmt.Sprintf("Member %d added to team %d successfully", member.ID, team.ID), gin.H{})
}

func (a *App) removeTeamMemberHandler(c *gin.Context) {
	user := currentUser(c)

	var team models.Team
	if err := a.db.First(&team, c.Param("teamId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Team not found"))
		return
	}
	if !a.canManageTeam(user, team.ID) {
		respondError(c, newAPIError(http.StatusForbidden, "You are not allowed to perform this action"))
		return
	}

	var member models.User
	if err := a.db.Omit(models.SensitiveUserColumns...).First(&member, c.Param("memberId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "User not found"))
		return
	}
	if err := a.db.Model(&team).Association("Members").Delete(&member); err != nil {
		respondError(c, err)
		return
	}
	if err := a.db.Model(&team).Association("Leaders").Delete(&member); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, fmt.Sprintf("Member %d removed from team %d successfully", member.ID, team.ID), gin.H{})
}

func (a *App) deleteTeamHandler(c *gin.Context) {
	user := currentUser(c)

	var team models.Team
	if err := a.db.First(&team, c.Param("teamId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Team not found"))
		return
	}
	if !a.canManageTeam(user, team.ID) {
		respondError(c, newAPIError(http.StatusForbidden, "You are not allowed to perform this action"))
		return
	}
	if err := a.db.Select("Members", "Admins", "Leaders").Delete(&team).Error; err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, fmt.Sprintf("Team %d deleted successfully", team.ID), gin.H{})
}

func (a *App) createJoinRequestHandler(c *gin.Context) {
	user := currentUser(c)

	var team models.Team
	if err := a.db.First(&team, c.Param("teamId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Team not found"))
		return
	}
	if a.isTeamMember(team.ID, user.ID) {
		respondError(c, newAPIError(http.StatusConflict, "you are already a member of this team"))
		return
	}
	var pending int64
	a.db.Model(&models.TeamJoinRequest{}).
		Where("team_id = ? AND user_id = ? AND status = ?", team.ID, user.ID, models.JoinRequestPending).
		Count(&pending)
	if pending > 0 {
		respondError(c, newAPIError(http.StatusConflict, "a join request for this team is already pending"))
		return
	}

	request := models.TeamJoinRequest{UserID: user.ID, TeamID: team.ID, Status: models.JoinRequestPending}
	if err := a.db.Create(&request).Error; err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, "Join request created successfully", request)
}

func (a *App) listJoinRequestsHandler(c *gin.Context) {
	user := currentUser(c)

	var team models.Team
	if err := a.db.First(&team, c.Param("teamId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Team not found"))
		return
	}
	if !a.canManageTeam(user, team.ID) {
		respondError(c, newAPIError(http.StatusForbidden, "You are not allowed to perform this action"))
		return
	}

	q := a.db.Where("team_id = ?", team.ID)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	var requests []models.TeamJoinRequest
	if err := q.Order("id desc").Find(&requests).Error; err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Join requests retrieved successfully", requests)
}

func (a *App) decideJoinRequestHandler(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		Status string `json:"status" binding:"required,oneof=ACCEPTED REJECTED"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusBadRequest, err.Error()))
		return
	}

	var request models.TeamJoinRequest
	if err := a.db.First(&request, c.Param("requestId")).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "Join request not found"))
		return
	}
	if !a.canManageTeam(user, request.TeamID) {
		respondError(c, newAPIError(http.StatusForbidden, "You are not allowed to perform this action"))
		return
	}
	if request.Status != models.JoinRequestPending {
		respondError(c, newAPIError(http.StatusConflict, "join request has already been decided"))
		return
	}

	if err := a.db.Model(&request).Update("status", req.Status).Error; err != nil {
		respondError(c, err)
		return
	}
	request.Status = req.Status

	if req.Status == models.JoinRequestAccepted {
		var team models.Team
		if err := a.db.First(&team, request.TeamID).Error; err != nil {
			respondError(c, err)
			return
		}
		var member models.User
		if err := a.db.Omit(models.SensitiveUserColumns...).First(&member, request.UserID).Error; err != nil {
			respondError(c, err)
			return
		}
		if !a.isTeamMember(team.ID, member.ID) {
			if err := a.db.Model(&team).Association("Members").Append(&member); err != nil {
				respondError(c, err)
				return
			}
		}
	}

	respondJSON(c, http.StatusOK, "Join request updated successfully", request)
}
