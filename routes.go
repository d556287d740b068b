package main

import (
	"net/http"

	"teambuilder/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (a *App) setupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(requestIDMiddleware())

	corsCfg := cors.DefaultConfig()
	if len(a.cfg.CORSOrigins) == 1 && a.cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = a.cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID")
	r.Use(cors.New(corsCfg))

	r.Static("/public", a.cfg.UploadDir)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hii the server is running fine")
	})

	v1 := r.Group("/api/v1")
	v1.GET("/healthcheck", healthCheckHandler)

	auth := v1.Group("/auth")
	auth.POST("/register", a.registerHandler)
	auth.POST("/login", a.loginHandler)
	auth.GET("/verify-email/:verificationToken", a.verifyEmailHandler)
	auth.POST("/refresh-token", a.refreshTokenHandler)
	auth.POST("/forgot-password", a.forgotPasswordHandler)
	auth.POST("/reset-password/:resetToken", a.resetPasswordHandler)
	auth.POST("/cookie-setter", a.cookieSetterHandler)
	auth.POST("/logout", a.requireAuth(), a.logoutHandler)
	auth.POST("/change-password", a.requireAuth(), a.changePasswordHandler)
	auth.GET("/current-user", a.requireAuth(), a.currentUserHandler)
	auth.PATCH("/avatar", a.requireAuth(), a.updateAvatarHandler)

	profile := v1.Group("/profile", a.requireAuth())
	profile.POST("", a.createProfileHandler)
	profile.GET("", a.listProfilesHandler)
	profile.GET("/me/:userId", a.initialUserDataHandler)
	profile.GET("/:profileId", a.getProfileHandler)
	profile.PUT("/:profileId", a.updateProfileHandler)
	profile.DELETE("/:profileId", a.deleteProfileHandler)
	profile.POST("/:profileId/cohort", a.requireRole(models.RoleAdmin), a.addCohortToProfileHandler)

	cohort := v1.Group("/cohort", a.requireAuth(), a.requireRole(models.RoleAdmin))
	cohort.POST("", a.addCohortHandler)
	cohort.GET("", a.listCohortsHandler)
	cohort.GET("/:cohortId", a.getCohortHandler)
	cohort.PUT("/:cohortId", a.updateCohortHandler)
	cohort.DELETE("/:cohortId", a.deleteCohortHandler)

	team := v1.Group("/team", a.requireAuth())
	team.GET("", a.listTeamsHandler)
	team.POST("", a.createTeamHandler)
	team.DELETE("/:teamId", a.deleteTeamHandler)
	team.POST("/:teamId/members/:memberId", a.addTeamMemberHandler)
	team.DELETE("/:teamId/members/:memberId", a.removeTeamMemberHandler)
	team.POST("/:teamId/join", a.createJoinRequestHandler)
	team.GET("/:teamId/requests", a.listJoinRequestsHandler)
	team.PATCH("/requests/:requestId", a.decideJoinRequestHandler)

	feedback := v1.Group("/feedback", a.requireAuth())
	feedback.POST("", a.createFeedbackHandler)
	feedback.GET("", a.requireRole(models.RoleAdmin), a.listFeedbackHandler)

	return r
}
