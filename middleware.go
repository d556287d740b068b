package main

import (
	"net/http"
	"strings"

	"teambuilder/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxUserKey = "currentUser"

// requestIDMiddleware tags every request with an id for log correlation.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// requireAuth extracts the access token from the accessToken cookie or the
// Authorization header, verifies it and loads the user (without sensitive
// columns) into the request context.
func (a *App) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("accessToken")
		if token == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if token == "" {
			respondError(c, newAPIError(http.StatusUnauthorized, "Unauthorized request"))
			c.Abort()
			return
		}
		claims, err := a.verifyAccessToken(token)
		if err != nil {
			respondError(c, newAPIError(http.StatusUnauthorized, err.Error()))
			c.Abort()
			return
		}
		var user models.User
		if err := a.db.Omit(models.SensitiveUserColumns...).First(&user, claims.UserID).Error; err != nil {
			respondError(c, newAPIError(http.StatusUnauthorized, "Invalid access token"))
			c.Abort()
			return
		}
		c.Set(ctxUserKey, &user)
		c.Next()
	}
}

// requireRole gates a route on an allow-list of roles. Must run after
// requireAuth. A known user with the wrong role gets 403, not 401.
func (a *App) requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			respondError(c, newAPIError(http.StatusUnauthorized, "Unauthorized request"))
			c.Abort()
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		respondError(c, newAPIError(http.StatusForbidden, "You are not allowed to perform this action"))
		c.Abort()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
