package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// apiError carries an HTTP status and one or more user-facing messages.
// Handlers build these and hand them to respondError, which keeps the
// response envelope uniform across the API.
type apiError struct {
	Status   int
	Messages []string
}

func (e *apiError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func newAPIError(status int, messages ...string) *apiError {
	return &apiError{Status: status, Messages: messages}
}

func respondError(c *gin.Context, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		c.JSON(ae.Status, gin.H{"success": false, "errors": ae.Messages})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "errors": []string{"internal server error"}})
}

func respondJSON(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "UNIQUE constraint") || strings.Contains(s, "already exists")
}
