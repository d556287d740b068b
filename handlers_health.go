package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func healthCheckHandler(c *gin.Context) {
	respondJSON(c, http.StatusOK, "Server is running fine", gin.H{})
}
