// Package response centralizes the wire format: bare JSON payloads on
// success, {"error": "..."} on failure.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/osuda/pkg/logger"
)

// OK writes the payload as-is with 200.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Message answers 200 with {"message": msg}.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Created answers 200 with the new id, matching the journal wire contract
// (the original API never used 201).
func Created(c *gin.Context, id int64, msg string) {
	c.JSON(http.StatusOK, gin.H{"id": id, "message": msg})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

// InternalError logs the cause and answers a generic 500; internals never
// reach the client.
func InternalError(c *gin.Context, err error) {
	logger.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
