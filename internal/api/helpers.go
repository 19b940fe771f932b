package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// paramID parses a numeric path parameter; a bad value aborts the request.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// queryStudentID parses the optional student_id filter; zero means all.
func queryStudentID(c *gin.Context) (uint, bool) {
	raw := c.Query("student_id")
	if raw == "" {
		return 0, true
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student_id"})
		return 0, false
	}
	return uint(parsed), true
}
