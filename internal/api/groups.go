package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/models"
)

type GroupRequest struct {
	Name     string `json:"name" binding:"required"`
	Teacher  string `json:"teacher"`
	Schedule string `json:"schedule"`
}

// CreateGroup godoc
// @Summary      Create a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        body  body  GroupRequest  true  "Group info"
// @Success      201   {object} models.Group
// @Security     BearerAuth
// @Router       /admin/groups [post]
func CreateGroup(c *gin.Context) {
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	g := models.Group{Name: req.Name, Teacher: req.Teacher, Schedule: req.Schedule}
	if err := db.CreateGroup(c.Request.Context(), &g); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Group name already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}
	c.JSON(http.StatusCreated, g)
}

// ListGroups godoc
// @Summary      List groups
// @Tags         groups
// @Produce      json
// @Success      200 {array} models.Group
// @Security     BearerAuth
// @Router       /admin/groups [get]
func ListGroups(c *gin.Context) {
	groups, err := db.ListGroups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}
	c.JSON(http.StatusOK, groups)
}

// GetGroup godoc
// @Summary      Get a group with its students
// @Tags         groups
// @Produce      json
// @Param        id  path  int  true  "Group ID"
// @Success      200 {object} models.Group
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/groups/{id} [get]
func GetGroup(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	g, err := db.GetGroup(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	c.JSON(http.StatusOK, g)
}

// UpdateGroup godoc
// @Summary      Update a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        id    path  int           true  "Group ID"
// @Param        body  body  GroupRequest  true  "Group info"
// @Success      200   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/groups/{id} [patch]
func UpdateGroup(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	updates := map[string]interface{}{
		"name": req.Name, "teacher": req.Teacher, "schedule": req.Schedule,
	}
	if err := db.UpdateGroup(c.Request.Context(), id, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group updated"})
}

// DeleteGroup godoc
// @Summary      Delete a group, detaching its students
// @Tags         groups
// @Produce      json
// @Param        id  path  int  true  "Group ID"
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/groups/{id} [delete]
func DeleteGroup(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := db.DeleteGroup(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
}

// AdvanceGroup godoc
// @Summary      Advance every active student of a group by one lesson
// @Tags         groups
// @Produce      json
// @Param        id  path  int  true  "Group ID"
// @Success      200 {object} map[string]int
// @Security     BearerAuth
// @Router       /admin/groups/{id}/advance [post]
func AdvanceGroup(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	advanced, err := db.AdvanceGroup(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"advanced": advanced})
}

// AssignStudentToGroup godoc
// @Summary      Put a student into a group
// @Tags         groups
// @Produce      json
// @Param        id         path  int  true  "Group ID"
// @Param        studentId  path  int  true  "Student ID"
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/groups/{id}/students/{studentId} [post]
func AssignStudentToGroup(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	studentID, ok := paramID(c, "studentId")
	if !ok {
		return
	}
	if err := db.AssignStudentToGroup(c.Request.Context(), studentID, &groupID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign student"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student assigned"})
}
