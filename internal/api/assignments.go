package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/auth"
	"github.com/vrevia/vrevia-back/internal/curriculum"
	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/models"
)

type AssignmentRequest struct {
	GroupID      uint      `json:"group_id" binding:"required"`
	LessonNumber int       `json:"lesson_number" binding:"required"`
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description"`
	DueAt        time.Time `json:"due_at" binding:"required"`
}

// CreateAssignment godoc
// @Summary      Create a homework assignment for a group
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        body  body  AssignmentRequest  true  "Assignment info"
// @Success      201   {object} models.Assignment
// @Security     BearerAuth
// @Router       /admin/assignments [post]
func CreateAssignment(c *gin.Context) {
	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !curriculum.ValidLesson(req.LessonNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lesson number out of range"})
		return
	}
	if _, err := db.GetGroup(c.Request.Context(), req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}

	a := models.Assignment{
		GroupID:      req.GroupID,
		LessonNumber: req.LessonNumber,
		Title:        req.Title,
		Description:  req.Description,
		DueAt:        req.DueAt,
	}
	if err := db.CreateAssignment(c.Request.Context(), &a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment"})
		return
	}
	c.JSON(http.StatusCreated, a)
}

// ListAssignments godoc
// @Summary      List assignments, optionally for one group
// @Tags         assignments
// @Produce      json
// @Param        group_id  query  int  false  "Group ID"
// @Success      200 {array} models.Assignment
// @Security     BearerAuth
// @Router       /admin/assignments [get]
func ListAssignments(c *gin.Context) {
	var groupID uint
	if raw := c.Query("group_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group_id"})
			return
		}
		groupID = uint(parsed)
	}
	assignments, err := db.ListAssignments(c.Request.Context(), groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// GetAssignment godoc
// @Summary      Get an assignment with its submissions
// @Tags         assignments
// @Produce      json
// @Param        id  path  int  true  "Assignment ID"
// @Success      200 {object} models.Assignment
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/assignments/{id} [get]
func GetAssignment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	a, err := db.GetAssignment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignment"})
		return
	}
	c.JSON(http.StatusOK, a)
}

type GradeSubmissionRequest struct {
	Score int `json:"score" binding:"min=0,max=100"`
}

// GradeSubmission godoc
// @Summary      Score a homework submission
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "Submission ID"
// @Param        body  body  GradeSubmissionRequest  true  "Score"
// @Success      200   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/submissions/{id}/grade [post]
func GradeSubmission(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req GradeSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cu, _ := auth.Current(c)
	if err := db.GradeSubmission(c.Request.Context(), id, req.Score, cu.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grade submission"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Submission graded"})
}

type SubmissionRequest struct {
	Body       string `json:"body" binding:"required"`
	MaterialID *uint  `json:"material_id"`
}

// SubmitAssignment godoc
// @Summary      Hand in homework for an assignment
// @Description  One submission per (assignment, student).
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "Assignment ID"
// @Param        body  body  SubmissionRequest  true  "Submission"
// @Success      201   {object} models.Submission
// @Failure      409   {object} map[string]string
// @Security     BearerAuth
// @Router       /portal/assignments/{id}/submissions [post]
func SubmitAssignment(c *gin.Context) {
	cu, ok := auth.Current(c)
	if !ok || cu.StudentID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No student profile"})
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if _, err := db.GetAssignment(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignment"})
		return
	}

	s := models.Submission{
		AssignmentID: id,
		StudentID:    *cu.StudentID,
		Body:         req.Body,
		MaterialID:   req.MaterialID,
	}
	if err := db.CreateSubmission(c.Request.Context(), &s); err != nil {
		if errors.Is(err, db.ErrDuplicateRecord) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already submitted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save submission"})
		return
	}
	c.JSON(http.StatusCreated, s)
}
