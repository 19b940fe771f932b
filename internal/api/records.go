package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/auth"
	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/models"
)

type AttendanceRequest struct {
	StudentID    uint   `json:"student_id" binding:"required"`
	LessonNumber int    `json:"lesson_number" binding:"required"`
	Kind         string `json:"kind"`
	Status       string `json:"status" binding:"required,oneof=present absent late excused"`
}

// CreateAttendance godoc
// @Summary      Mark attendance
// @Description  One record per (student, lesson, kind); duplicates are rejected.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        body  body  AttendanceRequest  true  "Attendance info"
// @Success      201   {object} models.Attendance
// @Failure      409   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/attendance [post]
func CreateAttendance(c *gin.Context) {
	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cu, _ := auth.Current(c)
	a := models.Attendance{
		StudentID:    req.StudentID,
		LessonNumber: req.LessonNumber,
		Kind:         req.Kind,
		Status:       req.Status,
		Date:         time.Now().UTC(),
		MarkedBy:     cu.Email,
	}
	if a.Kind == "" {
		a.Kind = "class"
	}
	if err := db.CreateAttendance(c.Request.Context(), &a); err != nil {
		if errors.Is(err, db.ErrDuplicateRecord) {
			c.JSON(http.StatusConflict, gin.H{"error": "Attendance already recorded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attendance"})
		return
	}
	c.JSON(http.StatusCreated, a)
}

// ListAttendance godoc
// @Summary      List attendance, optionally for one student
// @Tags         records
// @Produce      json
// @Param        student_id  query  int  false  "Student ID"
// @Success      200 {array} models.Attendance
// @Security     BearerAuth
// @Router       /admin/attendance [get]
func ListAttendance(c *gin.Context) {
	studentID, ok := queryStudentID(c)
	if !ok {
		return
	}
	records, err := db.ListAttendance(c.Request.Context(), studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}
	c.JSON(http.StatusOK, records)
}

type GradeRequest struct {
	StudentID    uint   `json:"student_id" binding:"required"`
	LessonNumber int    `json:"lesson_number" binding:"required"`
	Kind         string `json:"kind" binding:"required"`
	Score        int    `json:"score" binding:"min=0,max=100"`
	Comment      string `json:"comment"`
}

// CreateGrade godoc
// @Summary      Record a grade
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        body  body  GradeRequest  true  "Grade info"
// @Success      201   {object} models.Grade
// @Failure      409   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/grades [post]
func CreateGrade(c *gin.Context) {
	var req GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	g := models.Grade{
		StudentID:    req.StudentID,
		LessonNumber: req.LessonNumber,
		Kind:         req.Kind,
		Score:        req.Score,
		Comment:      req.Comment,
	}
	if err := db.CreateGrade(c.Request.Context(), &g); err != nil {
		if errors.Is(err, db.ErrDuplicateRecord) {
			c.JSON(http.StatusConflict, gin.H{"error": "Grade already recorded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record grade"})
		return
	}
	c.JSON(http.StatusCreated, g)
}

// ListGrades godoc
// @Summary      List grades, optionally for one student
// @Tags         records
// @Produce      json
// @Param        student_id  query  int  false  "Student ID"
// @Success      200 {array} models.Grade
// @Security     BearerAuth
// @Router       /admin/grades [get]
func ListGrades(c *gin.Context) {
	studentID, ok := queryStudentID(c)
	if !ok {
		return
	}
	grades, err := db.ListGrades(c.Request.Context(), studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch grades"})
		return
	}
	c.JSON(http.StatusOK, grades)
}

type OverrideGradeRequest struct {
	Score  int    `json:"score" binding:"min=0,max=100"`
	Reason string `json:"reason" binding:"required"`
}

// OverrideGrade godoc
// @Summary      Apply an extraordinary grade override
// @Description  The prior score is appended to the revision history before the grade is rewritten.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "Grade ID"
// @Param        body  body  OverrideGradeRequest  true  "Override info"
// @Success      200   {object} models.Grade
// @Failure      404   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/grades/{id}/override [post]
func OverrideGrade(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req OverrideGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cu, _ := auth.Current(c)
	g, err := db.OverrideGrade(c.Request.Context(), id, req.Score, req.Reason, cu.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Grade not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to override grade"})
		return
	}
	c.JSON(http.StatusOK, g)
}

// ListGradeRevisions godoc
// @Summary      List the override history of a grade
// @Tags         records
// @Produce      json
// @Param        id  path  int  true  "Grade ID"
// @Success      200 {array} models.GradeRevision
// @Security     BearerAuth
// @Router       /admin/grades/{id}/revisions [get]
func ListGradeRevisions(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	revs, err := db.ListGradeRevisions(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch revisions"})
		return
	}
	c.JSON(http.StatusOK, revs)
}
