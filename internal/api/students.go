package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/curriculum"
	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/models"
)

// CreateStudentRequest is the admin request body for enrolling a student.
type CreateStudentRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Phone         string `json:"phone"`
	CurrentLesson int    `json:"current_lesson"`
	Modules       string `json:"modules"`
}

// CreateStudent godoc
// @Summary      Enroll a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        body  body  CreateStudentRequest  true  "Student info"
// @Success      201   {object} models.Student
// @Failure      400   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/students [post]
func CreateStudent(c *gin.Context) {
	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.CurrentLesson != 0 && !curriculum.ValidLesson(req.CurrentLesson) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lesson number out of range"})
		return
	}

	s := models.Student{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		CurrentLesson: req.CurrentLesson,
		Active:        true,
		Modules:       req.Modules,
	}
	if s.Modules == "" {
		s.Modules = models.ModuleSchool
	}
	if err := db.CreateStudent(c.Request.Context(), &s); err != nil {
		if errors.Is(err, db.ErrLessonOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lesson number out of range"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create student"})
		return
	}

	c.JSON(http.StatusCreated, s)
}

// ListStudents godoc
// @Summary      List students
// @Tags         students
// @Produce      json
// @Success      200 {array} models.Student
// @Security     BearerAuth
// @Router       /admin/students [get]
func ListStudents(c *gin.Context) {
	students, err := db.ListStudents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}
	c.JSON(http.StatusOK, students)
}

// GetStudent godoc
// @Summary      Get a student
// @Tags         students
// @Produce      json
// @Param        id  path  int  true  "Student ID"
// @Success      200 {object} models.Student
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/students/{id} [get]
func GetStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	s, err := db.GetStudent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// UpdateStudentRequest carries the editable profile fields.
type UpdateStudentRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Modules   *string `json:"modules"`
}

// UpdateStudent godoc
// @Summary      Update a student's profile
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "Student ID"
// @Param        body  body  UpdateStudentRequest  true  "Fields to change"
// @Success      200   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/students/{id} [patch]
func UpdateStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Modules != nil {
		updates["modules"] = *req.Modules
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := db.UpdateStudent(c.Request.Context(), id, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student updated"})
}

// SetStudentActive godoc
// @Summary      Activate or deactivate a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Student ID"
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/students/{id}/active [patch]
func SetStudentActive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := db.SetStudentActive(c.Request.Context(), id, *req.Active); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student updated"})
}

// AdvanceStudent godoc
// @Summary      Advance a student by one lesson
// @Description  Moves current lesson forward, keeping the level in step. No-op at lesson 150.
// @Tags         students
// @Produce      json
// @Param        id  path  int  true  "Student ID"
// @Success      200 {object} models.Student
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/students/{id}/advance [post]
func AdvanceStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	s, err := db.AdvanceStudent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance student"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// GetStudentCompletions godoc
// @Summary      List a student's completed lesson numbers
// @Tags         students
// @Produce      json
// @Param        id  path  int  true  "Student ID"
// @Success      200 {array} int
// @Security     BearerAuth
// @Router       /admin/students/{id}/completions [get]
func GetStudentCompletions(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	completed, err := db.GetCompletedLessons(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch completions"})
		return
	}
	c.JSON(http.StatusOK, completed)
}
