package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/auth"
	"github.com/vrevia/vrevia-back/internal/config"
	"github.com/vrevia/vrevia-back/internal/curriculum"
	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/models"
)

// portalStudent resolves the caller's student record. It writes the error
// response itself; callers bail out when ok is false.
func portalStudent(c *gin.Context) (*models.Student, bool) {
	cu, ok := auth.Current(c)
	if !ok || cu.StudentID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No student profile"})
		return nil, false
	}
	student, err := db.GetStudent(c.Request.Context(), *cu.StudentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student"})
		return nil, false
	}
	if !student.Active {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return nil, false
	}
	return student, true
}

func requireSubscription(c *gin.Context, studentID uint) bool {
	active, err := db.HasActiveSubscription(c.Request.Context(), studentID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check subscription"})
		return false
	}
	if !active {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Active subscription required"})
		return false
	}
	return true
}

// GetProgress godoc
// @Summary      Current lesson, level and completed lessons of the caller
// @Tags         portal
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /portal/progress [get]
func GetProgress(c *gin.Context) {
	student, ok := portalStudent(c)
	if !ok {
		return
	}
	completed, err := db.GetCompletedLessons(c.Request.Context(), student.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch progress"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"current_lesson":    student.CurrentLesson,
		"current_level":     student.CurrentLevel,
		"completed_lessons": completed,
	})
}

// CheckAccess godoc
// @Summary      Check whether the caller may open a lesson or level
// @Description  A lesson is accessible up to and including the current one. A level is accessible once its first lesson is reached.
// @Tags         portal
// @Produce      json
// @Param        lesson  query  int     false  "Lesson number"
// @Param        level   query  string  false  "Level code"
// @Success      200 {object} map[string]bool
// @Security     BearerAuth
// @Router       /portal/access [get]
func CheckAccess(c *gin.Context) {
	student, ok := portalStudent(c)
	if !ok {
		return
	}

	resp := gin.H{}
	if raw := c.Query("lesson"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson"})
			return
		}
		resp["lesson_accessible"] = curriculum.CanAccessLesson(student.CurrentLesson, n)
	}
	if raw := c.Query("level"); raw != "" {
		level := curriculum.Level(raw)
		if !level.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown level"})
			return
		}
		resp["level_accessible"] = curriculum.CanAccessLevel(student.CurrentLesson, level)
	}
	if len(resp) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Specify lesson or level"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PortalListLessons godoc
// @Summary      List published lessons with the caller's access flag
// @Tags         portal
// @Produce      json
// @Success      200 {array} map[string]interface{}
// @Security     BearerAuth
// @Router       /portal/lessons [get]
func PortalListLessons(c *gin.Context) {
	student, ok := portalStudent(c)
	if !ok {
		return
	}
	lessons, err := db.ListLessons(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lessons"})
		return
	}

	out := make([]gin.H, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, gin.H{
			"number":     l.Number,
			"title":      l.Title,
			"level":      string(curriculum.LevelForLesson(l.Number)),
			"accessible": curriculum.CanAccessLesson(student.CurrentLesson, l.Number),
		})
	}
	c.JSON(http.StatusOK, out)
}

// PortalGetLesson godoc
// @Summary      Open a published lesson with its sections and exercises
// @Description  Requires an active subscription and a current lesson at or past the requested number.
// @Tags         portal
// @Produce      json
// @Param        number  path  int  true  "Lesson number"
// @Success      200 {object} models.Lesson
// @Failure      403 {object} map[string]string
// @Security     BearerAuth
// @Router       /portal/lessons/{number} [get]
func PortalGetLesson(c *gin.Context) {
	student, ok := portalStudent(c)
	if !ok {
		return
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || !curriculum.ValidLesson(number) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson number"})
		return
	}
	if !curriculum.CanAccessLesson(student.CurrentLesson, number) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Lesson not yet unlocked"})
		return
	}
	if !requireSubscription(c, student.ID) {
		return
	}

	lesson, err := db.GetLessonByNumber(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lesson"})
		return
	}
	if !lesson.Published {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	c.JSON(http.StatusOK, lesson)
}

type AttemptRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// SubmitAttempt godoc
// @Summary      Submit an exercise answer
// @Description  Answers are compared case-insensitively after trimming. Every attempt is recorded.
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        id    path  int             true  "Exercise ID"
// @Param        body  body  AttemptRequest  true  "Answer"
// @Success      201   {object} models.ExerciseAttempt
// @Failure      403   {object} map[string]string
// @Security     BearerAuth
// @Router       /portal/exercises/{id}/attempts [post]
func SubmitAttempt(c *gin.Context) {
	student, ok := portalStudent(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	exercise, err := db.GetExercise(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch exercise"})
		return
	}
	parent, err := db.GetLessonByID(c.Request.Context(), exercise.LessonID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch exercise"})
		return
	}
	if !parent.Published || !curriculum.CanAccessLesson(student.CurrentLesson, parent.Number) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Lesson not yet unlocked"})
		return
	}
	if !requireSubscription(c, student.ID) {
		return
	}

	given := strings.TrimSpace(req.Answer)
	attempt := models.ExerciseAttempt{
		StudentID:  student.ID,
		ExerciseID: exercise.ID,
		Answer:     given,
		Correct:    strings.EqualFold(given, strings.TrimSpace(exercise.Answer)),
	}
	if err := db.CreateExerciseAttempt(c.Request.Context(), &attempt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save attempt"})
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

// ListAttempts godoc
// @Summary      List the caller's exercise attempts
// @Tags         portal
// @Produce      json
// @Param        exercise_id  query  int  false  "Exercise ID"
// @Success      200 {array} models.ExerciseAttempt
// @Security     BearerAuth
// @Router       /portal/attempts [get]
func ListAttempts(c *gin.Context) {
	student, ok := portalStudent(c)
	if !ok {
		return
	}
	var exerciseID uint
	if raw := c.Query("exercise_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exercise_id"})
			return
		}
		exerciseID = uint(parsed)
	}
	attempts, err := db.ListExerciseAttempts(c.Request.Context(), student.ID, exerciseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attempts"})
		return
	}
	c.JSON(http.StatusOK, attempts)
}

// PortalListCertificates godoc
// @Summary      List the caller's certificates
// @Tags         portal
// @Produce      json
// @Success      200 {array} models.Certificate
// @Security     BearerAuth
// @Router       /portal/certificates [get]
func PortalListCertificates(c *gin.Context) {
	student, ok := portalStudent(c)
	if !ok {
		return
	}
	certs, err := db.ListCertificates(c.Request.Context(), student.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch certificates"})
		return
	}
	c.JSON(http.StatusOK, certs)
}

// PortalDownloadCertificate godoc
// @Summary      Download one of the caller's certificates as PDF
// @Tags         portal
// @Produce      application/pdf
// @Param        id  path  int  true  "Certificate ID"
// @Success      200 {file} binary
// @Security     BearerAuth
// @Router       /portal/certificates/{id}/pdf [get]
func PortalDownloadCertificate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := portalStudent(c); !ok {
			return
		}
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		writeCertificatePDF(c, cfg, id)
	}
}
