package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/auth"
	"github.com/vrevia/vrevia-back/internal/curriculum"
	"github.com/vrevia/vrevia-back/internal/db"
)

// AdminListClassRequests godoc
// @Summary      List class requests, optionally for one student
// @Tags         class-requests
// @Produce      json
// @Param        student_id  query  int  false  "Student ID"
// @Success      200 {array} models.ClassRequest
// @Security     BearerAuth
// @Router       /admin/class-requests [get]
func AdminListClassRequests(c *gin.Context) {
	studentID, ok := queryStudentID(c)
	if !ok {
		return
	}
	reqs, err := db.ListClassRequests(c.Request.Context(), studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch class requests"})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

type ClassRequestStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed"`
}

// SetClassRequestStatus godoc
// @Summary      Confirm or complete a class request
// @Tags         class-requests
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "Request ID"
// @Param        body  body  ClassRequestStatusRequest  true  "New status"
// @Success      200   {object} models.ClassRequest
// @Failure      409   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/class-requests/{id} [patch]
func SetClassRequestStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ClassRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cr, err := db.SetClassRequestStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Class request not found"})
		case errors.Is(err, db.ErrAlreadyFinal):
			c.JSON(http.StatusConflict, gin.H{"error": "Class request is already settled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update class request"})
		}
		return
	}
	c.JSON(http.StatusOK, cr)
}

type ClassRequestRequest struct {
	LessonNumber int       `json:"lesson_number" binding:"required"`
	ScheduledAt  time.Time `json:"scheduled_at" binding:"required"`
	Note         string    `json:"note"`
}

// CreateClassRequest godoc
// @Summary      Request a supplemental class
// @Description  Requires an active subscription. Capped per (student, level); cancelled requests do not count.
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        body  body  ClassRequestRequest  true  "Request info"
// @Success      201   {object} models.ClassRequest
// @Failure      409   {object} map[string]string
// @Security     BearerAuth
// @Router       /portal/class-requests [post]
func CreateClassRequest(c *gin.Context) {
	cu, ok := auth.Current(c)
	if !ok || cu.StudentID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No student profile"})
		return
	}
	var req ClassRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !curriculum.ValidLesson(req.LessonNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lesson number out of range"})
		return
	}
	if !req.ScheduledAt.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scheduled time must be in the future"})
		return
	}

	active, err := db.HasActiveSubscription(c.Request.Context(), *cu.StudentID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check subscription"})
		return
	}
	if !active {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Active subscription required"})
		return
	}

	cr, err := db.CreateClassRequest(c.Request.Context(), *cu.StudentID, req.LessonNumber, req.ScheduledAt, req.Note)
	if err != nil {
		if errors.Is(err, db.ErrQuotaExceeded) {
			c.JSON(http.StatusConflict, gin.H{"error": "Class request limit reached for this level"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create class request"})
		return
	}
	c.JSON(http.StatusCreated, cr)
}

// ListClassRequests godoc
// @Summary      List the caller's class requests
// @Tags         portal
// @Produce      json
// @Success      200 {array} models.ClassRequest
// @Security     BearerAuth
// @Router       /portal/class-requests [get]
func ListClassRequests(c *gin.Context) {
	cu, ok := auth.Current(c)
	if !ok || cu.StudentID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No student profile"})
		return
	}
	reqs, err := db.ListClassRequests(c.Request.Context(), *cu.StudentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch class requests"})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// CancelClassRequest godoc
// @Summary      Cancel one of the caller's class requests
// @Description  Allowed up to 24 hours before the scheduled time. A cancelled request frees its quota slot.
// @Tags         portal
// @Produce      json
// @Param        id  path  int  true  "Request ID"
// @Success      200 {object} models.ClassRequest
// @Failure      409 {object} map[string]string
// @Security     BearerAuth
// @Router       /portal/class-requests/{id}/cancel [post]
func CancelClassRequest(c *gin.Context) {
	cu, ok := auth.Current(c)
	if !ok || cu.StudentID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No student profile"})
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	cr, err := db.CancelClassRequest(c.Request.Context(), *cu.StudentID, id, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Class request not found"})
		case errors.Is(err, db.ErrAlreadyFinal):
			c.JSON(http.StatusConflict, gin.H{"error": "Class request is already settled"})
		case errors.Is(err, db.ErrCancelTooLate):
			c.JSON(http.StatusConflict, gin.H{"error": "Too late to cancel this class"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel class request"})
		}
		return
	}
	c.JSON(http.StatusOK, cr)
}
