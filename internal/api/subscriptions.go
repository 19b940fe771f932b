package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vrevia/vrevia-back/internal/auth"
	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/models"
)

type SubscriptionRequest struct {
	StudentID uint      `json:"student_id" binding:"required"`
	Type      string    `json:"type" binding:"required,oneof=monthly quarterly yearly"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// CreateSubscription godoc
// @Summary      Create a subscription
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        body  body  SubscriptionRequest  true  "Subscription info"
// @Success      201   {object} models.Subscription
// @Security     BearerAuth
// @Router       /admin/subscriptions [post]
func CreateSubscription(c *gin.Context) {
	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !req.EndDate.After(req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
		return
	}

	s := models.Subscription{
		StudentID: req.StudentID,
		Type:      req.Type,
		Status:    models.SubscriptionActive,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := db.CreateSubscription(c.Request.Context(), &s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}
	c.JSON(http.StatusCreated, s)
}

// ListSubscriptions godoc
// @Summary      List subscriptions, optionally for one student
// @Tags         subscriptions
// @Produce      json
// @Param        student_id  query  int  false  "Student ID"
// @Success      200 {array} models.Subscription
// @Security     BearerAuth
// @Router       /admin/subscriptions [get]
func ListSubscriptions(c *gin.Context) {
	studentID, ok := queryStudentID(c)
	if !ok {
		return
	}
	subs, err := db.ListSubscriptions(c.Request.Context(), studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}
	c.JSON(http.StatusOK, subs)
}

type SubscriptionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active cancelled expired"`
}

// UpdateSubscriptionStatus godoc
// @Summary      Set the stored subscription status
// @Description  The status label is advisory; paid access is always re-derived from the end date.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "Subscription ID"
// @Param        body  body  SubscriptionStatusRequest  true  "New status"
// @Success      200   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/subscriptions/{id} [patch]
func UpdateSubscriptionStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req SubscriptionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := db.UpdateSubscriptionStatus(c.Request.Context(), id, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription updated"})
}

// ValidateSubscription godoc
// @Summary      Check the caller's paid access
// @Tags         portal
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /portal/subscription [get]
func ValidateSubscription(c *gin.Context) {
	cu, ok := auth.Current(c)
	if !ok || cu.StudentID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No student profile"})
		return
	}

	sub, err := db.LatestSubscription(c.Request.Context(), *cu.StudentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
		return
	}
	if sub == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"active":   sub.IsActive(time.Now()),
		"type":     sub.Type,
		"end_date": sub.EndDate,
	})
}
