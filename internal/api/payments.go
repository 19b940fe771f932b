package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/models"
)

type PaymentRequest struct {
	StudentID uint   `json:"student_id" binding:"required"`
	Amount    int64  `json:"amount" binding:"required"`
	Period    string `json:"period" binding:"required"`
	Method    string `json:"method"`
	Status    string `json:"status"`
}

// CreatePayment godoc
// @Summary      Record a tuition payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  PaymentRequest  true  "Payment info"
// @Success      201   {object} models.Payment
// @Security     BearerAuth
// @Router       /admin/payments [post]
func CreatePayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	p := models.Payment{
		StudentID: req.StudentID,
		Amount:    req.Amount,
		Period:    req.Period,
		Method:    req.Method,
		Status:    req.Status,
	}
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	if p.Status == models.PaymentPaid {
		now := time.Now().UTC()
		p.PaidAt = &now
	}
	if err := db.CreatePayment(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListPayments godoc
// @Summary      List payments, optionally for one student
// @Tags         payments
// @Produce      json
// @Param        student_id  query  int  false  "Student ID"
// @Success      200 {array} models.Payment
// @Security     BearerAuth
// @Router       /admin/payments [get]
func ListPayments(c *gin.Context) {
	studentID, ok := queryStudentID(c)
	if !ok {
		return
	}
	payments, err := db.ListPayments(c.Request.Context(), studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// UpdatePayment godoc
// @Summary      Update a payment's status or method
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Payment ID"
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/payments/{id} [patch]
func UpdatePayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status *string `json:"status"`
		Method *string `json:"method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
		if *req.Status == models.PaymentPaid {
			updates["paid_at"] = time.Now().UTC()
		}
	}
	if req.Method != nil {
		updates["method"] = *req.Method
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := db.UpdatePayment(c.Request.Context(), id, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment updated"})
}
