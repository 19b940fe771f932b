package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/auth"
	"github.com/vrevia/vrevia-back/internal/config"
	"github.com/vrevia/vrevia-back/internal/curriculum"
	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/models"
	"github.com/vrevia/vrevia-back/internal/pdf"
)

type IssueCertificateRequest struct {
	StudentID uint   `json:"student_id" binding:"required"`
	Level     string `json:"level" binding:"required"`
}

// IssueCertificate godoc
// @Summary      Issue a level certificate
// @Description  At most one certificate per (student, level). The serial number is generated server-side.
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Param        body  body  IssueCertificateRequest  true  "Certificate info"
// @Success      201   {object} models.Certificate
// @Failure      409   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/certificates [post]
func IssueCertificate(c *gin.Context) {
	var req IssueCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !curriculum.Level(req.Level).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown level"})
		return
	}
	if _, err := db.GetStudent(c.Request.Context(), req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student"})
		return
	}

	cu, _ := auth.Current(c)
	cert, err := db.IssueCertificate(c.Request.Context(), req.StudentID, req.Level, cu.Email)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateRecord) {
			c.JSON(http.StatusConflict, gin.H{"error": "Certificate already issued for this level"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue certificate"})
		return
	}
	c.JSON(http.StatusCreated, cert)
}

// ListCertificates godoc
// @Summary      List certificates, optionally for one student
// @Tags         certificates
// @Produce      json
// @Param        student_id  query  int  false  "Student ID"
// @Success      200 {array} models.Certificate
// @Security     BearerAuth
// @Router       /admin/certificates [get]
func ListCertificates(c *gin.Context) {
	studentID, ok := queryStudentID(c)
	if !ok {
		return
	}
	certs, err := db.ListCertificates(c.Request.Context(), studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch certificates"})
		return
	}
	c.JSON(http.StatusOK, certs)
}

// DeleteCertificate godoc
// @Summary      Revoke a certificate
// @Description  Deleting frees the (student, level) slot for reissue.
// @Tags         certificates
// @Produce      json
// @Param        id  path  int  true  "Certificate ID"
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/certificates/{id} [delete]
func DeleteCertificate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := db.DeleteCertificate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete certificate"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Certificate deleted"})
}

func writeCertificatePDF(c *gin.Context, cfg *config.Config, certID uint) {
	cert, err := db.GetCertificate(c.Request.Context(), certID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Certificate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch certificate"})
		return
	}

	cu, hasUser := auth.Current(c)
	if hasUser && cu.Role != models.RoleAdmin {
		if cu.StudentID == nil || *cu.StudentID != cert.StudentID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Certificate not found"})
			return
		}
	}

	student, err := db.GetStudent(c.Request.Context(), cert.StudentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student"})
		return
	}

	doc, err := pdf.RenderCertificate(pdf.CertificateData{
		StudentName: student.FirstName + " " + student.LastName,
		Level:       cert.Level,
		Number:      cert.Number,
		IssuedAt:    cert.IssuedAt,
		IssuerName:  cfg.IssuerName,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render certificate"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", cert.Number))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// DownloadCertificate godoc
// @Summary      Download a certificate as PDF
// @Tags         certificates
// @Produce      application/pdf
// @Param        id  path  int  true  "Certificate ID"
// @Success      200 {file} binary
// @Security     BearerAuth
// @Router       /admin/certificates/{id}/pdf [get]
func DownloadCertificate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		writeCertificatePDF(c, cfg, id)
	}
}
