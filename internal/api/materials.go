package api

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vrevia/vrevia-back/internal/auth"
	"github.com/vrevia/vrevia-back/internal/config"
	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/models"
)

// MaxMaterialSize caps uploaded study files at 10 MiB.
const MaxMaterialSize = 10 << 20

var pdfMagic = []byte("%PDF")

// UploadMaterial godoc
// @Summary      Upload a study material
// @Description  PDF only, up to 10 MiB. The file is stored under a generated name; the original name is kept for display.
// @Tags         materials
// @Accept       multipart/form-data
// @Produce      json
// @Param        title  formData  string  true  "Material title"
// @Param        file   formData  file    true  "PDF file"
// @Success      201    {object} models.Material
// @Failure      400    {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/materials [post]
func UploadMaterial(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := c.PostForm("title")
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}

		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
			return
		}
		if header.Size > MaxMaterialSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10 MiB limit"})
			return
		}
		if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are accepted"})
			return
		}

		src, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
			return
		}
		defer src.Close()

		content, err := io.ReadAll(io.LimitReader(src, MaxMaterialSize+1))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
			return
		}
		if len(content) > MaxMaterialSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10 MiB limit"})
			return
		}
		if !bytes.HasPrefix(content, pdfMagic) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File is not a valid PDF"})
			return
		}

		if err := os.MkdirAll(filepath.Join(cfg.MediaDir, "materials"), 0o755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
			return
		}
		stored := filepath.Join(cfg.MediaDir, "materials", uuid.NewString()+".pdf")
		if err := os.WriteFile(stored, content, 0o644); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
			return
		}

		cu, _ := auth.Current(c)
		m := models.Material{
			Title:       title,
			FileName:    filepath.Base(header.Filename),
			StoredPath:  stored,
			SizeBytes:   int64(len(content)),
			ContentType: "application/pdf",
			UploadedBy:  cu.Email,
		}
		if err := db.CreateMaterial(c.Request.Context(), &m); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save material"})
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

// ListMaterials godoc
// @Summary      List study materials
// @Tags         materials
// @Produce      json
// @Success      200 {array} models.Material
// @Security     BearerAuth
// @Router       /admin/materials [get]
func ListMaterials(c *gin.Context) {
	materials, err := db.ListMaterials(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch materials"})
		return
	}
	c.JSON(http.StatusOK, materials)
}
