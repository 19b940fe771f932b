package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrevia/vrevia-back/internal/models"
)

func uploadMaterial(t *testing.T, r *gin.Engine, token, title, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if title != "" {
		require.NoError(t, mw.WriteField("title", title))
	}
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/materials", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadMaterialAcceptsPDF(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)

	w := uploadMaterial(t, r, admin, "Grammar drills", "drills.pdf", []byte("%PDF-1.4 fake body"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var m models.Material
	decodeBody(t, w, &m)
	assert.Equal(t, "drills.pdf", m.FileName)
	assert.Equal(t, "application/pdf", m.ContentType)
	assert.NotEqual(t, "drills.pdf", m.StoredPath)
}

func TestUploadMaterialRejectsWrongExtension(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)

	w := uploadMaterial(t, r, admin, "Notes", "notes.txt", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadMaterialRejectsFakePDF(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)

	w := uploadMaterial(t, r, admin, "Notes", "notes.pdf", []byte("just text pretending"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadMaterialRequiresTitle(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)

	w := uploadMaterial(t, r, admin, "", "drills.pdf", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPortalListsMaterials(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)
	_, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 1)

	w := uploadMaterial(t, r, admin, "Grammar drills", "drills.pdf", []byte("%PDF-1.4 fake body"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/portal/materials", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var materials []models.Material
	decodeBody(t, w, &materials)
	assert.Len(t, materials, 1)
}
