package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrevia/vrevia-back/internal/models"
)

func TestIssueCertificateOncePerLevel(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)
	student, _ := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 31)

	body := map[string]interface{}{"student_id": student.ID, "level": "a1"}

	w := doJSON(t, r, http.MethodPost, "/admin/certificates", admin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var cert models.Certificate
	decodeBody(t, w, &cert)
	assert.True(t, strings.HasPrefix(cert.Number, "VREVIA-"), cert.Number)

	w = doJSON(t, r, http.MethodPost, "/admin/certificates", admin, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	// A different level is a fresh slot.
	w = doJSON(t, r, http.MethodPost, "/admin/certificates", admin,
		map[string]interface{}{"student_id": student.ID, "level": "a2"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestIssueCertificateRejectsUnknownLevel(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)
	student, _ := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 31)

	w := doJSON(t, r, http.MethodPost, "/admin/certificates", admin,
		map[string]interface{}{"student_id": student.ID, "level": "c1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadCertificatePDF(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)
	student, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 31)

	var cert models.Certificate
	w := doJSON(t, r, http.MethodPost, "/admin/certificates", admin,
		map[string]interface{}{"student_id": student.ID, "level": "a1"})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeBody(t, w, &cert)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/admin/certificates/%d/pdf", cert.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), cert.Number)
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))

	// The owner sees the same document through the portal.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/portal/certificates/%d/pdf", cert.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestPortalCertificateOwnership(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)
	owner, _ := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 31)
	_, otherToken := newPortalStudent(t, cfg, "dias@vrevia.kz", 31)

	var cert models.Certificate
	w := doJSON(t, r, http.MethodPost, "/admin/certificates", admin,
		map[string]interface{}{"student_id": owner.ID, "level": "a1"})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeBody(t, w, &cert)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/portal/certificates/%d/pdf", cert.ID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCertificateFreesSlot(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)
	student, _ := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 31)

	var cert models.Certificate
	w := doJSON(t, r, http.MethodPost, "/admin/certificates", admin,
		map[string]interface{}{"student_id": student.ID, "level": "a1"})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeBody(t, w, &cert)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/certificates/%d", cert.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/admin/certificates", admin,
		map[string]interface{}{"student_id": student.ID, "level": "a1"})
	assert.Equal(t, http.StatusCreated, w.Code)
}
