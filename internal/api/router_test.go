package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRejectStudents(t *testing.T) {
	r, cfg := setupAPI(t)
	_, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 1)

	w := doJSON(t, r, http.MethodGet, "/admin/students", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRoutesRejectAnonymous(t *testing.T) {
	r, _ := setupAPI(t)

	w := doJSON(t, r, http.MethodGet, "/admin/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPortalRoutesRejectAdmins(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)

	w := doJSON(t, r, http.MethodGet, "/portal/progress", admin, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupAPI(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestExportStudentsReturnsWorkbook(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)
	newPortalStudent(t, cfg, "aigerim@vrevia.kz", 1)

	w := doJSON(t, r, http.MethodGet, "/admin/export/students", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "students-")
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())
}
