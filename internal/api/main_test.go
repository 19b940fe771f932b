package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/vrevia/vrevia-back/internal/auth"
	"github.com/vrevia/vrevia-back/internal/config"
	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupAPI wires a router against a fresh in-memory database.
func setupAPI(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	require.NoError(t, db.InitTest())
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		MediaDir:   t.TempDir(),
		ReportDir:  t.TempDir(),
		IssuerName: "Vrevia English School",
	}
	return SetupRouter(cfg, nil), cfg
}

func adminToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	u := &models.User{
		Email:        "admin@vrevia.kz",
		PasswordHash: "-",
		Role:         models.RoleAdmin,
	}
	require.NoError(t, db.CreateUser(context.Background(), u))
	access, _, err := auth.IssueTokens([]byte(cfg.JWTSecret), u)
	require.NoError(t, err)
	return access
}

// newPortalStudent creates a student record plus its login and returns the
// student with an access token.
func newPortalStudent(t *testing.T, cfg *config.Config, email string, lesson int) (*models.Student, string) {
	t.Helper()
	ctx := context.Background()
	s := &models.Student{
		FirstName:     "Aigerim",
		LastName:      "Seitova",
		CurrentLesson: lesson,
		Active:        true,
		Modules:       models.ModuleEnglish,
	}
	require.NoError(t, db.CreateStudent(ctx, s))
	u := &models.User{
		Email:        email,
		PasswordHash: "-",
		Role:         models.RoleStudent,
		StudentID:    &s.ID,
	}
	require.NoError(t, db.CreateUser(ctx, u))
	access, _, err := auth.IssueTokens([]byte(cfg.JWTSecret), u)
	require.NoError(t, err)
	return s, access
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "status %d body %s", w.Code, w.Body.String())
}
