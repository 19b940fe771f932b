package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrevia/vrevia-back/internal/models"
)

func TestCreateStudentRejectsLessonOutOfRange(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)

	for _, lesson := range []int{-3, 151, 500} {
		w := doJSON(t, r, http.MethodPost, "/admin/students", admin, map[string]interface{}{
			"first_name":     "Aigerim",
			"last_name":      "Seitova",
			"current_lesson": lesson,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "lesson %d", lesson)
	}
}

func TestCreateStudentDefaultsToFirstLesson(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)

	w := doJSON(t, r, http.MethodPost, "/admin/students", admin, map[string]interface{}{
		"first_name": "Aigerim",
		"last_name":  "Seitova",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var s models.Student
	decodeBody(t, w, &s)
	assert.Equal(t, 1, s.CurrentLesson)
	assert.Equal(t, "a1", s.CurrentLevel)
	assert.Equal(t, models.ModuleSchool, s.Modules)
}
