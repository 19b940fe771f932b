package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/models"
)

func giveActiveSubscription(t *testing.T, studentID uint) {
	t.Helper()
	require.NoError(t, db.CreateSubscription(context.Background(), &models.Subscription{
		StudentID: studentID,
		Type:      models.SubscriptionMonthly,
		Status:    models.SubscriptionActive,
		StartDate: time.Now().Add(-24 * time.Hour),
		EndDate:   time.Now().Add(30 * 24 * time.Hour),
	}))
}

func publishLesson(t *testing.T, number int) *models.Lesson {
	t.Helper()
	l := &models.Lesson{Number: number, Title: fmt.Sprintf("Lesson %d", number), Published: true}
	require.NoError(t, db.CreateLesson(context.Background(), l))
	return l
}

func TestLessonGateFlipsWhenStudentAdvances(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)
	student, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 30)
	giveActiveSubscription(t, student.ID)
	publishLesson(t, 31)

	w := doJSON(t, r, http.MethodGet, "/portal/lessons/31", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/admin/students/%d/advance", student.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/portal/lessons/31", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestPortalLessonRequiresSubscription(t *testing.T) {
	r, cfg := setupAPI(t)
	_, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 5)
	publishLesson(t, 3)

	w := doJSON(t, r, http.MethodGet, "/portal/lessons/3", token, nil)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestPortalHidesDraftLessons(t *testing.T) {
	r, cfg := setupAPI(t)
	student, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 10)
	giveActiveSubscription(t, student.ID)
	l := &models.Lesson{Number: 4, Title: "Draft", Published: false}
	require.NoError(t, db.CreateLesson(context.Background(), l))

	w := doJSON(t, r, http.MethodGet, "/portal/lessons/4", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckAccess(t *testing.T) {
	r, cfg := setupAPI(t)
	_, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 30)

	var resp map[string]bool

	w := doJSON(t, r, http.MethodGet, "/portal/access?lesson=30", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.True(t, resp["lesson_accessible"])

	w = doJSON(t, r, http.MethodGet, "/portal/access?lesson=31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.False(t, resp["lesson_accessible"])

	w = doJSON(t, r, http.MethodGet, "/portal/access?level=a1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.True(t, resp["level_accessible"])

	w = doJSON(t, r, http.MethodGet, "/portal/access?level=a2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.False(t, resp["level_accessible"])

	w = doJSON(t, r, http.MethodGet, "/portal/access", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitAttemptMatchesAnswerLoosely(t *testing.T) {
	r, cfg := setupAPI(t)
	ctx := context.Background()
	student, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 5)
	giveActiveSubscription(t, student.ID)
	lesson := publishLesson(t, 2)
	ex := &models.Exercise{
		LessonID: lesson.ID,
		Position: 1,
		Kind:     models.ExerciseTranslate,
		Prompt:   "Translate: привет",
		Answer:   "hello",
	}
	require.NoError(t, db.CreateExercise(ctx, ex))

	var attempt models.ExerciseAttempt

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/portal/exercises/%d/attempts", ex.ID), token,
		map[string]string{"answer": "  HELLO "})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decodeBody(t, w, &attempt)
	assert.True(t, attempt.Correct)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/portal/exercises/%d/attempts", ex.ID), token,
		map[string]string{"answer": "goodbye"})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeBody(t, w, &attempt)
	assert.False(t, attempt.Correct)

	attempts, err := db.ListExerciseAttempts(ctx, student.ID, ex.ID)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

func TestGetProgress(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)
	student, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 12)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/admin/students/%d/advance", student.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/portal/progress", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		CurrentLesson    int    `json:"current_lesson"`
		CurrentLevel     string `json:"current_level"`
		CompletedLessons []int  `json:"completed_lessons"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, 13, resp.CurrentLesson)
	assert.Equal(t, "a1", resp.CurrentLevel)
	assert.Equal(t, []int{12}, resp.CompletedLessons)
}
