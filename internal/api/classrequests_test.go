package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrevia/vrevia-back/internal/models"
)

func classRequestBody(lesson int, scheduledAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		"lesson_number": lesson,
		"scheduled_at":  scheduledAt.Format(time.RFC3339),
		"note":          "speaking practice",
	}
}

func TestClassRequestRequiresSubscription(t *testing.T) {
	r, cfg := setupAPI(t)
	_, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 10)

	w := doJSON(t, r, http.MethodPost, "/portal/class-requests", token,
		classRequestBody(10, time.Now().Add(48*time.Hour)))
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestClassRequestQuotaPerLevel(t *testing.T) {
	r, cfg := setupAPI(t)
	student, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 10)
	giveActiveSubscription(t, student.ID)

	for i := 0; i < models.MaxClassRequestsPerLevel; i++ {
		w := doJSON(t, r, http.MethodPost, "/portal/class-requests", token,
			classRequestBody(10+i, time.Now().Add(48*time.Hour)))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doJSON(t, r, http.MethodPost, "/portal/class-requests", token,
		classRequestBody(13, time.Now().Add(48*time.Hour)))
	assert.Equal(t, http.StatusConflict, w.Code)

	// Another level has its own quota.
	w = doJSON(t, r, http.MethodPost, "/portal/class-requests", token,
		classRequestBody(45, time.Now().Add(48*time.Hour)))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCancelClassRequestFreesQuota(t *testing.T) {
	r, cfg := setupAPI(t)
	student, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 10)
	giveActiveSubscription(t, student.ID)

	var first models.ClassRequest
	for i := 0; i < models.MaxClassRequestsPerLevel; i++ {
		w := doJSON(t, r, http.MethodPost, "/portal/class-requests", token,
			classRequestBody(10+i, time.Now().Add(72*time.Hour)))
		require.Equal(t, http.StatusCreated, w.Code)
		if i == 0 {
			decodeBody(t, w, &first)
		}
	}

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/portal/class-requests/%d/cancel", first.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/portal/class-requests", token,
		classRequestBody(14, time.Now().Add(72*time.Hour)))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCancelClassRequestInsideCutoff(t *testing.T) {
	r, cfg := setupAPI(t)
	student, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 10)
	giveActiveSubscription(t, student.ID)

	var cr models.ClassRequest
	w := doJSON(t, r, http.MethodPost, "/portal/class-requests", token,
		classRequestBody(10, time.Now().Add(23*time.Hour)))
	require.Equal(t, http.StatusCreated, w.Code)
	decodeBody(t, w, &cr)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/portal/class-requests/%d/cancel", cr.ID), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminSettlesClassRequest(t *testing.T) {
	r, cfg := setupAPI(t)
	admin := adminToken(t, cfg)
	student, token := newPortalStudent(t, cfg, "aigerim@vrevia.kz", 10)
	giveActiveSubscription(t, student.ID)

	var cr models.ClassRequest
	w := doJSON(t, r, http.MethodPost, "/portal/class-requests", token,
		classRequestBody(10, time.Now().Add(72*time.Hour)))
	require.Equal(t, http.StatusCreated, w.Code)
	decodeBody(t, w, &cr)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/class-requests/%d", cr.ID), admin,
		map[string]string{"status": models.ClassRequestConfirmed})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/class-requests/%d", cr.ID), admin,
		map[string]string{"status": models.ClassRequestCompleted})
	require.Equal(t, http.StatusOK, w.Code)

	// Completed requests are settled for good.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/class-requests/%d", cr.ID), admin,
		map[string]string{"status": models.ClassRequestConfirmed})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/portal/class-requests/%d/cancel", cr.ID), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}
