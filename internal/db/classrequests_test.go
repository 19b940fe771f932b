package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrevia/vrevia-back/internal/models"
)

func TestClassRequestQuota(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	s := newTestStudent(t, 40)
	scheduled := time.Now().UTC().Add(72 * time.Hour)

	// lessons 31, 32, 33 are all level a2
	for _, lesson := range []int{31, 32, 33} {
		req, err := CreateClassRequest(ctx, s.ID, lesson, scheduled, "")
		require.NoError(t, err)
		assert.Equal(t, "a2", req.Level)
		assert.Equal(t, models.ClassRequestPending, req.Status)
	}

	// 4th non-cancelled request in the same level is rejected
	_, err := CreateClassRequest(ctx, s.ID, 34, scheduled, "")
	assert.True(t, errors.Is(err, ErrQuotaExceeded))

	// a different level has its own quota
	_, err = CreateClassRequest(ctx, s.ID, 5, scheduled, "")
	assert.NoError(t, err)
}

func TestClassRequestCancelFreesQuota(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	s := newTestStudent(t, 40)
	scheduled := time.Now().UTC().Add(72 * time.Hour)

	var first *models.ClassRequest
	for _, lesson := range []int{31, 32, 33} {
		req, err := CreateClassRequest(ctx, s.ID, lesson, scheduled, "")
		require.NoError(t, err)
		if first == nil {
			first = req
		}
	}

	cancelled, err := CancelClassRequest(ctx, s.ID, first.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, models.ClassRequestCancelled, cancelled.Status)

	// the freed slot allows a 4th request
	_, err = CreateClassRequest(ctx, s.ID, 34, scheduled, "")
	assert.NoError(t, err)
}

func TestClassRequestCancelCutoff(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	s := newTestStudent(t, 40)
	now := time.Now().UTC()

	soon, err := CreateClassRequest(ctx, s.ID, 31, now.Add(23*time.Hour), "")
	require.NoError(t, err)
	later, err := CreateClassRequest(ctx, s.ID, 32, now.Add(25*time.Hour), "")
	require.NoError(t, err)

	_, err = CancelClassRequest(ctx, s.ID, soon.ID, now)
	assert.True(t, errors.Is(err, ErrCancelTooLate))

	got, err := CancelClassRequest(ctx, s.ID, later.ID, now)
	require.NoError(t, err)
	assert.Equal(t, models.ClassRequestCancelled, got.Status)
}

func TestClassRequestFinalStatesAreImmutable(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	s := newTestStudent(t, 40)
	scheduled := time.Now().UTC().Add(72 * time.Hour)

	req, err := CreateClassRequest(ctx, s.ID, 31, scheduled, "")
	require.NoError(t, err)

	confirmed, err := SetClassRequestStatus(ctx, req.ID, models.ClassRequestConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.ClassRequestConfirmed, confirmed.Status)

	completed, err := SetClassRequestStatus(ctx, req.ID, models.ClassRequestCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.ClassRequestCompleted, completed.Status)

	_, err = CancelClassRequest(ctx, s.ID, req.ID, time.Now().UTC())
	assert.True(t, errors.Is(err, ErrAlreadyFinal))

	_, err = SetClassRequestStatus(ctx, req.ID, models.ClassRequestConfirmed)
	assert.True(t, errors.Is(err, ErrAlreadyFinal))
}

func TestClassRequestCancelOtherStudentNotFound(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	owner := newTestStudent(t, 40)
	other := newTestStudent(t, 40)
	scheduled := time.Now().UTC().Add(72 * time.Hour)

	req, err := CreateClassRequest(ctx, owner.ID, 31, scheduled, "")
	require.NoError(t, err)

	_, err = CancelClassRequest(ctx, other.ID, req.ID, time.Now().UTC())
	assert.Error(t, err)
}

func TestCreateClassRequestReturnsItsOwnRow(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	s := newTestStudent(t, 40)
	early := time.Now().UTC().Add(48 * time.Hour)
	late := time.Now().UTC().Add(96 * time.Hour)

	first, err := CreateClassRequest(ctx, s.ID, 31, early, "")
	require.NoError(t, err)
	second, err := CreateClassRequest(ctx, s.ID, 45, late, "")
	require.NoError(t, err)

	assert.Equal(t, 31, first.LessonNumber)
	assert.Equal(t, 45, second.LessonNumber)
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, second.ScheduledAt.After(first.ScheduledAt))
}
