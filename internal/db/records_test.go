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

func TestAttendanceDuplicateRejected(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	s := newTestStudent(t, 10)

	first := &models.Attendance{
		StudentID:    s.ID,
		LessonNumber: 10,
		Kind:         "class",
		Status:       models.AttendancePresent,
		Date:         time.Now().UTC(),
		MarkedBy:     "admin@vrevia.kz",
	}
	require.NoError(t, CreateAttendance(ctx, first))

	dup := &models.Attendance{
		StudentID:    s.ID,
		LessonNumber: 10,
		Kind:         "class",
		Status:       models.AttendanceAbsent,
		Date:         time.Now().UTC(),
	}
	err := CreateAttendance(ctx, dup)
	assert.True(t, errors.Is(err, ErrDuplicateRecord))

	records, err := ListAttendance(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AttendancePresent, records[0].Status)
}

func TestOverrideGradeAppendsRevision(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	s := newTestStudent(t, 10)

	g := &models.Grade{
		StudentID:    s.ID,
		LessonNumber: 10,
		Kind:         models.GradeTest,
		Score:        62,
	}
	require.NoError(t, CreateGrade(ctx, g))

	got, err := OverrideGrade(ctx, g.ID, 85, "re-assessed after appeal", "admin@vrevia.kz")
	require.NoError(t, err)
	assert.Equal(t, 85, got.Score)
	assert.True(t, got.Extraordinary)

	got, err = OverrideGrade(ctx, g.ID, 90, "second appeal", "admin@vrevia.kz")
	require.NoError(t, err)
	assert.Equal(t, 90, got.Score)

	revs, err := ListGradeRevisions(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, 62, revs[0].OldScore)
	assert.Equal(t, 85, revs[0].NewScore)
	assert.Equal(t, 85, revs[1].OldScore)
	assert.Equal(t, 90, revs[1].NewScore)
}

func TestDuplicateGradeRejected(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	s := newTestStudent(t, 10)

	g := &models.Grade{StudentID: s.ID, LessonNumber: 10, Kind: models.GradeTest, Score: 70}
	require.NoError(t, CreateGrade(ctx, g))

	dup := &models.Grade{StudentID: s.ID, LessonNumber: 10, Kind: models.GradeTest, Score: 90}
	err := CreateGrade(ctx, dup)
	assert.True(t, errors.Is(err, ErrDuplicateRecord))

	// a different kind for the same lesson is a separate fact
	other := &models.Grade{StudentID: s.ID, LessonNumber: 10, Kind: models.GradeSpeaking, Score: 90}
	assert.NoError(t, CreateGrade(ctx, other))
}
