// Package curriculum holds the static level map for the 150-lesson course
// and the access rules derived from a student's current lesson number.
package curriculum

import "fmt"

// Level is one of the five curriculum tiers.
type Level string

const (
	LevelA1     Level = "a1"
	LevelA2     Level = "a2"
	LevelB1     Level = "b1"
	LevelB2     Level = "b2"
	LevelB2Plus Level = "b2plus"
)

const (
	// FirstLesson and LastLesson bound the course.
	FirstLesson = 1
	LastLesson  = 150
)

// LevelRange is the contiguous lesson range owned by a level.
type LevelRange struct {
	Level Level
	Start int
	End   int
}

// Levels lists the five tiers in order. The ranges partition 1..150.
var Levels = []LevelRange{
	{LevelA1, 1, 30},
	{LevelA2, 31, 60},
	{LevelB1, 61, 90},
	{LevelB2, 91, 120},
	{LevelB2Plus, 121, 150},
}

// Valid reports whether l is one of the five known tiers.
func (l Level) Valid() bool {
	for _, r := range Levels {
		if r.Level == l {
			return true
		}
	}
	return false
}

// Range returns the lesson range owned by l.
func (l Level) Range() (LevelRange, error) {
	for _, r := range Levels {
		if r.Level == l {
			return r, nil
		}
	}
	return LevelRange{}, fmt.Errorf("unknown level %q", l)
}

// ValidLesson reports whether n is a lesson number inside the course.
func ValidLesson(n int) bool {
	return n >= FirstLesson && n <= LastLesson
}

// LevelForLesson maps a lesson number to its owning level.
// Lesson numbers outside 1..150 are clamped to the nearest tier.
func LevelForLesson(n int) Level {
	switch {
	case n <= 30:
		return LevelA1
	case n <= 60:
		return LevelA2
	case n <= 90:
		return LevelB1
	case n <= 120:
		return LevelB2
	default:
		return LevelB2Plus
	}
}

// Advance returns the lesson number after one admin-triggered increment.
// Advancing past the last lesson is a no-op.
func Advance(current int) int {
	if current >= LastLesson {
		return LastLesson
	}
	return current + 1
}

// CanAccessLesson reports whether a student at currentLesson may open lesson n.
func CanAccessLesson(currentLesson, n int) bool {
	return ValidLesson(n) && n <= currentLesson
}

// CanAccessLevel reports whether a student at currentLesson may open level l.
// A level opens as soon as its first lesson is reachable.
func CanAccessLevel(currentLesson int, l Level) bool {
	r, err := l.Range()
	if err != nil {
		return false
	}
	return r.Start <= currentLesson
}
