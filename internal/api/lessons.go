package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/config"
	"github.com/vrevia/vrevia-back/internal/curriculum"
	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/models"
	"github.com/vrevia/vrevia-back/internal/tts"
)

type LessonRequest struct {
	Number    int    `json:"number" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Published bool   `json:"published"`
}

// CreateLesson godoc
// @Summary      Create a lesson
// @Tags         lessons
// @Accept       json
// @Produce      json
// @Param        body  body  LessonRequest  true  "Lesson info"
// @Success      201   {object} models.Lesson
// @Failure      409   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/lessons [post]
func CreateLesson(c *gin.Context) {
	var req LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !curriculum.ValidLesson(req.Number) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lesson number out of range"})
		return
	}

	l := models.Lesson{Number: req.Number, Title: req.Title, Published: req.Published}
	if err := db.CreateLesson(c.Request.Context(), &l); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Lesson number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lesson"})
		return
	}
	c.JSON(http.StatusCreated, l)
}

// ListLessons godoc
// @Summary      List all lessons, drafts included
// @Tags         lessons
// @Produce      json
// @Success      200 {array} models.Lesson
// @Security     BearerAuth
// @Router       /admin/lessons [get]
func ListLessons(c *gin.Context) {
	lessons, err := db.ListLessons(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lessons"})
		return
	}
	c.JSON(http.StatusOK, lessons)
}

type UpdateLessonRequest struct {
	Title     *string `json:"title"`
	Published *bool   `json:"published"`
}

// UpdateLesson godoc
// @Summary      Update lesson title or publication state
// @Tags         lessons
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "Lesson ID"
// @Param        body  body  UpdateLessonRequest  true  "Fields to update"
// @Success      200   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/lessons/{id} [patch]
func UpdateLesson(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}
	if err := db.UpdateLesson(c.Request.Context(), id, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lesson updated"})
}

type SectionRequest struct {
	Position int    `json:"position" binding:"required"`
	Title    string `json:"title"`
	Body     string `json:"body" binding:"required"`
}

// CreateLessonSection godoc
// @Summary      Add a content section to a lesson
// @Tags         lessons
// @Accept       json
// @Produce      json
// @Param        id    path  int             true  "Lesson ID"
// @Param        body  body  SectionRequest  true  "Section info"
// @Success      201   {object} models.LessonSection
// @Failure      409   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/lessons/{id}/sections [post]
func CreateLessonSection(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s := models.LessonSection{
		LessonID: id,
		Position: req.Position,
		Title:    req.Title,
		Body:     req.Body,
	}
	if err := db.CreateLessonSection(c.Request.Context(), &s); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Section position already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create section"})
		return
	}
	c.JSON(http.StatusCreated, s)
}

type ExerciseRequest struct {
	Position int    `json:"position" binding:"required"`
	Kind     string `json:"kind" binding:"required,oneof=translate fill_gap listening"`
	Prompt   string `json:"prompt" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

// CreateExercise godoc
// @Summary      Add an exercise to a lesson
// @Tags         lessons
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "Lesson ID"
// @Param        body  body  ExerciseRequest  true  "Exercise info"
// @Success      201   {object} models.Exercise
// @Failure      409   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/lessons/{id}/exercises [post]
func CreateExercise(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	e := models.Exercise{
		LessonID: id,
		Position: req.Position,
		Kind:     req.Kind,
		Prompt:   req.Prompt,
		Answer:   req.Answer,
	}
	if err := db.CreateExercise(c.Request.Context(), &e); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Exercise position already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exercise"})
		return
	}
	c.JSON(http.StatusCreated, e)
}

// GenerateSectionAudio godoc
// @Summary      Synthesize narration audio for a lesson section
// @Description  Skips synthesis when the section already has audio; the stored path is returned either way.
// @Tags         lessons
// @Produce      json
// @Param        id         path  int  true  "Lesson ID"
// @Param        sectionId  path  int  true  "Section ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/lessons/{id}/sections/{sectionId}/audio [post]
func GenerateSectionAudio(cfg *config.Config, synth tts.Synthesizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		lessonID, ok := paramID(c, "id")
		if !ok {
			return
		}
		sectionID, ok := paramID(c, "sectionId")
		if !ok {
			return
		}

		section, err := db.GetLessonSection(c.Request.Context(), lessonID, sectionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch section"})
			return
		}

		if section.AudioPath != "" {
			c.JSON(http.StatusOK, gin.H{"audio_path": section.AudioPath, "generated": "false"})
			return
		}

		if synth == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Speech synthesis is not configured"})
			return
		}

		audio, err := synth.Synthesize(c.Request.Context(), section.Body)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to synthesize audio"})
			return
		}

		if err := os.MkdirAll(filepath.Join(cfg.MediaDir, "audio"), 0o755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store audio"})
			return
		}
		name := fmt.Sprintf("section-%d-%s.mp3", section.ID, uuid.NewString())
		path := filepath.Join(cfg.MediaDir, "audio", name)
		if err := os.WriteFile(path, audio, 0o644); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store audio"})
			return
		}

		if err := db.SetSectionAudioPath(c.Request.Context(), section.ID, path); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save audio path"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"audio_path": path, "generated": "true"})
	}
}
