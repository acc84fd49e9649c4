package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/services"
)

type CurriculumHandler struct {
	log               *logger.Logger
	curriculumService services.CurriculumService
}

func NewCurriculumHandler(log *logger.Logger, curriculumService services.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{
		log:               log.With("handler", "CurriculumHandler"),
		curriculumService: curriculumService,
	}
}

// POST /api/curriculum/roadmaps
func (h *CurriculumHandler) IngestRoadmap(c *gin.Context) {
	var req services.RoadmapIngest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid request body"))
		return
	}
	roadmap, err := h.curriculumService.IngestRoadmap(c.Request.Context(), &req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, roadmap)
}

// POST /api/curriculum/roadmaps/:roadmap_id/recompute-difficulty
func (h *CurriculumHandler) RecomputeDifficulty(c *gin.Context) {
	roadmapID := c.Param("roadmap_id")
	if err := h.curriculumService.RecomputeDifficulty(c.Request.Context(), roadmapID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"roadmap_id": roadmapID, "recomputed": true})
}

// GET /api/courses?roadmap_id=...
func (h *CurriculumHandler) ListCourses(c *gin.Context) {
	courses, err := h.curriculumService.ListCourses(c.Request.Context(), c.Query("roadmap_id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"courses": courses})
}

// GET /api/courses/:course_id
func (h *CurriculumHandler) GetCourse(c *gin.Context) {
	course, err := h.curriculumService.GetCourse(c.Request.Context(), c.Param("course_id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, course)
}
