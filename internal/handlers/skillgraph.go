package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/services"
)

type SkillGraphHandler struct {
	log          *logger.Logger
	graphService services.SkillGraphService
}

func NewSkillGraphHandler(log *logger.Logger, graphService services.SkillGraphService) *SkillGraphHandler {
	return &SkillGraphHandler{
		log:          log.With("handler", "SkillGraphHandler"),
		graphService: graphService,
	}
}

// GET /api/skill-graph/:roadmap_id/status
func (h *SkillGraphHandler) GetStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	status, err := h.graphService.RoadmapStatus(c.Request.Context(), userID, c.Param("roadmap_id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, status)
}
