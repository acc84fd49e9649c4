package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/services"
)

type GithubHandler struct {
	log          *logger.Logger
	skillService services.GithubSkillService
}

func NewGithubHandler(log *logger.Logger, skillService services.GithubSkillService) *GithubHandler {
	return &GithubHandler{
		log:          log.With("handler", "GithubHandler"),
		skillService: skillService,
	}
}

// POST /api/github/sync
func (h *GithubHandler) Sync(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	skills, err := h.skillService.Sync(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"skills": skills})
}
