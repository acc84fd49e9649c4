package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/services"
)

type SkillProfileHandler struct {
	log            *logger.Logger
	profileService services.SkillProfileService
}

func NewSkillProfileHandler(log *logger.Logger, profileService services.SkillProfileService) *SkillProfileHandler {
	return &SkillProfileHandler{
		log:            log.With("handler", "SkillProfileHandler"),
		profileService: profileService,
	}
}

// GET /api/skill-profile/:skill_id
func (h *SkillProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), userID, c.Param("skill_id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, profile)
}
