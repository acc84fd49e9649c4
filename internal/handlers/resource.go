package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/services"
)

type ResourceHandler struct {
	log             *logger.Logger
	resourceService services.ResourceService
}

func NewResourceHandler(log *logger.Logger, resourceService services.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		log:             log.With("handler", "ResourceHandler"),
		resourceService: resourceService,
	}
}

// GET /api/courses/:course_id/resources
func (h *ResourceHandler) GetRanked(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ranked, err := h.resourceService.RankedForCourse(c.Request.Context(), userID, c.Param("course_id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, ranked)
}
