package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/services"
)

type LearningPathHandler struct {
	log         *logger.Logger
	pathService services.LearningPathService
}

func NewLearningPathHandler(log *logger.Logger, pathService services.LearningPathService) *LearningPathHandler {
	return &LearningPathHandler{
		log:         log.With("handler", "LearningPathHandler"),
		pathService: pathService,
	}
}

// GET /api/learning-path/:course_id
func (h *LearningPathHandler) GetPath(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	path, err := h.pathService.Path(c.Request.Context(), userID, c.Param("course_id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, path)
}
