package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/services"
)

type ResumeHandler struct {
	log           *logger.Logger
	resumeService services.ResumeService
}

func NewResumeHandler(log *logger.Logger, resumeService services.ResumeService) *ResumeHandler {
	return &ResumeHandler{
		log:           log.With("handler", "ResumeHandler"),
		resumeService: resumeService,
	}
}

// POST /api/resume/text
// Takes already-extracted resume text; PDF extraction happens upstream.
func (h *ResumeHandler) IngestText(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid request body"))
		return
	}
	skills, err := h.resumeService.IngestText(c.Request.Context(), userID, req.Text)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"skills": skills})
}
