package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/services"
)

type EvidenceHandler struct {
	log             *logger.Logger
	evidenceService services.EvidenceService
}

func NewEvidenceHandler(log *logger.Logger, evidenceService services.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{
		log:             log.With("handler", "EvidenceHandler"),
		evidenceService: evidenceService,
	}
}

// POST /api/evidence
func (h *EvidenceHandler) Ingest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Tuples []services.EvidenceTuple `json:"tuples"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid request body"))
		return
	}
	if err := h.evidenceService.Ingest(c.Request.Context(), userID, req.Tuples); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"ingested": len(req.Tuples)})
}

// GET /api/evidence/:skill_name
func (h *EvidenceHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	weights, err := h.evidenceService.List(c.Request.Context(), userID, c.Param("skill_name"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"weights": weights})
}
