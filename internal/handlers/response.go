package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillpath-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps the service sentinels onto HTTP statuses;
// anything unrecognized is a 500.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrMalformedGraph):
		RespondError(c, http.StatusBadRequest, "malformed_graph", err)
	case errors.Is(err, services.ErrInvalidEvidence):
		RespondError(c, http.StatusBadRequest, "invalid_evidence", err)
	case errors.Is(err, services.ErrCurriculumNotReady):
		RespondError(c, http.StatusConflict, "curriculum_not_ready", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
