package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/skillpath-backend/internal/requestdata"
)

// currentUserID pulls the authenticated user out of the request context.
// Writes the 401 itself; callers just return on !ok.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing authentication"))
		return uuid.Nil, false
	}
	return rd.UserID, true
}
