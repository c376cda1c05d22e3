package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/http/middleware"
	"wanderplan/internal/modules/aiusage"
)

type QuotaHandler struct {
	usage *aiusage.Service
}

func NewQuotaHandler(usage *aiusage.Service) *QuotaHandler {
	return &QuotaHandler{usage: usage}
}

// Get handles GET /api/quota.
func (h *QuotaHandler) Get(c *gin.Context) {
	u, err := h.usage.Usage(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, u)
}
