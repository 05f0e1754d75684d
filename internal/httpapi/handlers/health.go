package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edenzconsultants/portal-api/internal/common"
)

// Ping backs the front end's backend-health indicator.
func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"status": "ok"})
}
