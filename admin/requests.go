package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// listRequests returns recent interactions from the journal, newest first
func (h *Handler) listRequests(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	entries := h.journal.List(limit, offset)
	c.JSON(http.StatusOK, gin.H{
		"total":    h.journal.Count(),
		"count":    len(entries),
		"requests": entries,
	})
}

// clearRequests empties the journal
func (h *Handler) clearRequests(c *gin.Context) {
	h.journal.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Journal cleared"})
}
