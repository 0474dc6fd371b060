package admin

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

type endpointEntry struct {
	ID           string   `json:"id"`
	Method       string   `json:"method"`
	Path         string   `json:"path"`
	Description  string   `json:"description,omitempty"`
	RequestType  string   `json:"request_content_type"`
	ResponseType string   `json:"response_content_type"`
	Responses    []string `json:"responses"`
}

// listEndpoints returns all registered endpoints with their response
// catalogues
func (h *Handler) listEndpoints(c *gin.Context) {
	var result []endpointEntry
	for _, ep := range h.endpoints.List() {
		responses := make([]string, 0, len(ep.Responses))
		for id := range ep.Responses {
			responses = append(responses, string(id))
		}
		sort.Strings(responses)
		result = append(result, endpointEntry{
			ID:           string(ep.ID),
			Method:       ep.Method,
			Path:         ep.Path.String(),
			Description:  ep.Description,
			RequestType:  string(ep.RequestType),
			ResponseType: string(ep.ResponseType),
			Responses:    responses,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"total":     len(result),
		"endpoints": result,
	})
}
