package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"renkon/ident"
	"renkon/scenario"
)

// listScenarios returns all registered scenarios
func (h *Handler) listScenarios(c *gin.Context) {
	scenarios := h.scenarios.List()
	defaultID := ""
	if def, ok := h.scenarios.Default(); ok {
		defaultID = string(def.ID)
	}
	c.JSON(http.StatusOK, gin.H{
		"total":     len(scenarios),
		"default":   defaultID,
		"scenarios": scenarios,
	})
}

// addScenario registers a scenario from its JSON form
func (h *Handler) addScenario(c *gin.Context) {
	var scn scenario.Scenario
	if err := c.ShouldBindJSON(&scn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.scenarios.Add(&scn); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Scenario added",
		"scenario": scn.ID,
	})
}

// updateScenario registers or replaces a scenario
func (h *Handler) updateScenario(c *gin.Context) {
	var scn scenario.Scenario
	if err := c.ShouldBindJSON(&scn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if string(scn.ID) != c.Param("id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scenario id does not match path"})
		return
	}
	if err := h.scenarios.Update(&scn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Scenario updated",
		"scenario": scn.ID,
	})
}

// removeScenario deletes a scenario by id
func (h *Handler) removeScenario(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scenario id required"})
		return
	}
	if !h.scenarios.Remove(ident.Scenario(id)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "scenario not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Scenario removed",
		"scenario": id,
	})
}

// setDefaultScenario marks an existing scenario as the default
func (h *Handler) setDefaultScenario(c *gin.Context) {
	id := c.Param("id")
	scn, ok := h.scenarios.Get(ident.Scenario(id))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "scenario not found"})
		return
	}
	if err := h.scenarios.SetDefault(scn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Default scenario set",
		"scenario": id,
	})
}
