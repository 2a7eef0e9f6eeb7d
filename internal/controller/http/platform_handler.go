package http

import (
	"net/http"
	"strings"

	"socialblaster/internal/platform"

	"github.com/gin-gonic/gin"
)

type PlatformHandler struct {
	registry *platform.Registry
}

func NewPlatformHandler(registry *platform.Registry) *PlatformHandler {
	return &PlatformHandler{registry: registry}
}

// ListPlatforms godoc
// @Summary      List supported platforms
// @Description  Supported platforms with their composing constraints, in definition order
// @Tags         platforms
// @Produce      json
// @Success      200  {array}  platform.Platform
// @Router       /platforms [get]
func (h *PlatformHandler) ListPlatforms(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.All())
}

// CharacterLimit godoc
// @Summary      Effective character limit
// @Description  The minimum character limit across the given platform ids, the binding constraint when composing for all of them at once
// @Tags         platforms
// @Produce      json
// @Param        ids query string false "Comma-separated platform ids"
// @Success      200  {object}  map[string]int
// @Router       /platforms/character-limit [get]
func (h *PlatformHandler) CharacterLimit(c *gin.Context) {
	var ids []string
	if raw := c.Query("ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"characterLimit": h.registry.EffectiveCharacterLimit(ids)})
}
