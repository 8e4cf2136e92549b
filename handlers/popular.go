package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"knowledge-assistant-service/config"
)

// fallbackLabels keeps the UI working when the graph backend is down.
var fallbackLabels = []string{"Microgravity", "Bone Health", "Plants", "Microbes", "Radiation", "Sleep"}

type PopularHandler struct {
	cfg    *config.Config
	client *http.Client
}

func NewPopularHandler(cfg *config.Config) *PopularHandler {
	return &PopularHandler{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// PopularLabels proxies the backend's popular graph labels. Any upstream
// failure degrades to the static fallback list with status 200 so the UI
// never shows an error for this widget.
func (h *PopularHandler) PopularLabels(c *gin.Context) {
	limit := c.DefaultQuery("limit", "10")

	base := strings.TrimRight(h.cfg.RAGBaseURL, "/")
	reqURL := base + "/graph/label/popular?limit=" + url.QueryEscape(limit)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		log.Errorf("Failed to create popular labels request: %v", err)
		c.JSON(http.StatusOK, fallbackLabels)
		return
	}
	req.Header.Set("ngrok-skip-browser-warning", "true")
	if h.cfg.RAGAPIKey != "" {
		req.Header.Set("X-API-Key", h.cfg.RAGAPIKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		log.Warnf("Popular labels upstream unreachable: %v", err)
		c.JSON(http.StatusOK, fallbackLabels)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf("Popular labels upstream returned %d", resp.StatusCode)
		c.JSON(http.StatusOK, fallbackLabels)
		return
	}

	var labels []string
	if err := json.NewDecoder(resp.Body).Decode(&labels); err != nil {
		log.Warnf("Popular labels payload not a string array: %v", err)
		c.JSON(http.StatusOK, []string{})
		return
	}
	if labels == nil {
		labels = []string{}
	}
	c.JSON(http.StatusOK, labels)
}
