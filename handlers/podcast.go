package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"knowledge-assistant-service/config"
)

type PodcastHandler struct {
	cfg    *config.Config
	client *http.Client
}

func NewPodcastHandler(cfg *config.Config) *PodcastHandler {
	return &PodcastHandler{
		cfg: cfg,
		client: &http.Client{
			Timeout: 180 * time.Second, // Audio generation is slow
		},
	}
}

type PodcastRequest struct {
	Topic             string   `json:"topic" binding:"required"`
	MaxWords          int      `json:"max_words,omitempty"`
	ConversationStyle []string `json:"conversation_style,omitempty"`
	Creativity        float64  `json:"creativity,omitempty"`
	PodcastName       string   `json:"podcast_name,omitempty"`
	MaxNumChunks      int      `json:"max_num_chunks,omitempty"`
	Model             string   `json:"model,omitempty"`
}

// applyDefaults fills the generator parameters the UI normally sends.
func (r *PodcastRequest) applyDefaults() {
	if r.MaxWords == 0 {
		r.MaxWords = 100
	}
	if len(r.ConversationStyle) == 0 {
		r.ConversationStyle = []string{"casual", "educative"}
	}
	if r.Creativity == 0 {
		r.Creativity = 0.7
	}
	if r.PodcastName == "" {
		r.PodcastName = "NASA Podcast"
	}
	if r.MaxNumChunks == 0 {
		r.MaxNumChunks = 3
	}
	if r.Model == "" {
		r.Model = "gpt-4o-mini"
	}
}

// GeneratePodcast proxies a podcast generation request to the remote
// generator and passes the audio blob back unchanged. The generation
// itself is entirely upstream.
func (h *PodcastHandler) GeneratePodcast(c *gin.Context) {
	if h.cfg.PodcastURL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Podcast generation not configured"})
		return
	}

	var req PodcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Invalid podcast request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	req.applyDefaults()

	log.WithFields(log.Fields{
		"client_ip": c.ClientIP(),
		"topic":     req.Topic,
	}).Info("podcast.generate.request")

	payload, err := json.Marshal(req)
	if err != nil {
		log.Errorf("Failed to marshal podcast request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 180*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, "POST", h.cfg.PodcastURL, bytes.NewReader(payload))
	if err != nil {
		log.Errorf("Failed to create podcast request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/wav")
	httpReq.Header.Set("ngrok-skip-browser-warning", "true")
	if h.cfg.PodcastAPIKey != "" {
		httpReq.Header.Set("X-API-Key", h.cfg.PodcastAPIKey)
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		log.Errorf("Podcast generator request failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to contact podcast generator"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBytes, _ := io.ReadAll(resp.Body)
		log.Errorf("Podcast generator returned %d: %s", resp.StatusCode, string(respBytes))

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid podcast API key"})
		case http.StatusTooManyRequests:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limited by podcast generator"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Podcast generation failed"})
		}
		return
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Errorf("Failed to read podcast audio: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to read podcast audio"})
		return
	}

	log.WithFields(log.Fields{
		"topic":       req.Topic,
		"audio_bytes": len(audio),
	}).Info("podcast.generate.success")

	c.Data(http.StatusOK, "audio/wav", audio)
}
