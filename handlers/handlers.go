package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"knowledge-assistant-service/evidence"
	"knowledge-assistant-service/lightrag"
	"knowledge-assistant-service/models"
	"knowledge-assistant-service/utils"
	"knowledge-assistant-service/version"
)

const serviceName = "knowledge-assistant-service"

// RAGClient is the streaming query surface the handlers need.
type RAGClient interface {
	SendMessage(ctx context.Context, prompt string, opts lightrag.Options) (models.QueryResult, error)
}

type QueryHandler struct {
	rag RAGClient
}

func NewQueryHandler(rag RAGClient) *QueryHandler {
	return &QueryHandler{rag: rag}
}

// HealthCheck returns service health status and build info.
func (h *QueryHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"build":   version.Get(serviceName),
	})
}

// Query streams the answer for a prompt back to the browser as
// newline-delimited JSON chunks: {response} per token, one {references}
// chunk when the backend supplies any, then a terminal {done} chunk.
func (h *QueryHandler) Query(c *gin.Context) {
	var req models.QueryRequest
	if err := c.BindJSON(&req); err != nil {
		log.Errorf("Failed to bind query request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	queryID := uuid.NewString()
	logger := log.WithFields(log.Fields{
		"query_id":  queryID,
		"client_ip": c.ClientIP(),
	})
	logger.Info("query.stream.start")

	// Set headers for streaming
	c.Header("Content-Type", "application/x-ndjson")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	result, err := h.rag.SendMessage(c.Request.Context(), req.Prompt, lightrag.Options{
		History: req.ConversationHistory,
		OnToken: func(token string) error {
			return utils.WriteStreamChunk(c.Writer, models.StreamChunk{Response: token})
		},
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Voluntary disconnect, not an upstream failure.
			logger.Info("query.stream.cancelled")
			return
		}
		logger.Errorf("query stream failed: %v", err)
		utils.WriteStreamChunk(c.Writer, models.StreamChunk{
			Error: "Failed to get an answer from the knowledge service",
		})
		return
	}

	if len(result.References) > 0 {
		utils.WriteStreamChunk(c.Writer, models.StreamChunk{References: result.References})
	}
	utils.WriteStreamChunk(c.Writer, models.StreamChunk{Done: true, QueryID: queryID})

	logger.WithFields(log.Fields{
		"answer_len": len(result.Message),
		"references": len(result.References),
	}).Info("query.stream.done")
}

// Evidence builds evidence cards from a final answer and its references.
// Well-formed input always produces a well-formed, possibly empty card set.
func (h *QueryHandler) Evidence(c *gin.Context) {
	var req models.EvidenceRequest
	if err := c.BindJSON(&req); err != nil {
		log.Errorf("Failed to bind evidence request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	resp := evidence.GenerateCards(req)
	log.WithFields(log.Fields{
		"references":  len(req.References),
		"total_cards": resp.TotalCards,
	}).Info("evidence.cards.generated")

	c.JSON(http.StatusOK, resp)
}
