package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"knowledge-assistant-service/content"
)

type ContentHandler struct{}

func NewContentHandler() *ContentHandler {
	return &ContentHandler{}
}

func (h *ContentHandler) FlashCards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cards": content.FlashCards()})
}

func (h *ContentHandler) FunFacts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"facts": content.FunFacts()})
}

func (h *ContentHandler) Timeline(c *gin.Context) {
	data := content.TimelineData()
	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"stats": content.ComputeTimelineStats(data),
	})
}

func (h *ContentHandler) Graph(c *gin.Context) {
	nodes, edges := content.GraphData()
	c.JSON(http.StatusOK, gin.H{"nodes": nodes, "edges": edges})
}
