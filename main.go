package main

import (
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"knowledge-assistant-service/config"
	"knowledge-assistant-service/handlers"
	"knowledge-assistant-service/lightrag"
	"knowledge-assistant-service/middleware"
)

const (
	EndPointHealth     = "/health"
	EndPointQuery      = "/api/query"
	EndPointEvidence   = "/api/evidence"
	EndPointPopular    = "/api/popular"
	EndPointPodcast    = "/api/podcast"
	EndPointFlashCards = "/api/content/flashcards"
	EndPointFunFacts   = "/api/content/facts"
	EndPointTimeline   = "/api/content/timeline"
	EndPointGraph      = "/api/content/graph"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	log.Info("Starting the knowledge assistant service...")

	// Initialize RAG client and handlers
	ragClient := lightrag.NewClient(cfg.RAGBaseURL, cfg.RAGAPIKey)
	queryHandler := handlers.NewQueryHandler(ragClient)
	popularHandler := handlers.NewPopularHandler(cfg)
	podcastHandler := handlers.NewPodcastHandler(cfg)
	contentHandler := handlers.NewContentHandler()

	// Setup router
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET(EndPointHealth, queryHandler.HealthCheck)

	// Static content endpoints, no rate limit needed
	router.GET(EndPointFlashCards, contentHandler.FlashCards)
	router.GET(EndPointFunFacts, contentHandler.FunFacts)
	router.GET(EndPointTimeline, contentHandler.Timeline)
	router.GET(EndPointGraph, contentHandler.Graph)

	// Rate-limited proxy endpoints
	rateLimited := router.Group("/")
	rateLimited.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute, time.Minute))
	{
		rateLimited.POST(EndPointQuery, queryHandler.Query)
		rateLimited.POST(EndPointEvidence, queryHandler.Evidence)
		rateLimited.GET(EndPointPopular, popularHandler.PopularLabels)
		rateLimited.POST(EndPointPodcast, podcastHandler.GeneratePodcast)
	}

	// Start server
	log.Infof("Knowledge assistant service starting on port %s", cfg.Port)
	log.Infof("RAG backend: %s", cfg.RAGBaseURL)
	log.Infof("Rate limit: %d requests per minute", cfg.RateLimitPerMinute)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
