package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"knowledge-assistant-service/config"
	"knowledge-assistant-service/lightrag"
	"knowledge-assistant-service/models"
)

func newQueryRouter(ragURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewQueryHandler(lightrag.NewClient(ragURL, ""))
	router := gin.New()
	router.POST("/api/query", handler.Query)
	router.POST("/api/evidence", handler.Evidence)
	router.GET("/health", handler.HealthCheck)
	return router
}

func decodeChunks(t *testing.T, body string) []models.StreamChunk {
	t.Helper()
	var chunks []models.StreamChunk
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if line == "" {
			continue
		}
		var chunk models.StreamChunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			t.Fatalf("invalid chunk line %q: %v", line, err)
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func TestQuery_StreamsChunksToClient(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		for _, line := range []string{
			`{"response":"Plants "}`,
			`{"response":"adapt."}`,
			`{"references":[{"reference_id":"1","file_path":"https://example.org/PMC1"}]}`,
		} {
			w.Write([]byte(line + "\n"))
			flusher.Flush()
		}
	}))
	defer upstream.Close()

	router := newQueryRouter(upstream.URL)

	reqBody, _ := json.Marshal(models.QueryRequest{Prompt: "how do plants adapt?"})
	req := httptest.NewRequest("POST", "/api/query", bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/x-ndjson", w.Header().Get("Content-Type"))

	chunks := decodeChunks(t, w.Body.String())
	assert.Len(t, chunks, 4)

	var text strings.Builder
	for _, chunk := range chunks[:2] {
		text.WriteString(chunk.Response)
	}
	assert.Equal(t, "Plants adapt.", text.String())

	assert.Len(t, chunks[2].References, 1)
	assert.Equal(t, "1", chunks[2].References[0].ReferenceID)

	final := chunks[3]
	assert.True(t, final.Done)
	assert.NotEmpty(t, final.QueryID)
}

func TestQuery_MissingPrompt(t *testing.T) {
	router := newQueryRouter("http://localhost:1")

	req := httptest.NewRequest("POST", "/api/query", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuery_UpstreamFailureYieldsErrorChunk(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	router := newQueryRouter(upstream.URL)

	reqBody, _ := json.Marshal(models.QueryRequest{Prompt: "anything"})
	req := httptest.NewRequest("POST", "/api/query", bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	chunks := decodeChunks(t, w.Body.String())
	assert.Len(t, chunks, 1)
	assert.NotEmpty(t, chunks[0].Error)
}

func TestQuery_MidStreamErrorKeepsDeliveredTokens(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		w.Write([]byte(`{"response":"partial "}` + "\n"))
		flusher.Flush()
		w.Write([]byte(`{"error":"backend exploded"}` + "\n"))
		flusher.Flush()
	}))
	defer upstream.Close()

	router := newQueryRouter(upstream.URL)

	reqBody, _ := json.Marshal(models.QueryRequest{Prompt: "anything"})
	req := httptest.NewRequest("POST", "/api/query", bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	chunks := decodeChunks(t, w.Body.String())
	assert.Len(t, chunks, 2)
	assert.Equal(t, "partial ", chunks[0].Response)
	assert.NotEmpty(t, chunks[1].Error)
}

func TestEvidence_ReturnsCards(t *testing.T) {
	router := newQueryRouter("http://localhost:1")

	reqBody, _ := json.Marshal(models.EvidenceRequest{
		Response: "Bones weaken in orbit [1]. Unrelated sentence.",
		References: []models.Reference{
			{ReferenceID: "1", FilePath: "https://example.org/PMC12345"},
		},
	})
	req := httptest.NewRequest("POST", "/api/evidence", bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.EvidenceResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalCards)
	assert.Equal(t, "PMC12345", resp.Cards[0].PaperTitle)
}

func TestHealthCheck(t *testing.T) {
	router := newQueryRouter("http://localhost:1")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestPopularLabels_ProxiesUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graph/label/popular", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode([]string{"Radiation", "Plants"})
	}))
	defer upstream.Close()

	gin.SetMode(gin.TestMode)
	handler := NewPopularHandler(&config.Config{RAGBaseURL: upstream.URL})
	router := gin.New()
	router.GET("/api/popular", handler.PopularLabels)

	req := httptest.NewRequest("GET", "/api/popular?limit=4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var labels []string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &labels))
	assert.Equal(t, []string{"Radiation", "Plants"}, labels)
}

func TestPopularLabels_FallbackWhenUpstreamDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPopularHandler(&config.Config{RAGBaseURL: "http://localhost:1"})
	router := gin.New()
	router.GET("/api/popular", handler.PopularLabels)

	req := httptest.NewRequest("GET", "/api/popular", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var labels []string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &labels))
	assert.Equal(t, fallbackLabels, labels)
}

func TestGeneratePodcast_NotConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPodcastHandler(&config.Config{})
	router := gin.New()
	router.POST("/api/podcast", handler.GeneratePodcast)

	req := httptest.NewRequest("POST", "/api/podcast", bytes.NewBufferString(`{"topic":"bones"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGeneratePodcast_PassesAudioThrough(t *testing.T) {
	audio := []byte("RIFFfakewavdata")
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req PodcastRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "bones", req.Topic)
		assert.Equal(t, 100, req.MaxWords)
		w.Write(audio)
	}))
	defer upstream.Close()

	gin.SetMode(gin.TestMode)
	handler := NewPodcastHandler(&config.Config{PodcastURL: upstream.URL})
	router := gin.New()
	router.POST("/api/podcast", handler.GeneratePodcast)

	req := httptest.NewRequest("POST", "/api/podcast", bytes.NewBufferString(`{"topic":"bones"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/wav", w.Header().Get("Content-Type"))
	assert.Equal(t, audio, w.Body.Bytes())
}
