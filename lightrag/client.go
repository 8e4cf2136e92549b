// Package lightrag provides the streaming query client for the remote
// LightRAG backend.
package lightrag

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"

	"knowledge-assistant-service/models"
)

// Client talks to the /query/stream endpoint of a LightRAG deployment.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a client for the given backend. An empty API key is
// simply not sent.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:9621"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 300 * time.Second, // Longer timeout for streaming
		},
	}
}

// queryStreamRequest is the outbound body of a streamed query.
type queryStreamRequest struct {
	Query               string            `json:"query"`
	ConversationHistory []models.ChatTurn `json:"conversation_history,omitempty"`
	Stream              bool              `json:"stream"`
}

// Options control one SendMessage call.
type Options struct {
	// OnToken is invoked once per chunk carrying non-empty answer text, in
	// arrival order, synchronously before the next network read. Returning
	// a non-nil error aborts the stream.
	OnToken func(token string) error

	// History is the prior conversation. Only user turns with non-blank
	// content are sent upstream.
	History []models.ChatTurn
}

// SendMessage submits prompt and consumes the newline-delimited JSON chunk
// stream of the answer. It returns the trimmed concatenation of every
// response fragment plus the first non-empty reference list seen.
//
// Cancellation goes through ctx: the returned error then wraps
// context.Canceled, distinguishable from *TransportError and *StreamError.
// The intended usage is at most one active stream per conversation; callers
// resending on the same conversation should cancel the prior call first,
// this is not enforced here.
func (c *Client) SendMessage(ctx context.Context, prompt string, opts Options) (models.QueryResult, error) {
	reqBody := queryStreamRequest{
		Query:               prompt,
		ConversationHistory: userTurns(opts.History),
		Stream:              true,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return models.QueryResult{}, &TransportError{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/query/stream", bytes.NewReader(jsonData))
	if err != nil {
		return models.QueryResult{}, &TransportError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("ngrok-skip-browser-warning", "true")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return models.QueryResult{}, fmt.Errorf("query cancelled: %w", ctx.Err())
		}
		return models.QueryResult{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.QueryResult{}, &TransportError{Status: resp.StatusCode}
	}
	if resp.Body == http.NoBody {
		return models.QueryResult{}, &TransportError{Err: fmt.Errorf("empty response body")}
	}

	var (
		decoder textDecoder
		buffer  string
		message strings.Builder
		refs    []models.Reference
		refsSet bool
	)

	processLine := func(line string) error {
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		var chunk models.StreamChunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			// One corrupt line must not abort the stream.
			log.Warnf("skipping malformed stream line (%d bytes): %v", len(line), err)
			return nil
		}
		if chunk.Error != "" {
			return &StreamError{Message: chunk.Error}
		}
		if chunk.Response != "" {
			message.WriteString(chunk.Response)
			if opts.OnToken != nil {
				if err := opts.OnToken(chunk.Response); err != nil {
					return fmt.Errorf("token callback: %w", err)
				}
			}
		}
		if !refsSet && len(chunk.References) > 0 {
			refs = chunk.References
			refsSet = true
		}
		return nil
	}

	buf := make([]byte, 4096)
	for {
		if err := ctx.Err(); err != nil {
			return models.QueryResult{}, fmt.Errorf("query cancelled: %w", err)
		}

		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			buffer += decoder.Write(buf[:n])
			for {
				idx := strings.IndexByte(buffer, '\n')
				if idx < 0 {
					break
				}
				line := buffer[:idx]
				buffer = buffer[idx+1:]
				if err := processLine(line); err != nil {
					return models.QueryResult{}, err
				}
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			if ctx.Err() != nil {
				return models.QueryResult{}, fmt.Errorf("query cancelled: %w", ctx.Err())
			}
			return models.QueryResult{}, &TransportError{Err: readErr}
		}
	}

	// The final chunk may lack a trailing newline.
	buffer += decoder.Flush()
	if err := processLine(buffer); err != nil {
		return models.QueryResult{}, err
	}

	if !refsSet {
		refs = []models.Reference{}
	}
	return models.QueryResult{
		Message:    strings.TrimSpace(message.String()),
		References: refs,
	}, nil
}

// userTurns keeps only prior user turns with non-blank content.
func userTurns(history []models.ChatTurn) []models.ChatTurn {
	var out []models.ChatTurn
	for _, turn := range history {
		if turn.Role == models.RoleUser && strings.TrimSpace(turn.Content) != "" {
			out = append(out, turn)
		}
	}
	return out
}
