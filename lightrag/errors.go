package lightrag

import "fmt"

// TransportError reports a failure to reach the RAG backend or a
// non-success status, before any chunk was processed.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lightrag transport: %v", e.Err)
	}
	return fmt.Sprintf("lightrag returned status %d", e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StreamError reports an error chunk received mid-stream. Tokens and
// references delivered before it are not retracted.
type StreamError struct {
	Message string
}

func (e *StreamError) Error() string {
	return "lightrag stream: " + e.Message
}
