package models

// Roles used in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one prior turn of a conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QueryRequest represents the incoming request for a streamed answer.
type QueryRequest struct {
	Prompt              string     `json:"prompt" binding:"required"`
	ConversationHistory []ChatTurn `json:"conversation_history,omitempty"`
}

// StreamChunk is one decoded JSON object of a streaming response. The same
// shape is consumed from the RAG backend and re-streamed to the browser.
// Any subset of fields may be present in a given chunk.
type StreamChunk struct {
	Response   string      `json:"response,omitempty"`
	References []Reference `json:"references,omitempty"`
	Error      string      `json:"error,omitempty"`
	Done       bool        `json:"done,omitempty"`
	QueryID    string      `json:"query_id,omitempty"`
}

// Reference identifies one cited source document.
type Reference struct {
	ReferenceID string `json:"reference_id"`
	FilePath    string `json:"file_path"`
	Title       string `json:"title,omitempty"`
	Source      string `json:"source,omitempty"`
}

// QueryResult is the finalized output of one streamed query: the full
// concatenated answer plus the reference list that arrived with it.
type QueryResult struct {
	Message    string      `json:"message"`
	References []Reference `json:"references"`
}

// EvidenceRequest pairs a final answer with its reference list.
type EvidenceRequest struct {
	Response         string      `json:"response"`
	References       []Reference `json:"references"`
	IncludeUnmatched bool        `json:"include_unmatched"`
}

// EvidenceSnippet is one cleaned sentence attributable to a reference.
type EvidenceSnippet struct {
	Text string `json:"text"`
}

// Linkouts carries the outbound links of an evidence card.
type Linkouts struct {
	SourceURL string `json:"source_url"`
}

// EvidenceCard bundles the cleaned sentences of the answer that cite one
// reference.
type EvidenceCard struct {
	PaperID      string            `json:"paper_id"`
	PaperTitle   string            `json:"paper_title"`
	SnippetCount int               `json:"snippet_count"`
	Snippets     []EvidenceSnippet `json:"snippets"`
	Linkouts     Linkouts          `json:"linkouts"`
}

// EvidenceResponse is the full card set for one answer.
type EvidenceResponse struct {
	TotalCards int            `json:"total_cards"`
	Cards      []EvidenceCard `json:"cards"`
}
