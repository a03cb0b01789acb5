package models

type SummarizePostRequest struct {
	// DocumentText is the text to summarize. It must not be empty.
	DocumentText string `json:"document_text"`
}

type SummarizePostResponse struct {
	Summary string `json:"summary"`
	// OriginalLength is the length of the submitted text, as counted by the server.
	OriginalLength int `json:"original_length"`
}

// ErrorResponse is returned by the summarization API with any non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
