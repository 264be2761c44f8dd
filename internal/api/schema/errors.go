package schema

// ErrorResponse represents the response structure sent whenever a request fails.
// Messages is only populated for validation failures and maps field names to
// their human-readable error messages.
type ErrorResponse struct {
	Error    string              `json:"error"`
	Messages map[string][]string `json:"messages,omitempty"`
}
