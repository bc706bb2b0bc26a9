// Package transport defines DTOs for search suggestions.
package transport

// SuggestionsQuery is the typeahead request.
type SuggestionsQuery struct {
	Q     string `form:"q" validate:"required,min=2,max=100"`
	Limit int    `form:"limit" validate:"omitempty,min=1,max=25"`
}

// SuggestionResponse is one typeahead hit.
type SuggestionResponse struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}
