package dtos

// JobExtractionRequest carries raw posting text/HTML for LLM prefill.
type JobExtractionRequest struct {
	RawContent string `json:"raw_content" binding:"required"`
	URL        string `json:"url"`
}

// JobCreationRequest is the add-job form payload. Company and role are the
// only required fields; everything else gets a safe default.
type JobCreationRequest struct {
	Company string `json:"company" binding:"required"`
	Role    string `json:"role" binding:"required"`

	// Optional fields
	Location    string   `json:"location"`
	AppliedDate string   `json:"applied_date"` // YYYY-MM-DD, defaults to today
	Status      string   `json:"status"`       // defaults to "Wishlist"
	Notes       string   `json:"notes"`
	Tags        []string `json:"tags"`

	// Set to skip the same-company-same-role duplicate check.
	AllowDuplicate bool `json:"allow_duplicate"`
}

// JobUpdateRequest edits the editable fields of an existing job. Pointer
// fields distinguish "leave alone" from "set to empty".
type JobUpdateRequest struct {
	Company     *string `json:"company"`
	Role        *string `json:"role"`
	Location    *string `json:"location"`
	AppliedDate *string `json:"applied_date"`
	Notes       *string `json:"notes"`
}

// StatusChangeRequest moves a job to another lifecycle stage.
type StatusChangeRequest struct {
	Status string `json:"status" binding:"required"`
}

// TagRequest adds one tag to a job.
type TagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// FeedbackRequest attaches a structured feedback note, usually after a
// rejection.
type FeedbackRequest struct {
	Text         string `json:"text" binding:"required"`
	Learnings    string `json:"learnings"`
	ThankYouNote string `json:"thank_you_note"`
}

// BoardCreationRequest names a new board.
type BoardCreationRequest struct {
	Name string `json:"name" binding:"required"`
}
