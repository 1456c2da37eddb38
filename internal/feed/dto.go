package feed

// The four stores grew independently and never agreed on field names: each
// carries the work-item foreign key under a different alias, and timestamps
// arrive as ISO strings, epoch millis, or structured seconds objects
// depending on which backend wrote the row. The DTOs keep the raw shapes;
// normalize.go flattens them.

// AnalysisDTO is one primary résumé/RFP analysis result.
type AnalysisDTO struct {
	CreatedAt any    `json:"createdAt"`
	UserEmail string `json:"userEmail"`
	JobID     string `json:"jobId,omitempty"`
	RFPID     string `json:"rfpId,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
}

// ReviewDTO is one proposal review.
type ReviewDTO struct {
	ReviewedAt any    `json:"reviewedAt"`
	Reviewer   string `json:"reviewer"`
	ItemID     string `json:"itemId,omitempty"`
	ProposalID string `json:"proposalId,omitempty"`
	Title      string `json:"title,omitempty"`
}

// FOIAAnalysisDTO is one FOIA-request analysis.
type FOIAAnalysisDTO struct {
	RequestedAt any    `json:"requestedAt"`
	Requester   string `json:"requester"`
	RecordID    string `json:"recordId,omitempty"`
	RFPID       string `json:"rfpId,omitempty"`
	Subject     string `json:"subject,omitempty"`
}

// ChatSessionDTO is one assistant chat session opened against an item.
type ChatSessionDTO struct {
	StartedAt     any    `json:"startedAt"`
	UserEmail     string `json:"userEmail"`
	ContextItemID string `json:"contextItemId,omitempty"`
	Topic         string `json:"topic,omitempty"`
}
