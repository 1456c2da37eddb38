package feed

// Normalization flattens the four store shapes into Record. Identifier
// aliases are kept as an ordered candidate list rather than collapsed to one
// canonical field: the matcher checks the full cross-product against each
// work item's primary and external IDs.

func aliasIDs(ids ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// NormalizeAnalysis converts a raw analysis row into a Record.
func NormalizeAnalysis(d AnalysisDTO) Record {
	t, _ := ParseFlexibleTime(d.CreatedAt)
	return Record{
		Kind:        KindAnalysis,
		OccurredAt:  t,
		Actor:       d.UserEmail,
		EntityIDs:   aliasIDs(d.JobID, d.RFPID),
		EntityTitle: d.JobTitle,
	}
}

// NormalizeReview converts a raw proposal review into a Record.
func NormalizeReview(d ReviewDTO) Record {
	t, _ := ParseFlexibleTime(d.ReviewedAt)
	return Record{
		Kind:        KindReview,
		OccurredAt:  t,
		Actor:       d.Reviewer,
		EntityIDs:   aliasIDs(d.ItemID, d.ProposalID),
		EntityTitle: d.Title,
	}
}

// NormalizeFOIAAnalysis converts a raw FOIA analysis into a Record.
func NormalizeFOIAAnalysis(d FOIAAnalysisDTO) Record {
	t, _ := ParseFlexibleTime(d.RequestedAt)
	return Record{
		Kind:        KindFOIA,
		OccurredAt:  t,
		Actor:       d.Requester,
		EntityIDs:   aliasIDs(d.RecordID, d.RFPID),
		EntityTitle: d.Subject,
	}
}

// NormalizeChatSession converts a raw chat session into a Record.
func NormalizeChatSession(d ChatSessionDTO) Record {
	t, _ := ParseFlexibleTime(d.StartedAt)
	return Record{
		Kind:        KindChat,
		OccurredAt:  t,
		Actor:       d.UserEmail,
		EntityIDs:   aliasIDs(d.ContextItemID),
		EntityTitle: d.Topic,
	}
}

// NormalizeAnalyses maps a batch of analysis rows.
func NormalizeAnalyses(dtos []AnalysisDTO) []Record {
	records := make([]Record, 0, len(dtos))
	for _, d := range dtos {
		records = append(records, NormalizeAnalysis(d))
	}
	return records
}

// NormalizeReviews maps a batch of review rows.
func NormalizeReviews(dtos []ReviewDTO) []Record {
	records := make([]Record, 0, len(dtos))
	for _, d := range dtos {
		records = append(records, NormalizeReview(d))
	}
	return records
}

// NormalizeFOIAAnalyses maps a batch of FOIA analysis rows.
func NormalizeFOIAAnalyses(dtos []FOIAAnalysisDTO) []Record {
	records := make([]Record, 0, len(dtos))
	for _, d := range dtos {
		records = append(records, NormalizeFOIAAnalysis(d))
	}
	return records
}

// NormalizeChatSessions maps a batch of chat sessions.
func NormalizeChatSessions(dtos []ChatSessionDTO) []Record {
	records := make([]Record, 0, len(dtos))
	for _, d := range dtos {
		records = append(records, NormalizeChatSession(d))
	}
	return records
}
