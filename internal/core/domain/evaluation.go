package domain

// LabeledQuery is one entry of the evaluation set: a free-text query and
// the URLs known to be relevant for it.
type LabeledQuery struct {
	Query        string
	RelevantURLs []string
}

// QueryRecall is the evaluation outcome for a single labeled query.
type QueryRecall struct {
	// Query is the evaluated query text.
	Query string

	// TruthCount is the number of distinct relevant URLs after
	// normalisation.
	TruthCount int

	// Recall is hits-in-top-K divided by max(1, TruthCount).
	Recall float64
}

// EvalReport aggregates Recall@K over a labeled query set.
type EvalReport struct {
	// K is the retrieval depth used for every query.
	K int

	// Queries holds per-query results, sorted by ascending recall so the
	// worst queries surface first.
	Queries []QueryRecall

	// MeanRecall is the unweighted mean over Queries.
	MeanRecall float64
}
