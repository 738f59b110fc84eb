package domain

// RecommendOptions configures a recommendation query.
type RecommendOptions struct {
	// TopK is the maximum number of results. Zero or negative values
	// fall back to DefaultTopK.
	TopK int
}

// DefaultTopK is the number of results returned when the caller does not
// ask for a specific K.
const DefaultTopK = 10

// Recommendation is a single ranked result: a catalog entry together with
// its similarity to the query.
type Recommendation struct {
	// Assessment is the matched catalog entry.
	Assessment Assessment

	// Similarity is the cosine similarity between the query embedding and
	// the entry's embedding. Higher is closer.
	Similarity float64
}
