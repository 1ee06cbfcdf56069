package domain

// QueryOptions configures a retrieval query.
type QueryOptions struct {
	// Category restricts results to products in the named category.
	// Empty means all categories. Applied after ranking.
	Category string

	// Threshold overrides the configured similarity threshold for this
	// query. Nil means use the configured value. Must lie in [0,1).
	Threshold *float64
}

// RowScore is the similarity of a query against one corpus row.
type RowScore struct {
	// Row is the index of the row in the corpus matrix.
	Row int

	// Similarity is the cosine similarity in [0,1].
	Similarity float64
}

// Match is a ranked corpus question.
type Match struct {
	// QuestionID identifies the matched question.
	QuestionID int64

	// Row is the question's position in the corpus snapshot.
	Row int

	// Similarity is the cosine similarity in [0,1].
	Similarity float64
}

// RankedResult is a fully hydrated retrieval hit handed to presentation.
type RankedResult struct {
	// Question is the matched question.
	Question Question

	// PrimaryAnswer is the canonical answer, nil if none is stored.
	PrimaryAnswer *Answer

	// AdditionalAnswers are ordered by upvotes descending, then id ascending.
	AdditionalAnswers []Answer

	// Similarity is the cosine similarity in [0,1].
	Similarity float64
}

// ResultPage is a window over a session's retained ranking.
type ResultPage struct {
	// Results are the results in this window.
	Results []RankedResult

	// Offset is the zero-based rank of the first result in the window.
	Offset int

	// Total is the size of the full retained ranking.
	Total int
}

// HasMore reports whether further pages follow this one.
func (p ResultPage) HasMore() bool {
	return p.Offset+len(p.Results) < p.Total
}

// IndexStats describes the currently built corpus model.
type IndexStats struct {
	// Questions is the number of indexed questions.
	Questions int

	// Terms is the vocabulary size.
	Terms int

	// Generation increases on every successful rebuild.
	Generation uint64

	// Empty is true when there was no data to build from.
	Empty bool
}
