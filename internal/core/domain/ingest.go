package domain

// IngestRecord is a candidate Q&A pair produced by manual entry or
// transcript parsing. ProductRef is kept as raw text because the
// source may contain anything; validation happens at ingestion.
type IngestRecord struct {
	// ProductRef is the product item number as entered.
	ProductRef string

	// QuestionText is the customer's question.
	QuestionText string

	// AnswerText becomes the primary answer.
	AnswerText string

	// AdditionalAnswers become additional-info answers.
	AdditionalAnswers []string

	// Origin describes where the record came from, e.g. a file path and line.
	Origin string
}

// IngestReport summarises a batch ingestion.
type IngestReport struct {
	// Accepted holds the question ids of stored records, in batch order.
	Accepted []int64

	// Rejected holds one entry per record that was not stored.
	Rejected []RecordError
}

// Total returns the number of records processed.
func (r IngestReport) Total() int {
	return len(r.Accepted) + len(r.Rejected)
}
