package domain

import "time"

// Question is a known customer question in the support corpus.
// Its Text is immutable once indexed; edits require a rebuild.
type Question struct {
	// ID is the unique identifier for the question.
	ID int64

	// Text is the question as the customer asked it.
	Text string

	// ProductRef is the product (item number) the question is about.
	ProductRef int64

	// Category is the catalog category of ProductRef, if known.
	Category string

	// CreatedAt is when the question was stored.
	CreatedAt time.Time
}

// Answer is a response to a Question.
// Each question has exactly one primary answer; all others are
// additional-info answers that compete for relevance via upvotes.
type Answer struct {
	// ID is the unique identifier for the answer.
	ID int64

	// QuestionID links to the answered Question.
	QuestionID int64

	// Text is the answer body.
	Text string

	// IsPrimary marks the canonical answer.
	IsPrimary bool

	// Upvotes is the community vote count. Never negative.
	Upvotes int
}

// QARecord is a validated question with its answers, ready to be
// written to the repository in one atomic operation.
type QARecord struct {
	// ProductRef is the product the question belongs to.
	ProductRef int64

	// Question is the question text.
	Question string

	// PrimaryAnswer is the canonical answer text.
	PrimaryAnswer string

	// AdditionalAnswers are supplementary answer texts.
	AdditionalAnswers []string
}

// CorpusSnapshot is the exact ordered sequence fed into vectorization.
// Texts[i] always corresponds to QuestionIDs[i].
type CorpusSnapshot struct {
	QuestionIDs []int64
	Texts       []string
}

// NewCorpusSnapshot builds an aligned snapshot from questions in order.
func NewCorpusSnapshot(questions []Question) CorpusSnapshot {
	snap := CorpusSnapshot{
		QuestionIDs: make([]int64, len(questions)),
		Texts:       make([]string, len(questions)),
	}
	for i, q := range questions {
		snap.QuestionIDs[i] = q.ID
		snap.Texts[i] = q.Text
	}
	return snap
}

// Len returns the number of rows in the snapshot.
func (s CorpusSnapshot) Len() int {
	return len(s.QuestionIDs)
}

// Empty reports whether the snapshot holds no questions.
func (s CorpusSnapshot) Empty() bool {
	return len(s.QuestionIDs) == 0
}
