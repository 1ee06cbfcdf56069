package services

import (
	"sort"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// Score computes the cosine similarity of query against every row of matrix.
// Rows and query are expected to be L2-normalised; non-normalised input is
// handled by dividing through the norms. A zero vector on either side scores 0.
func Score(query domain.Vector, matrix []domain.Vector) []domain.RowScore {
	scores := make([]domain.RowScore, len(matrix))
	qn := query.Norm()
	for i, row := range matrix {
		scores[i] = domain.RowScore{Row: i, Similarity: cosine(query, qn, row)}
	}
	return scores
}

func cosine(q domain.Vector, qn float64, row domain.Vector) float64 {
	rn := row.Norm()
	if qn == 0 || rn == 0 {
		return 0
	}
	s := q.Dot(row) / (qn * rn)
	// Clamp rounding drift.
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	}
	return s
}

// Rank keeps the scores strictly above threshold and orders them by
// similarity descending. Equal scores keep corpus order, so ties resolve
// to the lower row index. questionIDs maps rows to question ids.
func Rank(scores []domain.RowScore, threshold float64, questionIDs []int64) []domain.Match {
	matches := make([]domain.Match, 0)
	for _, s := range scores {
		if s.Similarity <= threshold {
			continue
		}
		if s.Row < 0 || s.Row >= len(questionIDs) {
			continue
		}
		matches = append(matches, domain.Match{
			QuestionID: questionIDs[s.Row],
			Row:        s.Row,
			Similarity: s.Similarity,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Row < matches[j].Row
	})
	return matches
}
