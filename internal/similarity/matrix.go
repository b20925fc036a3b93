package similarity

import "github.com/dmitrijs2005/docsim/internal/models"

// PairKey identifies an unordered pair of documents. Low is always the
// smaller ID.
type PairKey struct {
	Low  int64
	High int64
}

func NewPairKey(a, b int64) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Low: a, High: b}
}

// Matrix maps document pairs to similarity percentages.
type Matrix map[PairKey]float64

// Get looks up the score of a and b in either order.
func (m Matrix) Get(a, b int64) (float64, bool) {
	v, ok := m[NewPairKey(a, b)]
	return v, ok
}

// Pairwise scores every pair (i, j), i < j, of docs. nil entries are
// skipped, and IDs are expected to be distinct, so n documents yield
// n*(n-1)/2 entries.
//
// Cost is O(n²) pairs at O(Li*Lj) each, O(n²·L²) overall for n documents of
// average length L. Callers with large corpora should bound n or use an
// Engine with workers.
func Pairwise(docs []*models.Document) Matrix {
	docs = compact(docs)
	m := make(Matrix, len(docs)*(len(docs)-1)/2)

	for i := 0; i < len(docs); i++ {
		for j := i + 1; j < len(docs); j++ {
			m[NewPairKey(docs[i].ID, docs[j].ID)] = Similarity(docs[i].Content, docs[j].Content)
		}
	}
	return m
}

func compact(docs []*models.Document) []*models.Document {
	out := make([]*models.Document, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}
