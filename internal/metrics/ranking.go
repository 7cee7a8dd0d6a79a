package metrics

import (
	"fmt"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
)

const (
	topMetrics     = 3
	maxAlternative = 5
)

// Ranking is the metric selection shown on a dashboard: the current top
// metrics plus the full ranking they were drawn from.
type Ranking struct {
	Top  []ScoredColumn `json:"top"`
	Full []ScoredColumn `json:"ranking"`
}

// Rank scores ds and returns the resulting selection.
func Rank(ds *dataset.Dataset, domain Domain) *Ranking {
	top, full := Score(ds, domain)
	return &Ranking{Top: top, Full: full}
}

// Alternatives returns ranks 4 to 8 of the full ranking.
func (r *Ranking) Alternatives() []ScoredColumn {
	if len(r.Full) <= topMetrics {
		return nil
	}
	end := topMetrics + maxAlternative
	if end > len(r.Full) {
		end = len(r.Full)
	}
	out := make([]ScoredColumn, end-topMetrics)
	copy(out, r.Full[topMetrics:end])
	return out
}

// Swap replaces the top metric at position pos with alternative alt, both
// zero-based.
func (r *Ranking) Swap(pos, alt int) error {
	if pos < 0 || pos >= len(r.Top) {
		return fmt.Errorf("metric position %d out of range (have %d)", pos+1, len(r.Top))
	}
	alts := r.Alternatives()
	if alt < 0 || alt >= len(alts) {
		return fmt.Errorf("alternative %d out of range (have %d)", alt+1, len(alts))
	}
	r.Top[pos] = alts[alt]
	return nil
}
