// Package metrics ranks numeric columns by statistical interestingness and
// suggests how each should be aggregated on a dashboard card.
package metrics

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
)

// Aggregation is the suggested reduction for a metric column.
type Aggregation string

const (
	Mean  Aggregation = "mean"
	Sum   Aggregation = "sum"
	Count Aggregation = "count"
)

// Thresholds used by SuggestAggregation.
const (
	LowUniqueRatio  = 0.05
	HighUniqueRatio = 0.95
	PositiveShare   = 0.9
)

// MinValues is the number of non-missing values a column needs to be scored.
const MinValues = 5

const maxEntropyBins = 10

// Sub-score weights.
const (
	weightCV         = 1.5
	weightSkew       = 1.2
	weightKurtosis   = 1.0
	weightEntropy    = 0.8
	weightUniqueness = 0.7
	weightOutlier    = 0.6
)

var (
	sumHints  = []string{"total", "sum"}
	rateHints = []string{"rate"}
	meanHints = []string{"age", "price", "rating", "score", "percent"}
)

// ScoredColumn is one row of the significance ranking. Sub-scores hold the
// weighted contribution of each statistic, rounded to 3 decimals.
type ScoredColumn struct {
	Column                 string      `json:"Column"`
	CVScore                float64     `json:"CV_Score"`
	SkewScore              float64     `json:"Skew_Score"`
	KurtosisScore          float64     `json:"Kurtosis_Score"`
	EntropyScore           float64     `json:"Entropy_Score"`
	UniquenessScore        float64     `json:"Uniqueness_Score"`
	OutlierScore           float64     `json:"Outlier_Score"`
	BusinessRelevanceBoost float64     `json:"Business_Relevance_Boost"`
	FinalScore             float64     `json:"Final_Score"`
	SuggestedAggregation   Aggregation `json:"Suggested_Aggregation"`
}

// Score ranks the numeric, non-identifier columns of ds that hold at least
// MinValues values. It returns the top three and the full ranking, both sorted
// by FinalScore descending; ties keep column order.
func Score(ds *dataset.Dataset, domain Domain) (top []ScoredColumn, ranking []ScoredColumn) {
	ranking = []ScoredColumn{}
	if ds == nil {
		return []ScoredColumn{}, ranking
	}
	for _, c := range ds.Normalized().Columns() {
		if !c.IsNumeric() || dataset.IsIdentifierName(c.Name) {
			continue
		}
		values := c.Floats()
		if len(values) < MinValues {
			continue
		}
		ranking = append(ranking, scoreColumn(c.Name, values, domain))
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].FinalScore > ranking[j].FinalScore
	})
	n := len(ranking)
	if n > 3 {
		n = 3
	}
	top = make([]ScoredColumn, n)
	copy(top, ranking[:n])
	return top, ranking
}

func scoreColumn(name string, values []float64, domain Domain) ScoredColumn {
	s := describe(values)

	normCV := math.Tanh(s.cv)
	normSkew := math.Tanh(s.skew / 10)
	normKurt := math.Tanh(s.kurtosis / 15)
	normEnt := s.entropy / math.Log2(float64(s.distinct)+1)
	normUniq := math.Sqrt(s.uniqueness)
	normOut := s.outlierRate

	score := weightCV*normCV +
		weightSkew*normSkew +
		weightKurtosis*normKurt +
		weightEntropy*normEnt +
		weightUniqueness*normUniq +
		weightOutlier*normOut
	boost := domain.Boost(name)
	score += boost

	return ScoredColumn{
		Column:                 name,
		CVScore:                round3(weightCV * normCV),
		SkewScore:              round3(weightSkew * normSkew),
		KurtosisScore:          round3(weightKurtosis * normKurt),
		EntropyScore:           round3(weightEntropy * normEnt),
		UniquenessScore:        round3(weightUniqueness * normUniq),
		OutlierScore:           round3(weightOutlier * normOut),
		BusinessRelevanceBoost: boost,
		FinalScore:             round3(score),
		SuggestedAggregation:   SuggestAggregation(name, values),
	}
}

type summary struct {
	cv          float64
	skew        float64 // absolute
	kurtosis    float64 // absolute excess
	entropy     float64 // bits
	distinct    int
	uniqueness  float64
	outlierRate float64
}

func describe(values []float64) summary {
	mean := stat.Mean(values, nil)
	std := stat.StdDev(values, nil)

	var s summary
	if mean != 0 {
		s.cv = std / mean
	}
	m2 := stat.Moment(2, values, nil)
	eps := 1e-15 * mean
	if m2 > eps*eps {
		s.skew = math.Abs(stat.Moment(3, values, nil) / math.Pow(m2, 1.5))
		s.kurtosis = math.Abs(stat.Moment(4, values, nil)/(m2*m2) - 3)
	}
	s.distinct = distinct(values)
	s.uniqueness = float64(s.distinct) / float64(len(values))
	s.entropy = binnedEntropy(values, s.distinct)

	limit := mean + 3*std
	var over int
	for _, v := range values {
		if v > limit {
			over++
		}
	}
	s.outlierRate = clamp01(float64(over) / float64(len(values)))
	return s
}

// binnedEntropy splits values into up to 10 quantile bins, merging bins whose
// edges coincide, and returns the Shannon entropy (base 2) of the bin shares.
func binnedEntropy(values []float64, nDistinct int) float64 {
	q := nDistinct
	if q > maxEntropyBins {
		q = maxEntropyBins
	}
	if q < 2 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	edges := make([]float64, 0, q+1)
	for i := 0; i <= q; i++ {
		e := Quantile(sorted, float64(i)/float64(q))
		if len(edges) == 0 || e != edges[len(edges)-1] {
			edges = append(edges, e)
		}
	}
	if len(edges) < 2 {
		return 0
	}
	// bins are (e[i], e[i+1]] with the lowest edge included in the first bin
	upper := edges[1:]
	counts := make([]float64, len(upper))
	for _, v := range values {
		i := sort.SearchFloat64s(upper, v)
		if i >= len(counts) {
			i = len(counts) - 1
		}
		counts[i]++
	}
	for i := range counts {
		counts[i] /= float64(len(values))
	}
	return stat.Entropy(counts) / math.Ln2
}

// SuggestAggregation picks mean, sum or count for a column. Rules apply in
// order and the first match wins.
func SuggestAggregation(name string, values []float64) Aggregation {
	clean := dataset.CleanName(name)
	switch {
	case dataset.IsIdentifierName(clean):
		return Count
	case containsAny(clean, sumHints):
		return Sum
	case containsAny(clean, rateHints):
		return Mean
	case containsAny(clean, meanHints):
		return Mean
	}
	if len(values) == 0 {
		return Mean
	}
	ratio := float64(distinct(values)) / float64(len(values))
	switch {
	case ratio < LowUniqueRatio:
		return Count
	case ratio > HighUniqueRatio:
		return Mean
	}
	var positive int
	for _, v := range values {
		if v > 0 {
			positive++
		}
	}
	if float64(positive)/float64(len(values)) > PositiveShare {
		return Sum
	}
	return Mean
}

// Quantile returns the q-quantile of sorted values using linear interpolation
// between closest ranks.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func distinct(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
