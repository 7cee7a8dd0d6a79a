package metrics

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
)

func salesDataset() *dataset.Dataset {
	return dataset.MustNew("sales",
		dataset.NewIdentifier("id", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}),
		dataset.NewNumeric("revenue", []float64{10, 10, 12, 12, 15, 20, 20, 35, 80, 250}),
		dataset.NewCategorical("region", []string{"north", "south", "east", "west", "north", "south", "east", "west", "north", "south"}),
	)
}

func TestSuggestAggregationPriority(t *testing.T) {
	skewed := []float64{1, 2, 2, 3, 50, 7, 7, 9, 1, 100}
	negative := []float64{-1, -2, -3, -4, -5, -6, 1, 2, 3, 4}

	assert.Equal(t, Sum, SuggestAggregation("total_sales", skewed))
	assert.Equal(t, Sum, SuggestAggregation("total_sales", negative))
	assert.Equal(t, Count, SuggestAggregation("customer_id", skewed))
	assert.Equal(t, Mean, SuggestAggregation("conversion_rate", skewed))
	assert.Equal(t, Mean, SuggestAggregation("unitPrice", skewed))

	// identifier wins over the "total" rule
	assert.Equal(t, Count, SuggestAggregation("total_key", skewed))

	constant := make([]float64, 40)
	for i := range constant {
		constant[i] = 3
	}
	assert.Equal(t, Count, SuggestAggregation("units", constant))

	unique := []float64{-1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.Equal(t, Mean, SuggestAggregation("units", unique))

	assert.Equal(t, Sum, SuggestAggregation("units", skewed))
	assert.Equal(t, Mean, SuggestAggregation("delta", []float64{-1, -1, 2, 2, 3, 3, 4, 4, 5, 5}))
}

func TestScoreRevenueEndToEnd(t *testing.T) {
	top, ranking := Score(salesDataset(), nil)
	require.Len(t, ranking, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "revenue", ranking[0].Column)
	assert.Equal(t, Sum, ranking[0].SuggestedAggregation)
	assert.Greater(t, ranking[0].FinalScore, 0.0)
	assert.Greater(t, ranking[0].SkewScore, 0.0)
}

func TestScoreSortedAndTopLength(t *testing.T) {
	ds := dataset.MustNew("mixed",
		dataset.NewNumeric("flat", []float64{10, 10, 10, 10, 10, 11}),
		dataset.NewNumeric("spread", []float64{1, 5, 20, 80, 300, 1200}),
		dataset.NewNumeric("mild", []float64{10, 11, 12, 13, 14, 15}),
		dataset.NewNumeric("short", []float64{1, 2, 3, math.NaN(), math.NaN(), math.NaN()}),
		dataset.NewNumeric("order_number", []float64{1, 2, 3, 4, 5, 6}),
		dataset.NewNumeric("wild", []float64{-3, 40, -2, 90, 1, 700}),
	)
	top, ranking := Score(ds, Domain{})
	require.Len(t, ranking, 4)
	assert.Len(t, top, 3)
	for i := 1; i < len(ranking); i++ {
		assert.GreaterOrEqual(t, ranking[i-1].FinalScore, ranking[i].FinalScore)
	}
	assert.Equal(t, ranking[:3], top)
	for _, sc := range ranking {
		assert.NotEqual(t, "short", sc.Column)
		assert.NotEqual(t, "order number", sc.Column)
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	ds := salesDataset()
	domain, ok := LookupDomain("sales")
	require.True(t, ok)
	top1, full1 := Score(ds, domain)
	top2, full2 := Score(ds, domain)
	assert.Equal(t, top1, top2)
	assert.Equal(t, full1, full2)
}

func TestScoreCleansNamesAndAppliesDomainBoost(t *testing.T) {
	ds := dataset.MustNew("d",
		dataset.NewNumeric("salesAmount", []float64{3, 1, 4, 1, 5, 9, 2, 6}),
	)
	domain, ok := LookupDomain("Sales / Ventes")
	require.True(t, ok)

	_, plain := Score(ds, nil)
	_, boosted := Score(ds, domain)
	require.Len(t, boosted, 1)
	assert.Equal(t, "sales amount", boosted[0].Column)
	assert.Equal(t, 3.5, boosted[0].BusinessRelevanceBoost)
	assert.InDelta(t, plain[0].FinalScore+3.5, boosted[0].FinalScore, 0.0015)
}

func TestScoreEmptyInputs(t *testing.T) {
	top, ranking := Score(nil, nil)
	assert.Empty(t, top)
	assert.NotNil(t, ranking)

	ds := dataset.MustNew("cats", dataset.NewCategorical("region", []string{"a", "b", "c", "d", "e"}))
	top, ranking = Score(ds, nil)
	assert.Empty(t, top)
	assert.Empty(t, ranking)
}

func TestBinnedEntropy(t *testing.T) {
	uniform := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.InDelta(t, math.Log2(10), binnedEntropy(uniform, 10), 1e-9)

	assert.Equal(t, 0.0, binnedEntropy([]float64{4, 4, 4, 4, 4}, 1))

	// two values split evenly carry one bit
	assert.InDelta(t, 1.0, binnedEntropy([]float64{0, 0, 1, 1}, 2), 1e-9)
}

func TestDescribeConstantColumn(t *testing.T) {
	s := describe([]float64{7, 7, 7, 7, 7})
	assert.Equal(t, 0.0, s.skew)
	assert.Equal(t, 0.0, s.kurtosis)
	assert.Equal(t, 0.0, s.cv)
	assert.Equal(t, 0.2, s.uniqueness)
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.0, Quantile(sorted, 0))
	assert.Equal(t, 4.0, Quantile(sorted, 1))
	assert.InDelta(t, 2.5, Quantile(sorted, 0.5), 1e-12)
	assert.Equal(t, 0.0, Quantile(nil, 0.5))
}

func TestRankingAlternativesAndSwap(t *testing.T) {
	var cols []*dataset.Column
	for i := 0; i < 9; i++ {
		vals := make([]float64, 6)
		for j := range vals {
			vals[j] = float64((j + 1) * (i + 1) * (j%2 + 1))
		}
		cols = append(cols, dataset.NewNumeric(string(rune('a'+i))+" metric", vals))
	}
	r := Rank(dataset.MustNew("many", cols...), nil)
	require.Len(t, r.Full, 9)
	alts := r.Alternatives()
	require.Len(t, alts, 5)
	assert.Equal(t, r.Full[3:8], alts)

	require.NoError(t, r.Swap(1, 2))
	assert.Equal(t, alts[2], r.Top[1])
	assert.Error(t, r.Swap(3, 0))
	assert.Error(t, r.Swap(0, 5))

	small := &Ranking{Top: r.Full[:2], Full: r.Full[:2]}
	assert.Empty(t, small.Alternatives())
}

func TestPresetsAreLowercase(t *testing.T) {
	ps := Presets()
	require.NotEmpty(t, ps)
	assert.Equal(t, "General", ps[0].Name)
	for _, p := range ps {
		for k, w := range p.Keywords {
			assert.Equal(t, strings.ToLower(k), k, p.Name)
			assert.Greater(t, w, 0.0)
		}
	}
	_, ok := LookupDomain("no such domain")
	assert.False(t, ok)
	d, ok := LookupDomain("")
	assert.True(t, ok)
	assert.Empty(t, d)
}

func TestDomainMerge(t *testing.T) {
	base := Domain{"sales": 2}
	merged := base.Merge(Domain{"Churn": 1.5, "sales": 1})
	assert.Equal(t, Domain{"sales": 1, "churn": 1.5}, merged)
	assert.Equal(t, Domain{"sales": 2}, base)
	assert.Equal(t, 2.5, merged.Boost("churn and sales"))
}
