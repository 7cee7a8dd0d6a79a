package metrics

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
)

// MetricCard is the aggregated value of one top metric, ready for display.
type MetricCard struct {
	Column      string      `json:"column"`
	Aggregation Aggregation `json:"aggregation"`
	Value       float64     `json:"value"`
	Formatted   string      `json:"formatted"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
}

var printer = message.NewPrinter(language.English)

// Card computes the card for a scored column. The column is looked up by its
// cleaned name; ok is false when ds has no such column.
func Card(ds *dataset.Dataset, sc ScoredColumn) (MetricCard, bool) {
	c, found := ds.Normalized().Column(sc.Column)
	if !found {
		return MetricCard{}, false
	}
	card := MetricCard{
		Column:      sc.Column,
		Aggregation: sc.SuggestedAggregation,
		Label:       aggTitle(sc.SuggestedAggregation) + " of " + sc.Column,
	}
	values := c.Floats()
	switch sc.SuggestedAggregation {
	case Mean:
		if len(values) > 0 {
			card.Value = stat.Mean(values, nil)
		}
		card.Formatted = FormatValue(card.Value, false)
		card.Description = printer.Sprintf("Average value across %d records", ds.Rows())
	case Sum:
		card.Value = floats.Sum(values)
		card.Formatted = FormatValue(card.Value, false)
		card.Description = printer.Sprintf("Total sum across %d records", ds.Rows())
	case Count:
		card.Value = float64(c.Distinct())
		card.Formatted = FormatValue(card.Value, true)
		card.Description = "Number of unique values"
	default:
		return MetricCard{}, false
	}
	return card, true
}

// Cards computes cards for each scored column that still exists in ds.
func Cards(ds *dataset.Dataset, scored []ScoredColumn) []MetricCard {
	out := make([]MetricCard, 0, len(scored))
	for _, sc := range scored {
		if card, ok := Card(ds, sc); ok {
			out = append(out, card)
		}
	}
	return out
}

// FormatValue abbreviates millions and thousands by magnitude (1.2M, -3.4K).
// Smaller values print with two decimals, or as integers when integral is set.
func FormatValue(v float64, integral bool) string {
	a := math.Abs(v)
	switch {
	case a >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 1, 64) + "M"
	case a >= 1e3:
		return strconv.FormatFloat(v/1e3, 'f', 1, 64) + "K"
	case integral:
		return strconv.FormatInt(int64(v), 10)
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

func aggTitle(a Aggregation) string {
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:])
}
