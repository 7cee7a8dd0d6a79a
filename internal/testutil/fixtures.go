package testutil

import (
	"time"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
)

// SalesDataset is a small store-sales table: an identifier, a right-skewed
// positive revenue, four regions, a unit count and an order date.
func SalesDataset() *dataset.Dataset {
	ids := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}
	revenue := []float64{12, 15, 15, 18, 22, 22, 30, 41, 55, 90, 160, 420}
	regions := []string{"north", "south", "east", "west", "north", "south", "east", "west", "north", "south", "east", "west"}
	units := []float64{1, 2, 2, 3, 3, 4, 5, 5, 6, 8, 12, 20}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, len(ids))
	for i := range dates {
		dates[i] = start.AddDate(0, 0, 7*i)
	}
	return dataset.MustNew("sales",
		dataset.NewIdentifier("id", ids),
		dataset.NewNumeric("revenue", revenue),
		dataset.NewCategorical("region", regions),
		dataset.NewNumeric("units", units),
		dataset.NewTemporal("order date", dates),
	)
}
