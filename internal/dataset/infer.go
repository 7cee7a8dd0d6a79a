package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseOptions controls numeric parsing of text cells.
type ParseOptions struct {
	// If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune
}

var timeLayouts = []string{
	time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
	"2006-01",
}

// identifierTokens are matched word-by-word during inference, so "paid" or
// "width" stay numeric while "customer id" becomes an identifier.
var identifierTokens = map[string]bool{
	"id": true, "uuid": true, "identifier": true, "key": true, "code": true,
	"index": true, "reference": true, "ref": true, "number": true,
}

// InferColumn parses raw text cells and picks the predominant semantic type.
func InferColumn(name string, cells []string, opt ParseOptions) *Column {
	var numCnt, dtCnt, txtCnt int
	nums := make([]float64, len(cells))
	times := make([]time.Time, len(cells))
	raw := make([]string, len(cells))
	for i, cell := range cells {
		v := strings.TrimSpace(cell)
		raw[i] = v
		nums[i] = math.NaN()
		if v == "" {
			continue
		}
		if x, ok := parseNumeric(v, opt); ok {
			nums[i] = x
			numCnt++
			continue
		}
		if t, ok := parseTimeMaybe(v); ok {
			times[i] = t
			dtCnt++
			continue
		}
		txtCnt++
	}

	c := &Column{Name: name, raw: raw, nums: nums}
	switch {
	case looksLikeIdentifier(name):
		c.Type = Identifier
	case numCnt > 0 && numCnt >= dtCnt && numCnt >= txtCnt:
		c.Type = Numeric
		// cells that did not parse count as missing
		for i := range raw {
			if math.IsNaN(nums[i]) {
				raw[i] = ""
			}
		}
	case dtCnt > 0 && dtCnt >= txtCnt:
		c.Type = Temporal
		c.times = times
		for i := range raw {
			if times[i].IsZero() {
				raw[i] = ""
			}
		}
	default:
		c.Type = Categorical
	}
	return c
}

// FromRecords builds a dataset from a header row and string rows, inferring
// column types. Short rows are padded with missing cells.
func FromRecords(name string, header []string, rows [][]string, opt ParseOptions) (*Dataset, error) {
	if len(header) == 0 {
		return nil, ErrEmpty
	}
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		n := strings.TrimSpace(h)
		if n == "" {
			n = fmt.Sprintf("column %d", i+1)
		}
		if k := seen[n]; k > 0 {
			seen[n] = k + 1
			n = fmt.Sprintf("%s_%d", n, k+1)
		} else {
			seen[n] = 1
		}
		names[i] = n
	}
	cols := make([]*Column, len(names))
	for j, n := range names {
		cells := make([]string, len(rows))
		for i, rec := range rows {
			if j < len(rec) {
				cells[i] = rec[j]
			}
		}
		cols[j] = InferColumn(n, cells, opt)
	}
	return New(name, cols...)
}

func looksLikeIdentifier(name string) bool {
	for _, tok := range strings.Fields(CleanName(name)) {
		if identifierTokens[tok] {
			return true
		}
	}
	return false
}

func parseTimeMaybe(s string) (time.Time, bool) {
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseNumeric(s string, opt ParseOptions) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		if cpos >= 0 && dpos >= 0 {
			if cpos > dpos {
				dec = ','
				thou = '.'
			} else {
				dec = '.'
				thou = ','
			}
		} else if cpos >= 0 {
			dec = ','
		} else {
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
