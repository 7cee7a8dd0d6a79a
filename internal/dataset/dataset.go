package dataset

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SemanticType is the inferred meaning of a column's values.
type SemanticType string

const (
	Numeric     SemanticType = "numeric"
	Categorical SemanticType = "categorical"
	Temporal    SemanticType = "temporal"
	Identifier  SemanticType = "identifier"
)

// identifierKeywords mark a column as holding row identifiers when any of them
// occurs in its (cleaned) name.
var identifierKeywords = []string{"id", "code", "number", "uuid", "identifier", "reference", "index", "key"}

// Column is a named vector of cells of one semantic type. Empty cells are missing.
type Column struct {
	Name string
	Type SemanticType

	raw   []string
	nums  []float64 // NaN when missing or not numeric
	times []time.Time
}

// NewNumeric builds a numeric column; NaN entries are treated as missing.
func NewNumeric(name string, values []float64) *Column {
	c := &Column{Name: name, Type: Numeric, raw: make([]string, len(values)), nums: make([]float64, len(values))}
	for i, v := range values {
		c.nums[i] = v
		if !math.IsNaN(v) {
			c.raw[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return c
}

// NewCategorical builds a categorical column; empty strings are missing.
func NewCategorical(name string, values []string) *Column {
	return newLabelColumn(name, Categorical, values)
}

// NewIdentifier builds an identifier column. Numeric-looking cells keep their
// parsed value so callers can still count or sort them.
func NewIdentifier(name string, values []string) *Column {
	c := newLabelColumn(name, Identifier, values)
	for i, v := range c.raw {
		if x, ok := parseNumeric(v, ParseOptions{}); ok {
			c.nums[i] = x
		}
	}
	return c
}

// NewTemporal builds a temporal column; zero times are missing.
func NewTemporal(name string, values []time.Time) *Column {
	c := &Column{Name: name, Type: Temporal, raw: make([]string, len(values)), nums: make([]float64, len(values)), times: make([]time.Time, len(values))}
	for i, t := range values {
		c.nums[i] = math.NaN()
		if t.IsZero() {
			continue
		}
		c.times[i] = t
		c.raw[i] = t.Format(time.RFC3339)
	}
	return c
}

func newLabelColumn(name string, typ SemanticType, values []string) *Column {
	c := &Column{Name: name, Type: typ, raw: make([]string, len(values)), nums: make([]float64, len(values))}
	for i, v := range values {
		c.raw[i] = strings.TrimSpace(v)
		c.nums[i] = math.NaN()
	}
	return c
}

// Len returns the number of rows, missing cells included.
func (c *Column) Len() int { return len(c.raw) }

// Missing reports whether row i holds no value.
func (c *Column) Missing(i int) bool {
	switch c.Type {
	case Numeric:
		return math.IsNaN(c.nums[i])
	case Temporal:
		return c.times[i].IsZero()
	default:
		return c.raw[i] == ""
	}
}

// Label returns the display form of row i ("" when missing).
func (c *Column) Label(i int) string {
	if c.Missing(i) {
		return ""
	}
	return c.raw[i]
}

// Float returns the numeric value of row i.
func (c *Column) Float(i int) (float64, bool) {
	v := c.nums[i]
	return v, !math.IsNaN(v)
}

// Time returns the temporal value of row i.
func (c *Column) Time(i int) (time.Time, bool) {
	if c.Type != Temporal {
		return time.Time{}, false
	}
	t := c.times[i]
	return t, !t.IsZero()
}

// Floats returns the non-missing numeric values in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.nums))
	for _, v := range c.nums {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Labels returns the non-missing labels in row order.
func (c *Column) Labels() []string {
	out := make([]string, 0, len(c.raw))
	for i := range c.raw {
		if !c.Missing(i) {
			out = append(out, c.raw[i])
		}
	}
	return out
}

// NonMissing counts rows holding a value.
func (c *Column) NonMissing() int {
	n := 0
	for i := range c.raw {
		if !c.Missing(i) {
			n++
		}
	}
	return n
}

// Distinct counts distinct non-missing values.
func (c *Column) Distinct() int {
	seen := make(map[string]struct{})
	for i := range c.raw {
		if !c.Missing(i) {
			seen[c.raw[i]] = struct{}{}
		}
	}
	return len(seen)
}

func (c *Column) IsNumeric() bool  { return c.Type == Numeric }
func (c *Column) IsTemporal() bool { return c.Type == Temporal }

// renamed returns a shallow copy sharing the value slices.
func (c *Column) renamed(name string) *Column {
	cp := *c
	cp.Name = name
	return &cp
}

// Dataset is an ordered set of equally long columns addressed by name.
type Dataset struct {
	Name  string
	cols  []*Column
	index map[string]int
}

// New assembles a dataset. Column names must be unique and columns equally long.
func New(name string, cols ...*Column) (*Dataset, error) {
	ds := &Dataset{Name: name, index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if c == nil {
			return nil, &ColumnError{Index: i, Reason: "nil column"}
		}
		if _, dup := ds.index[c.Name]; dup {
			return nil, &ColumnError{Index: i, Name: c.Name, Reason: "duplicate column name"}
		}
		if i > 0 && c.Len() != cols[0].Len() {
			return nil, &ColumnError{Index: i, Name: c.Name, Reason: fmt.Sprintf("has %d rows, expected %d", c.Len(), cols[0].Len())}
		}
		ds.index[c.Name] = i
		ds.cols = append(ds.cols, c)
	}
	return ds, nil
}

// MustNew is New for fixtures and tests.
func MustNew(name string, cols ...*Column) *Dataset {
	ds, err := New(name, cols...)
	if err != nil {
		panic(err)
	}
	return ds
}

// Columns returns the columns in declared order.
func (d *Dataset) Columns() []*Column {
	out := make([]*Column, len(d.cols))
	copy(out, d.cols)
	return out
}

// Names returns the column names in declared order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.cols))
	for i, c := range d.cols {
		out[i] = c.Name
	}
	return out
}

// Column looks up a column by exact name.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.cols[i], true
}

// Has reports whether a column with this exact name exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Width is the number of columns.
func (d *Dataset) Width() int { return len(d.cols) }

// Rows is the number of rows.
func (d *Dataset) Rows() int {
	if len(d.cols) == 0 {
		return 0
	}
	return d.cols[0].Len()
}

// NumericNames returns numeric column names in declared order.
func (d *Dataset) NumericNames() []string {
	var out []string
	for _, c := range d.cols {
		if c.IsNumeric() {
			out = append(out, c.Name)
		}
	}
	return out
}

// Normalized returns a copy whose column names went through CleanName.
// Names that collide after cleaning get a numeric suffix.
func (d *Dataset) Normalized() *Dataset {
	out := &Dataset{Name: d.Name, index: make(map[string]int, len(d.cols))}
	for i, c := range d.cols {
		name := CleanName(c.Name)
		if name == "" {
			name = fmt.Sprintf("column %d", i+1)
		}
		base := name
		for n := 2; ; n++ {
			if _, dup := out.index[name]; !dup {
				break
			}
			name = fmt.Sprintf("%s %d", base, n)
		}
		out.index[name] = i
		out.cols = append(out.cols, c.renamed(name))
	}
	return out
}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// CleanName lowercases a column name, splitting camelCase boundaries and
// replacing underscores with spaces.
func CleanName(name string) string {
	s := camelBoundary.ReplaceAllString(name, "$1 $2")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.TrimSpace(strings.ToLower(s))
}

// IsIdentifierName reports whether a name suggests row identifiers rather than
// measurable quantities. It is a substring test on the lowercased name.
func IsIdentifierName(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range identifierKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
