package recommend

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
)

// BoardSize is the number of recommendations shown on a board.
const BoardSize = 5

const maxAlternatives = 5

// poolSize is how many of the best candidates of each type compete for the
// board; alternatives start right after the pool.
var poolSize = map[Type]int{
	TypeColumn:  2,
	TypePair:    2,
	TypeTriple:  1,
	TypeGroupBy: 1,
}

// Board is the balanced selection of recommendations plus, per type, the
// alternatives a user may swap in.
type Board struct {
	Items        []Descriptor          `json:"items"`
	Alternatives map[Type][]Descriptor `json:"alternatives"`

	ds       *dataset.Dataset
	resolver *Resolver
}

// NewBoard picks BoardSize recommendations from scored candidates: the best of
// each type first, then the highest scores, then copies of the first pick if
// there are not enough candidates. Columns are resolved against ds.
func NewBoard(candidates []Descriptor, ds *dataset.Dataset, r *Resolver) *Board {
	if r == nil {
		r = NewResolver(nil)
	}
	b := &Board{Alternatives: map[Type][]Descriptor{}, ds: ds, resolver: r}

	byType := map[Type][]Descriptor{}
	for _, d := range sortByScore(candidates) {
		byType[d.Type] = append(byType[d.Type], d)
	}

	var pool []Descriptor
	for _, t := range Types {
		list := byType[t]
		n := poolSize[t]
		if n > len(list) {
			n = len(list)
		}
		pool = append(pool, list[:n]...)

		start := n
		if len(list) > start {
			end := start + maxAlternatives
			if end > len(list) {
				end = len(list)
			}
			b.Alternatives[t] = append([]Descriptor(nil), list[start:end]...)
		}
	}
	pool = sortByScore(pool)

	picked := make([]bool, len(pool))
	var items []Descriptor
	for _, t := range Types {
		for i, d := range pool {
			if d.Type == t {
				items = append(items, d)
				picked[i] = true
				break
			}
		}
	}
	for i, d := range pool {
		if len(items) >= BoardSize {
			break
		}
		if !picked[i] {
			items = append(items, d)
		}
	}
	for len(items) > 0 && len(items) < BoardSize {
		items = append(items, items[0])
	}
	if len(items) > BoardSize {
		items = items[:BoardSize]
	}

	for i := range items {
		items[i].Columns = r.Resolve(items[i], ds)
	}
	b.Items = items
	return b
}

// Swap replaces board item pos with alternative alt of the same type, both
// zero-based, and resolves its columns.
func (b *Board) Swap(pos, alt int) error {
	if pos < 0 || pos >= len(b.Items) {
		return fmt.Errorf("recommendation %d out of range (have %d)", pos+1, len(b.Items))
	}
	t := b.Items[pos].Type
	alts := b.Alternatives[t]
	if alt < 0 || alt >= len(alts) {
		return fmt.Errorf("no alternative %d for %s recommendations (have %d)", alt+1, t, len(alts))
	}
	d := alts[alt]
	d.Columns = b.resolver.Resolve(d, b.ds)
	b.Items[pos] = d
	return nil
}

func sortByScore(in []Descriptor) []Descriptor {
	out := append([]Descriptor(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
