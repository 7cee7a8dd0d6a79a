package recommend

import (
	"strings"
)

// Outcome classifies a parse attempt.
type Outcome int

const (
	// NoMatch: no extracted part names an existing column.
	NoMatch Outcome = iota
	// Ambiguous: some parts exist, but not enough for the descriptor type.
	Ambiguous
	// Matched: every part names an existing column.
	Matched
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Ambiguous:
		return "ambiguous"
	default:
		return "no-match"
	}
}

// ParseResult is the outcome of splitting a descriptor name into column names.
// Parts holds every extracted name; Columns the ones that exist, in order.
type ParseResult struct {
	Outcome  Outcome
	Strategy string
	Parts    []string
	Columns  []string
}

// strategy splits a name into parts. It applies when it yields at least min
// parts.
type strategy struct {
	name  string
	min   int
	split func(string) []string
}

func separator(sep string, min int) strategy {
	return strategy{name: "separator " + strings.TrimSpace(sep), min: min, split: func(s string) []string {
		if !strings.Contains(s, sep) {
			return nil
		}
		return trimAll(strings.Split(s, sep))
	}}
}

// separatorOnce splits on the first occurrence only, for "value by group".
func separatorOnce(sep string) strategy {
	return strategy{name: "separator " + strings.TrimSpace(sep), min: 2, split: func(s string) []string {
		if !strings.Contains(s, sep) {
			return nil
		}
		return trimAll(strings.SplitN(s, sep, 2))
	}}
}

var whole = strategy{name: "whole name", min: 1, split: func(s string) []string {
	return []string{strings.TrimSpace(s)}
}}

var lastResortAmpersand = strategy{name: "ampersand", min: 1, split: func(s string) []string {
	return trimAll(strings.Split(s, " & "))
}}

// tupleLiteral reads "(a, b)" and "('a', 'b')".
var tupleLiteral = strategy{name: "tuple", min: 2, split: func(s string) []string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(s[1:len(s)-1], ",") {
		p = strings.TrimSpace(p)
		if len(p) >= 2 && (p[0] == '\'' && p[len(p)-1] == '\'' || p[0] == '"' && p[len(p)-1] == '"') {
			p = p[1 : len(p)-1]
		}
		parts = append(parts, p)
	}
	return parts
}}

// vsBy reads "A vs B by C".
var vsBy = strategy{name: "vs-by", min: 3, split: func(s string) []string {
	a, rest, ok := strings.Cut(s, " vs ")
	if !ok {
		return nil
	}
	b, c, ok := strings.Cut(rest, " by ")
	if !ok {
		return nil
	}
	return trimAll([]string{a, b, c})
}}

// strategies lists the split strategies per descriptor type in priority order.
var strategies = map[Type][]strategy{
	TypeColumn: {whole},
	TypePair: {
		separator(" & ", 2),
		separator(", ", 2),
		separator(" vs ", 2),
		separator(" by ", 2),
		separator(" and ", 2),
		separator(" with ", 2),
		tupleLiteral,
		lastResortAmpersand,
	},
	TypeTriple: {
		separator(" & ", 3),
		separator(", ", 3),
		vsBy,
		lastResortAmpersand,
	},
	TypeGroupBy: {
		separatorOnce(" [by] "),
		separatorOnce(" grouped by "),
		separatorOnce(" by "),
		whole,
	},
}

// arity is the number of columns a type needs to count as Matched.
func arity(t Type) int {
	if t == TypePair {
		return 2
	}
	return 1
}

// Parse splits the descriptor name into column names and checks them against
// the available columns. Strategies run in priority order and the first one
// whose split yields enough parts decides; its parts are classified as they
// are, even when a later strategy would have matched better. Column types and
// order are not consulted; see Resolve for the fallback ladder.
func Parse(d Descriptor, columns []string) ParseResult {
	exists := make(map[string]bool, len(columns))
	for _, c := range columns {
		exists[c] = true
	}
	if d.Name.IsList() {
		return classify(d.Type, "list", trimAll(d.Name.Parts), exists)
	}

	list, ok := strategies[d.Type]
	if !ok {
		list = []strategy{whole}
	}
	for _, s := range list {
		parts := s.split(d.Name.Text)
		if len(parts) < s.min {
			continue
		}
		return classify(d.Type, s.name, parts, exists)
	}
	return ParseResult{Outcome: NoMatch}
}

func classify(t Type, name string, parts []string, exists map[string]bool) ParseResult {
	res := ParseResult{Strategy: name, Parts: parts}
	for _, p := range parts {
		if exists[p] {
			res.Columns = append(res.Columns, p)
		}
	}
	switch {
	case len(res.Columns) == 0:
		res.Outcome = NoMatch
	case len(res.Columns) == len(res.Parts) && len(res.Columns) >= arity(t):
		res.Outcome = Matched
	default:
		res.Outcome = Ambiguous
	}
	return res
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
