// Package recommend resolves recommendation descriptors to concrete dataset
// columns and assembles the recommendation board shown on a dashboard.
package recommend

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type is the shape of a recommendation candidate.
type Type string

const (
	TypeColumn  Type = "Column"
	TypePair    Type = "Pair"
	TypeTriple  Type = "Triple"
	TypeGroupBy Type = "GroupBy"
)

// Types lists the descriptor types in board order.
var Types = []Type{TypeColumn, TypePair, TypeTriple, TypeGroupBy}

// ParseType accepts the canonical spelling and common variants
// ("pair", "group by", "group-by").
func ParseType(s string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	switch key {
	case "column", "col", "single":
		return TypeColumn, nil
	case "pair":
		return TypePair, nil
	case "triple":
		return TypeTriple, nil
	case "groupby", "group":
		return TypeGroupBy, nil
	}
	return "", fmt.Errorf("unknown recommendation type %q", s)
}

func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t *Type) UnmarshalYAML(n *yaml.Node) error {
	return t.UnmarshalText([]byte(n.Value))
}

// Label is a descriptor name as produced by the external scorer: either free
// text or an explicit list of column names. Both shapes are normalized on
// ingestion; Text always holds a printable form.
type Label struct {
	Text  string
	Parts []string
}

// TextLabel builds a free-text label.
func TextLabel(s string) Label { return Label{Text: s} }

// ListLabel builds a label from explicit column names.
func ListLabel(parts ...string) Label {
	cp := append([]string(nil), parts...)
	return Label{Text: strings.Join(cp, " & "), Parts: cp}
}

func (l Label) String() string { return l.Text }

// IsList reports whether the label was given as a list of names.
func (l Label) IsList() bool { return len(l.Parts) > 0 }

func (l Label) MarshalJSON() ([]byte, error) {
	if l.IsList() {
		return json.Marshal(l.Parts)
	}
	return json.Marshal(l.Text)
}

func (l *Label) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v, err := labelFrom(raw)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

func (l Label) MarshalYAML() (interface{}, error) {
	if l.IsList() {
		return l.Parts, nil
	}
	return l.Text, nil
}

func (l *Label) UnmarshalYAML(n *yaml.Node) error {
	var raw interface{}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	v, err := labelFrom(raw)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

func labelFrom(raw interface{}) (Label, error) {
	switch v := raw.(type) {
	case nil:
		return Label{}, nil
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			s, err := scalarString(item)
			if err != nil {
				return Label{}, err
			}
			parts = append(parts, s)
		}
		return ListLabel(parts...), nil
	default:
		s, err := scalarString(v)
		if err != nil {
			return Label{}, err
		}
		return TextLabel(s), nil
	}
}

func scalarString(v interface{}) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	}
	return "", fmt.Errorf("unsupported label value %v (%T)", v, v)
}

// Columns is the resolved column list. On ingestion it accepts a single name
// as well as a list.
type Columns []string

func (c *Columns) UnmarshalJSON(b []byte) error {
	var l Label
	if err := l.UnmarshalJSON(b); err != nil {
		return err
	}
	*c = l.names()
	return nil
}

func (c *Columns) UnmarshalYAML(n *yaml.Node) error {
	var l Label
	if err := l.UnmarshalYAML(n); err != nil {
		return err
	}
	*c = l.names()
	return nil
}

func (l Label) names() []string {
	if l.IsList() {
		return l.Parts
	}
	if l.Text == "" {
		return nil
	}
	return []string{l.Text}
}

// Descriptor is one recommendation candidate. Field names on the wire follow
// the scorer's report columns.
type Descriptor struct {
	Name          Label   `json:"Name" yaml:"Name"`
	Type          Type    `json:"Type" yaml:"Type"`
	Visualization string  `json:"Recommended Visualization" yaml:"Recommended Visualization"`
	Columns       Columns `json:"columns,omitempty" yaml:"columns,omitempty"`
	Score         float64 `json:"Total Score,omitempty" yaml:"Total Score,omitempty"`
}

// LoadDescriptors reads descriptors from a JSON or YAML file. The document is
// either a list or an object with a "recommendations" list.
func LoadDescriptors(path string) ([]Descriptor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptors: %w", err)
	}
	var doc struct {
		Recommendations []Descriptor `json:"recommendations" yaml:"recommendations"`
	}
	var list []Descriptor
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		trimmed := strings.TrimSpace(string(b))
		if strings.HasPrefix(trimmed, "[") {
			err = json.Unmarshal(b, &list)
		} else {
			err = json.Unmarshal(b, &doc)
			list = doc.Recommendations
		}
	case ".yaml", ".yml":
		var node yaml.Node
		if err = yaml.Unmarshal(b, &node); err == nil && len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			err = node.Content[0].Decode(&list)
		} else if err == nil {
			err = yaml.Unmarshal(b, &doc)
			list = doc.Recommendations
		}
	default:
		return nil, fmt.Errorf("unsupported descriptor file: %s (use .json, .yaml or .yml)", filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	for i := range list {
		if list[i].Type == "" {
			return nil, fmt.Errorf("parse %s: recommendation %d has no Type", filepath.Base(path), i+1)
		}
	}
	return list, nil
}
