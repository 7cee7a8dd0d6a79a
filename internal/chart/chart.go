// Package chart builds chart descriptions from a dataset, a canonical
// visualization kind and resolved columns. Building never fails: when no rule
// applies, or a rule breaks, the result is a placeholder chart.
package chart

import (
	"github.com/google/uuid"

	"github.com/KaramelBytes/vizloom-cli/internal/vizkind"
)

const (
	unavailableTitle = "Visualization Not Available"
	unavailableText  = "Could not create appropriate visualization for the selected columns"
)

// Series is one drawable sequence. Category charts use Labels with Y; point
// charts use X and Y (and Z for a third numeric dimension). Groups assigns a
// category to each point for colour encoding.
type Series struct {
	Name   string    `json:"name,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	X      []float64 `json:"x,omitempty"`
	Y      []float64 `json:"y,omitempty"`
	Z      []float64 `json:"z,omitempty"`
	Groups []string  `json:"groups,omitempty"`
}

// Bin is one histogram bucket covering [Lo, Hi) (the last bucket includes Hi).
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// BoxStats summarizes one distribution for box and violin plots.
type BoxStats struct {
	Group    string    `json:"group,omitempty"`
	N        int       `json:"n"`
	Min      float64   `json:"min"`
	Q1       float64   `json:"q1"`
	Median   float64   `json:"median"`
	Q3       float64   `json:"q3"`
	Max      float64   `json:"max"`
	Outliers []float64 `json:"outliers,omitempty"`
	Values   []float64 `json:"values,omitempty"`
}

// Matrix is a labelled grid, used by heatmaps.
type Matrix struct {
	Rows   []string    `json:"rows"`
	Cols   []string    `json:"cols"`
	Values [][]float64 `json:"values"`
}

// Node is one leaf of a hierarchical chart; Path runs from the root.
type Node struct {
	Path  []string `json:"path"`
	Value float64  `json:"value"`
}

// Table is a plain tabular preview.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Chart is a renderable description. Kind is what was built, Requested what
// was asked for; they differ when the factory substituted a compatible kind.
type Chart struct {
	ID          string       `json:"id"`
	Kind        vizkind.Kind `json:"kind"`
	Requested   vizkind.Kind `json:"requested,omitempty"`
	Title       string       `json:"title"`
	XLabel      string       `json:"x_label,omitempty"`
	YLabel      string       `json:"y_label,omitempty"`
	Columns     []string     `json:"columns,omitempty"`
	XTime       bool         `json:"x_time,omitempty"`
	Series      []Series     `json:"series,omitempty"`
	Bins        []Bin        `json:"bins,omitempty"`
	Boxes       []BoxStats   `json:"boxes,omitempty"`
	Matrix      *Matrix      `json:"matrix,omitempty"`
	Nodes       []Node       `json:"nodes,omitempty"`
	Table       *Table       `json:"table,omitempty"`
	Annotation  string       `json:"annotation,omitempty"`
	Placeholder bool         `json:"placeholder,omitempty"`
}

func newChart(kind vizkind.Kind, title string) *Chart {
	return &Chart{ID: uuid.NewString(), Kind: kind, Title: title}
}

// Placeholder returns a chart that carries only a message.
func Placeholder(title, text string) *Chart {
	c := newChart(vizkind.None, title)
	c.Annotation = text
	c.Placeholder = true
	return c
}

// Unavailable is the placeholder used when no rule could build a chart.
func Unavailable() *Chart {
	return Placeholder(unavailableTitle, unavailableText)
}
