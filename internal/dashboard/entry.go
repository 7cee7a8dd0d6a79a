package dashboard

import (
	"time"

	"github.com/KaramelBytes/vizloom-cli/internal/recommend"
	"github.com/KaramelBytes/vizloom-cli/internal/vizkind"
)

// Entry is one rendered chart of a dashboard.
type Entry struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Recommendation recommend.Descriptor `json:"recommendation"`
	Kind           vizkind.Kind         `json:"kind"`
	Built          vizkind.Kind         `json:"built"`
	File           string               `json:"file"`
	Placeholder    bool                 `json:"placeholder,omitempty"`
	AddedAt        time.Time            `json:"added_at"`
}
