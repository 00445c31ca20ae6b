package formatter

import (
	"github.com/jacoelho/wxalerts/internal/results"
)

// Formatter prints polling summaries.
// Implementations are responsible for choosing the output device.
type Formatter interface {
	// Format prints a single summary, or per-iteration lines followed by aggregated
	// statistics when given more than one.
	Format(summaries ...*results.Summary) error
}
