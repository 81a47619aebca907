package widget

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mmcdole/rankbar/internal/rank"
)

// ASCIIArrow replaces the transition arrow for outputs that cannot draw it
const ASCIIArrow = "->"

// LineRenderer writes each display text on its own line, for external status bars
type LineRenderer struct {
	mu    sync.Mutex
	w     io.Writer
	ascii bool
}

// NewLineRenderer writes to w, replacing the arrow with "->" when ascii is set
func NewLineRenderer(w io.Writer, ascii bool) *LineRenderer {
	return &LineRenderer{w: w, ascii: ascii}
}

// Render implements Renderer
func (r *LineRenderer) Render(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, Printable(text, r.ascii))
}

// Printable returns text with the arrow swapped for ASCII when requested
func Printable(text string, ascii bool) string {
	if !ascii {
		return text
	}
	return strings.ReplaceAll(text, rank.Arrow, ASCIIArrow)
}
