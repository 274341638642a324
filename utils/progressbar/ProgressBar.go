// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"strings"
	"time"
)

// ProgressBar implements a progress bar that is redrawn in place on
// the terminal. The bar is redrawn at most once every updateEvery and
// always when it completes.
type ProgressBar struct {
	width    int
	max      int
	progress int

	updateEvery time.Duration
	lastDraw    time.Time
	started     time.Time
}

// New returns a new progress bar that is width characters wide and
// reaches 100% after max Increment() calls. The bar is redrawn at most
// once every updateEvery.
func New(width, max int, updateEvery time.Duration) *ProgressBar {
	now := time.Now()
	return &ProgressBar{
		width:       width,
		max:         max,
		updateEvery: updateEvery,
		lastDraw:    now.Add(-updateEvery),
		started:     now,
	}
}

// Increment increments the internal progress counter, redrawing the
// progress bar if enough time has passed since the last redraw. Each
// time an iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.progress < p.max {
		p.progress++
	}

	if time.Since(p.lastDraw) >= p.updateEvery || p.progress == p.max {
		p.draw()
		p.lastDraw = time.Now()
	}
}

// Close finishes the progress bar, moving the cursor to the next
// terminal line
func (p *ProgressBar) Close() {
	p.draw()
	fmt.Println()
}

// draw redraws the progress bar in place on the current terminal line
func (p *ProgressBar) draw() {
	filled := 0
	if p.max > 0 {
		filled = p.progress * p.width / p.max
	}

	var bar strings.Builder
	bar.WriteString("|")
	for i := 0; i < filled; i++ {
		bar.WriteString("█")
	}
	for i := filled; i < p.width; i++ {
		bar.WriteString(" ")
	}

	percent := 0.0
	if p.max > 0 {
		percent = float64(p.progress) / float64(p.max) * 100
	}
	bar.WriteString(fmt.Sprintf("| [%.2f%v | elapsed: %v]", percent, "%",
		time.Since(p.started).Round(time.Second)))

	fmt.Printf("\r\033[K%v", bar.String())
}
