package ui

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Progress renders the download loop's progress events as a terminal bar.
type Progress struct {
	bar       *progressbar.ProgressBar
	operation string
}

func NewProgress(operation string, total int) *Progress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(operation),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
	return &Progress{bar: bar, operation: operation}
}

// Update advances the bar and reflects the latest chapter title plus the
// estimated remaining time in the description.
func (p *Progress) Update(current int, lastTitle string, remaining time.Duration) {
	desc := p.operation
	if lastTitle != "" {
		desc = fmt.Sprintf("%s %s", p.operation, truncateTitle(lastTitle, 32))
	}
	if remaining > 0 {
		desc += fmt.Sprintf(" (est. %s left)", remaining.Round(time.Second))
	}
	p.bar.Describe(desc)
	_ = p.bar.Set(current)
}

func (p *Progress) Finish() {
	_ = p.bar.Finish()
	fmt.Println()
}

func truncateTitle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
