package ui

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// DefaultProgressInterval is how often the status line is redrawn.
const DefaultProgressInterval = 250 * time.Millisecond

// Progress redraws a single status line until its context ends. It only
// reads the stats it is given.
type Progress struct {
	Out       io.Writer
	Interval  time.Duration
	Estimated *big.Int
	Stats     func() generator.Stats
}

// Run prints the status line every Interval and clears it on return.
func (p *Progress) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprint(p.Out, "\r\033[K")
			return
		case <-ticker.C:
			fmt.Fprint(p.Out, p.Line(p.Stats()))
		}
	}
}

// Line formats one status line, starting with a carriage return.
func (p *Progress) Line(stats generator.Stats) string {
	rate := strings.TrimSuffix(FormatHashRate(stats.HashRate), "/s")
	return fmt.Sprintf("\rTried %s keys (~%s; %s keys/s)\033[K",
		FormatNumber(stats.Attempts),
		FormatPercent(stats.Attempts, p.Estimated),
		rate)
}

// FormatPercent returns 100*attempts/estimated. An estimate too large for
// a float64 reads as 0%; a missing or zero estimate reads as "∞%".
func FormatPercent(attempts uint64, estimated *big.Int) string {
	if estimated == nil || estimated.Sign() <= 0 {
		return "∞%"
	}
	est, _ := new(big.Float).SetInt(estimated).Float64()
	if math.IsInf(est, 1) {
		return "0.00%"
	}
	pct := 100 * float64(attempts) / est
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "∞%"
	}
	return fmt.Sprintf("%.2f%%", pct)
}
