package ui

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

var (
	headerColor = color.New(color.FgGreen, color.Bold)
	labelColor  = color.New(color.FgCyan, color.Bold)
	addrColor   = color.New(color.FgGreen)
	keyColor    = color.New(color.FgYellow)
	warnColor   = color.New(color.FgRed, color.Bold)
	dimColor    = color.New(color.Faint)
)

// PrintSearchInfo displays the search configuration on stderr-style output.
func PrintSearchInfo(w io.Writer, network generator.Network, pattern string, estimate *big.Int) {
	headerColor.Fprintf(w, "Searching %s", network)
	fmt.Fprintf(w, " for %s", labelColor.Sprint(pattern))
	dimColor.Fprintf(w, " (1/%s)\n", FormatBig(estimate))
}

// PrintMatch writes a verified match block.
func PrintMatch(w io.Writer, res generator.Result) {
	fmt.Fprintln(w)
	headerColor.Fprintf(w, "Found matching account! ")
	dimColor.Fprintf(w, "(#%d, %s, after %s keys)\n", res.Found, res.Source, FormatNumber(res.Attempts))
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Private Key:"), keyColor.Sprint(res.Account.PrivateKey))
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Address:"), addrColor.Sprint(res.Account.Address))
	if res.Account.Mnemonic != "" {
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Mnemonic:"), keyColor.Sprint(res.Account.Mnemonic))
	}
	fmt.Fprintln(w)
}

// FormatRecord renders a match as plain text for the output file.
func FormatRecord(res generator.Result, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s match #%d (%s)\n", at.UTC().Format(time.RFC3339), res.Network, res.Found, res.Source)
	fmt.Fprintf(&b, "Address: %s\n", res.Account.Address)
	fmt.Fprintf(&b, "Private Key: %s\n", res.Account.PrivateKey)
	if res.Account.Mnemonic != "" {
		fmt.Fprintf(&b, "Mnemonic: %s\n", res.Account.Mnemonic)
	}
	b.WriteString("\n")
	return b.String()
}

// PrintSummary writes the final statistics line.
func PrintSummary(w io.Writer, stats generator.Stats) {
	elapsed := time.Duration(stats.ElapsedSecs * float64(time.Second))
	dimColor.Fprintf(w, "Tried %s keys in %s (%s), %d found\n",
		FormatNumber(stats.Attempts), FormatDuration(elapsed), FormatHashRate(stats.HashRate), stats.Found)
}

// PrintWarning writes a highlighted warning line.
func PrintWarning(w io.Writer, msg string) {
	warnColor.Fprintf(w, "⚠  %s\n", msg)
}

// FormatHashRate formats hash rate nicely
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.1f/s", rate)
}

// FormatNumber adds commas to large numbers
func FormatNumber(n uint64) string {
	return groupDigits(fmt.Sprintf("%d", n))
}

// FormatBig adds commas to a big integer.
func FormatBig(n *big.Int) string {
	if n == nil {
		return "-"
	}
	return groupDigits(n.String())
}

func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, s[i])
	}
	return string(result)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
