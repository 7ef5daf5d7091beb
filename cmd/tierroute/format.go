package main

import (
	"encoding/json"
	"io"

	"github.com/dustin/go-humanize"
)

// formatUSD renders dollars with thousands separators and up to six decimals.
func formatUSD(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 6)
}

// formatTokens renders a token count with thousands separators.
func formatTokens(n float64) string {
	return humanize.CommafWithDigits(n, 2)
}

// formatPercent renders a share such as 0.15 as "15%".
func formatPercent(share float64) string {
	return humanize.FtoaWithDigits(share*100, 2) + "%"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
