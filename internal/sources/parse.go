package sources

import (
	"regexp"
	"strconv"
	"strings"
)

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// ParsePrice extracts a numeric price from display text like "BDT 4,500" or
// "$120.50". Returns 0 when no number survives; 0 means "unknown price" and
// is never a valid hotel price.
func ParsePrice(text string) float64 {
	cleaned := nonNumeric.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return price
}

// CleanText trims and collapses whitespace in scraped display text.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
