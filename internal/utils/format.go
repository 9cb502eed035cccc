package utils

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var englishPrinter = message.NewPrinter(language.English)

// Commafy formats n with thousands separators (1234567 -> "1,234,567")
func Commafy(n int64) string {
	return englishPrinter.Sprintf("%d", n)
}

var humanUnits = []struct {
	seconds  int64
	singular string
	plural   string
}{
	{365 * 24 * 60 * 60, "year", "years"},
	{24 * 60 * 60, "day", "days"},
	{60 * 60, "hour", "hours"},
	{60, "minute", "minutes"},
	{1, "second", "seconds"},
}

// SecondsForHumans renders d as "1 hour 2 minutes 5 seconds", omitting zero
// units. Sub-second remainders round up so a live cooldown never reads as
// empty.
func SecondsForHumans(d time.Duration) string {
	total := int64((d + time.Second - 1) / time.Second)
	if total <= 0 {
		return "0 seconds"
	}

	parts := make([]string, 0, len(humanUnits))
	for _, u := range humanUnits {
		n := total / u.seconds
		total %= u.seconds
		if n == 0 {
			continue
		}
		name := u.plural
		if n == 1 {
			name = u.singular
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, name))
	}
	return strings.Join(parts, " ")
}
