package slots

import (
	"strconv"
	"strings"
	"time"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/utils"
)

// render fills template placeholders. Unknown placeholders are left as is.
func render(template string, pairs ...string) string {
	if template == "" {
		return ""
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func renderUser(template, username string) string {
	return render(template, PlaceholderUsername, username)
}

func renderCooldown(m domain.SlotsMessages, username string, remaining time.Duration) string {
	return render(m.OnCooldown,
		PlaceholderUsername, username,
		PlaceholderTimeRemaining, utils.SecondsForHumans(remaining))
}

func renderMinWager(m domain.SlotsMessages, username string, minWager int64) string {
	return render(m.MinWager,
		PlaceholderUsername, username,
		PlaceholderMinWager, strconv.FormatInt(minWager, 10))
}

func renderMaxWager(m domain.SlotsMessages, username string, maxWager int64) string {
	return render(m.MaxWager,
		PlaceholderUsername, username,
		PlaceholderMaxWager, strconv.FormatInt(maxWager, 10))
}

func renderSuccess(m domain.SlotsMessages, username string, rolls int, winnings int64, currencyName string) string {
	return render(m.SpinSuccessful,
		PlaceholderUsername, username,
		PlaceholderSuccessfulRolls, strconv.Itoa(rolls),
		PlaceholderWinningsAmount, utils.Commafy(winnings),
		PlaceholderCurrencyName, currencyName)
}
