package command

import (
	"strings"
	"unicode"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// Tokenize splits a chat message on runs of whitespace
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// SeparateTriggerFromArgs splits management arguments into the target trigger
// and the data that follows it. args[0] is the already-consumed subcommand
// word and args[1] the trigger token.
//
// A trigger token beginning with a double quote is read as a phrase: the
// joined arguments are scanned for a quoted span that opens at the start or
// after whitespace and closes on an unescaped quote followed by whitespace or
// the end. Escaped quotes (\") inside the phrase are unescaped. Without such a
// span the trigger token is taken verbatim.
func SeparateTriggerFromArgs(args []string) (domain.ParsedInvocation, error) {
	if len(args) < 2 {
		return domain.ParsedInvocation{}, domain.ErrUsage
	}

	inv := domain.ParsedInvocation{
		Trigger:       args[1],
		RemainingData: strings.TrimSpace(strings.Join(args[2:], " ")),
	}

	if strings.HasPrefix(args[1], `"`) {
		combined := strings.Join(args[1:], " ")
		if phrase, start, end, ok := findQuotedPhrase(combined); ok {
			inv.Trigger = strings.TrimSpace(strings.ReplaceAll(phrase, `\"`, `"`))
			inv.RemainingData = strings.TrimSpace(combined[:start] + combined[end:])
		}
	}

	if inv.Trigger == "" {
		return domain.ParsedInvocation{}, domain.ErrUsage
	}
	return inv, nil
}

// findQuotedPhrase returns the raw text between the first valid pair of
// quotes in s, plus the byte span covering the quotes themselves
func findQuotedPhrase(s string) (phrase string, start, end int, ok bool) {
	for open := 0; open < len(s); open++ {
		if s[open] != '"' || !boundaryBefore(s, open) {
			continue
		}

		closeAt := -1
		for j := open + 1; j < len(s); j++ {
			if s[j] == '\\' && j+1 < len(s) && s[j+1] == '"' {
				j++
				continue
			}
			if s[j] == '"' {
				closeAt = j
				break
			}
		}
		if closeAt < 0 {
			return "", 0, 0, false
		}
		if boundaryAfter(s, closeAt) {
			return s[open+1 : closeAt], open, closeAt + 1, true
		}
	}
	return "", 0, 0, false
}

func boundaryBefore(s string, i int) bool {
	return i == 0 || unicode.IsSpace(rune(s[i-1]))
}

func boundaryAfter(s string, i int) bool {
	return i == len(s)-1 || unicode.IsSpace(rune(s[i+1]))
}
