package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubCommand_Matches(t *testing.T) {
	tests := []struct {
		name string
		sub  SubCommand
		arg  string
		want bool
	}{
		{"literal ignores case", SubCommand{Arg: "Reset"}, "reset", true},
		{"literal mismatch", SubCommand{Arg: "reset"}, "resets", false},
		{"pattern whole argument", SubCommand{Arg: `\d+`, Regex: true}, "250", true},
		{"pattern partial argument", SubCommand{Arg: `\d+`, Regex: true}, "250x", false},
		{"alternation anchored", SubCommand{Arg: `on|off`, Regex: true}, "often", false},
		{"invalid pattern never matches", SubCommand{Arg: `(`, Regex: true}, "(", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.Matches(tt.arg))
		})
	}
}

func TestSubCommand_MatchesSharedDefinition(t *testing.T) {
	def := CommandDefinition{
		Trigger:     "!roll",
		SubCommands: []SubCommand{{ID: "digits", Arg: `\d+`, Regex: true}},
	}

	var wg sync.WaitGroup
	results := make([]bool, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = def.SubCommands[0].Matches("20")
		}(i)
	}
	wg.Wait()

	for _, ok := range results {
		assert.True(t, ok)
	}
	assert.Equal(t, SubCommand{ID: "digits", Arg: `\d+`, Regex: true}, def.SubCommands[0])
}
