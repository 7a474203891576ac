package matcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arr-ai/rulecheck/grammar"
)

func TestValidatorCount(t *testing.T) {
	store := mustParse(t, "0: 1 2\n1: \"a\"\n2: \"b\"")
	messages := []string{"ab", "ba", "a"}

	for _, kind := range []Kind{Auto, Finite, Recursive} {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			backend, err := Select(store, 0, kind)
			require.NoError(t, err)

			n, err := Validator{Backend: backend}.Count(messages)
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			results, err := Validator{Backend: backend}.Results(messages)
			require.NoError(t, err)
			assert.Equal(t, []bool{true, false, false}, results)
		})
	}
	assert.Equal(t, []string{"ab", "ba", "a"}, messages)
}

func TestSelect(t *testing.T) {
	base := mustParse(t, loopBase)
	looped := mustOverride(t, base, grammar.LoopOverrides...)

	backend, err := Select(base, 0, Auto)
	require.NoError(t, err)
	assert.IsType(t, &Pattern{}, backend)

	backend, err = Select(looped, 0, Auto)
	require.NoError(t, err)
	assert.IsType(t, &Matcher{}, backend)

	backend, err = Select(base, 0, Recursive)
	require.NoError(t, err)
	assert.IsType(t, &Matcher{}, backend)

	_, err = Select(looped, 0, Finite)
	var cycle *grammar.CycleError
	assert.True(t, errors.As(err, &cycle))

	_, err = Select(base, 5, Auto)
	var unknown *grammar.UnknownRuleError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, grammar.RuleID(5), unknown.ID)

	_, err = Select(mustParse(t, "0: 1 9\n1: \"a\""), 0, Recursive)
	var invalid *grammar.ValidationError
	assert.True(t, errors.As(err, &invalid))

	_, err = Select(base, 0, Kind(42))
	assert.EqualError(t, err, "unknown backend: Kind(42)")
}

func TestSelectEmptyStore(t *testing.T) {
	for _, kind := range []Kind{Auto, Finite, Recursive} {
		backend, err := Select(grammar.Store{}, 0, kind)
		require.NoError(t, err)
		n, err := Validator{Backend: backend}.Count([]string{"", "a"})
		require.NoError(t, err)
		assert.Zero(t, n)
	}
}

func TestParseKind(t *testing.T) {
	for s, want := range map[string]Kind{"auto": Auto, "Finite": Finite, "RECURSIVE": Recursive} {
		kind, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, want, kind)
	}
	_, err := ParseKind("regex")
	assert.Error(t, err)
}

func TestValidatorWorkersKeepOrder(t *testing.T) {
	store, messages := loadMessages(t)
	looped := mustOverride(t, store, grammar.LoopOverrides...)
	backend := New(looped, 0)

	serial, err := Validator{Backend: backend}.Results(messages)
	require.NoError(t, err)
	parallel, err := Validator{Backend: backend, Workers: 8}.Results(messages)
	require.NoError(t, err)
	assert.Equal(t, serial, parallel)
}

func TestOverrideNeverShrinksLanguage(t *testing.T) {
	store, messages := loadMessages(t)
	looped := mustOverride(t, store, grammar.LoopOverrides...)

	before, err := Validator{Backend: New(store, 0)}.Results(messages)
	require.NoError(t, err)
	after, err := Validator{Backend: New(looped, 0), Workers: 4}.Results(messages)
	require.NoError(t, err)

	gained := 0
	for i := range messages {
		if before[i] {
			assert.True(t, after[i], messages[i])
		} else if after[i] {
			gained++
		}
	}
	t.Logf("override accepts %d more messages", gained)
}

type backendFunc func(string) (bool, error)

func (f backendFunc) Match(message string) (bool, error) { return f(message) }

func TestValidatorReportsFirstError(t *testing.T) {
	boom := errors.New("boom")
	backend := backendFunc(func(msg string) (bool, error) {
		if msg == "bad" {
			return false, boom
		}
		return true, nil
	})
	messages := []string{"ok", "ok", "bad", "ok", "bad"}

	for _, workers := range []int{0, 1, 3} {
		_, err := Validator{Backend: backend, Workers: workers}.Count(messages)
		require.Error(t, err)
		assert.True(t, errors.Is(err, boom))
		assert.Equal(t, "message 3: boom", err.Error())
	}
}
