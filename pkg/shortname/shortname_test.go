package shortname

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/shortname/pkg/shortname/dictionary"
	"github.com/cognicore/shortname/pkg/shortname/internalerr"
	"github.com/cognicore/shortname/pkg/shortname/result"
	"github.com/cognicore/shortname/pkg/shortname/store/memstore"
)

const scenario = "Solution Dextrose 5% 500 milliliters Bottle Viaflex Non-Latex"

var scenarioEntries = []dictionary.Entry{
	{Term: "milliliters", Abbreviation: "ml"},
	{Term: "bottle", Abbreviation: "BTL"},
	{Term: "non-latex", Abbreviation: "NL"},
	{Term: "kilogram", Abbreviation: "kg"},
}

var samples = []string{
	scenario,
	"Suture VICRYL 0 Taper CT1 J340H",
	"Tape Surgical 1.25cm x 9.14m",
	"Scissors Mayo 170mm Straight",
	"Halloween HERSHEY 500 kilograms chocolate bar",
	"Glove Exam Large Sterile Latex-Free Box",
	"Tape Surgical 1cm Tape Roll",
	"Gauze",
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(t *testing.T, entries ...dictionary.Entry) *Engine {
	t.Helper()
	opts := Options{Logger: quietLogger()}
	if len(entries) > 0 {
		opts.Dictionary = dictionary.FromEntries("test", entries)
	}
	return New(opts)
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func hasMessage(r result.ProcessingResult, level result.Level, substr string) bool {
	for _, m := range r.Messages {
		if m.Level == level && strings.Contains(m.Text, substr) {
			return true
		}
	}
	return false
}

func TestProcessScenario(t *testing.T) {
	e := newEngine(t, scenarioEntries...)

	r := e.Process(scenario)
	assert.True(t, r.Success)
	assert.Equal(t, "Solution Dextrose 5% 500ml NL", r.ShortName)
	assert.Equal(t, 29, r.CharacterCount)
	assert.Equal(t, scenario, r.Original)

	require.Len(t, r.Components, 5)
	assert.Equal(t, "Solution", r.Components[0].Value)
	assert.Equal(t, "5% 500ml", r.Components[2].Value)
	assert.Equal(t, "NL", r.Components[3].Value)
	assert.Empty(t, r.Components[4].Value)
	assert.Equal(t, "Bottle Viaflex", r.Components[4].Original)
	assert.True(t, r.Components[4].RulesApplied.Has(result.RuleDropForBudget))
	assert.True(t, hasMessage(r, result.LevelWarning, "Position 5 (Additional Description) dropped"))
}

func TestProcessEmptyInput(t *testing.T) {
	e := newEngine(t, scenarioEntries...)

	for _, in := range []string{"", "   ", "\t\n"} {
		r := e.Process(in)
		assert.False(t, r.Success, "input %q", in)
		assert.Empty(t, r.ShortName)
		assert.Zero(t, r.CharacterCount)
		require.Len(t, r.Components, 5)
		assert.Empty(t, r.Components[0].Value)
		assert.True(t, hasMessage(r, result.LevelError, "Missing mandatory Position 1 (Product Type)"))
	}
}

func TestProcessWithoutDictionary(t *testing.T) {
	e := newEngine(t)
	assert.False(t, e.DictionaryLoaded())
	assert.Zero(t, e.DictionaryEntryCount())

	r := e.Process("Syringe 10 ml Sterile")
	assert.True(t, r.Success)
	assert.Equal(t, "Syringe 10ml Sterile", r.ShortName)
	assert.True(t, hasMessage(r, result.LevelWarning, NoDictionaryWarning))
}

func TestProcessProductTypeTooLong(t *testing.T) {
	e := newEngine(t)
	long := "extraordinarily-long-product-type-description-word"

	r := e.Process(long + " 5ml")
	assert.False(t, r.Success)
	assert.Equal(t, long, r.ShortName)
	assert.Equal(t, len(long), r.CharacterCount)
	assert.Equal(t, long, r.Components[0].Value)
	assert.True(t, r.Components[2].RulesApplied.Has(result.RuleDropForBudget))
	assert.True(t, hasMessage(r, result.LevelError, "exceeding the 35-character limit"))
}

func TestProcessInvariants(t *testing.T) {
	e := newEngine(t, scenarioEntries...)

	for _, in := range samples {
		r := e.Process(in)

		require.Len(t, r.Components, 5, in)
		for i, c := range r.Components {
			assert.Equal(t, result.Positions[i], c.Position, in)
		}
		assert.Equal(t, len([]rune(r.ShortName)), r.CharacterCount, in)
		assert.Equal(t, result.Join(r.Components), r.ShortName, in)
		assert.Equal(t, r.Components[0].Value != "" && r.CharacterCount <= 35, r.Success, in)

		seen := map[string]result.Position{}
		for _, c := range r.Components {
			for _, w := range strings.Fields(c.Value) {
				key := dictionary.Fold(w)
				if p, dup := seen[key]; dup {
					assert.Equal(t, p, c.Position, "%q: %q repeated across positions", in, w)
				}
				seen[key] = c.Position
			}
		}
	}
}

func TestProcessNoDropWhenItFits(t *testing.T) {
	e := newEngine(t, scenarioEntries...)

	r := e.Process("Scissors Mayo 170mm Straight")
	assert.True(t, r.Success)
	for _, c := range r.Components {
		assert.False(t, c.RulesApplied.Has(result.RuleDropForBudget), c.PositionName)
	}
	assert.False(t, r.Messages.HasLevel(result.LevelError))
}

func TestProcessDropsAreMonotonic(t *testing.T) {
	e := newEngine(t, scenarioEntries...)

	for _, in := range samples {
		r := e.Process(in)
		assert.False(t, r.Components[0].RulesApplied.Has(result.RuleDropForBudget), in)

		for i, c := range r.Components {
			if !c.RulesApplied.Has(result.RuleDropForBudget) {
				continue
			}
			for _, later := range r.Components[i+1:] {
				assert.Empty(t, later.Value, "%q: %s kept while %s was dropped", in, later.PositionName, c.PositionName)
			}
		}
	}
}

func TestResultsAreIndependentCopies(t *testing.T) {
	e := newEngine(t, scenarioEntries...)

	first := e.Process(scenario)
	first.Components[0].Value = "mutated"
	first.Components[2].RulesApplied[0] = "mutated"
	first.Messages[0].Text = "mutated"

	second := e.Process(scenario)
	assert.Equal(t, "Solution", second.Components[0].Value)
	assert.Equal(t, result.RuleDictionarySubstitution, second.Components[2].RulesApplied[0])
	assert.NotEqual(t, "mutated", second.Messages[0].Text)
}

func TestCacheDisabled(t *testing.T) {
	e := New(Options{
		Logger:     quietLogger(),
		Dictionary: dictionary.FromEntries("test", scenarioEntries),
		CacheSize:  -1,
	})
	assert.Equal(t, e.Process(scenario), e.Process(scenario))
}

func TestLoadDictionaryTwiceWithCaseVariants(t *testing.T) {
	e := newEngine(t)
	path := writeCSV(t, "Full Term,Abbreviation\nBottle,BTL\nbottle,BT\nBOTTLE,BOT\nmilliliters,ml\n")

	for i := 0; i < 2; i++ {
		require.NoError(t, e.LoadDictionary(path))
		assert.Equal(t, 2, e.DictionaryEntryCount())
		abbr, ok := e.Dictionary().Lookup("bottle")
		assert.True(t, ok)
		assert.Equal(t, "BOT", abbr)
	}
	assert.True(t, e.DictionaryLoaded())
}

func TestFailedLoadKeepsPreviousDictionary(t *testing.T) {
	e := newEngine(t, scenarioEntries...)
	before := e.Status()

	err := e.LoadDictionary(writeCSV(t, "Full Term,Abbreviation\n,\nonly-term,\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrDictionaryLoad))

	err = e.LoadDictionary(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrDictionaryLoad))

	assert.Equal(t, before, e.Status())
	assert.Equal(t, "Solution Dextrose 5% 500ml NL", e.Process(scenario).ShortName)
}

func TestLoadWarningsReachMessages(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.LoadDictionary(writeCSV(t, "milliliters,ml\nbroken,\nbottle,BTL\n")))

	st := e.Status()
	assert.Equal(t, 2, st.Entries)
	assert.Equal(t, 1, st.Skipped)
	assert.NotEmpty(t, st.Revision)

	r := e.Process("Solution 500 milliliters")
	assert.True(t, hasMessage(r, result.LevelWarning, "skipped 1 malformed row(s)"))
}

func TestReloadChangesOutput(t *testing.T) {
	e := newEngine(t, scenarioEntries...)
	assert.Equal(t, "Solution Dextrose 5% 500ml NL", e.Process(scenario).ShortName)

	e.SetDictionary(dictionary.FromEntries("v2", []dictionary.Entry{
		{Term: "milliliters", Abbreviation: "mL"},
		{Term: "non-latex", Abbreviation: "LF"},
	}))
	assert.Equal(t, "Solution Dextrose 5% 500mL LF", e.Process(scenario).ShortName)

	e.SetDictionary(nil)
	assert.False(t, e.DictionaryLoaded())
}

func TestLoadDictionaryFromStore(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	require.NoError(t, st.ReplaceEntries(ctx, scenarioEntries))

	e := newEngine(t)
	require.NoError(t, e.LoadDictionaryFromStore(ctx, st, "memory"))
	assert.Equal(t, len(scenarioEntries), e.DictionaryEntryCount())
	assert.Equal(t, "memory", e.Status().Source)

	empty := memstore.New()
	err := e.LoadDictionaryFromStore(ctx, empty, "empty")
	assert.ErrorIs(t, err, internalerr.ErrDictionaryLoad)
	assert.Equal(t, len(scenarioEntries), e.DictionaryEntryCount())
}

func TestConcurrentProcessAndReload(t *testing.T) {
	e := newEngine(t, scenarioEntries...)
	alt := dictionary.FromEntries("alt", []dictionary.Entry{{Term: "milliliters", Abbreviation: "mL"}})
	orig := dictionary.FromEntries("orig", scenarioEntries)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				r := e.Process(scenario)
				assert.True(t, r.Success)
				assert.Contains(t, []string{
					"Solution Dextrose 5% 500ml NL",
					"Solution Dextrose 5% 500mL",
				}, r.ShortName)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if i%2 == 0 {
				e.SetDictionary(alt)
			} else {
				e.SetDictionary(orig)
			}
		}
	}()
	wg.Wait()
}

func TestProcessBatchKeepsOrder(t *testing.T) {
	e := New(Options{
		Logger:     quietLogger(),
		Dictionary: dictionary.FromEntries("test", scenarioEntries),
		Workers:    3,
	})

	inputs := append([]string{""}, samples...)
	results, err := e.ProcessBatch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	assert.False(t, results[0].Success, "empty item fails on its own")
	for i, in := range inputs {
		assert.Equal(t, strings.TrimSpace(in), results[i].Original)
		assert.Equal(t, e.Process(in), results[i])
	}
}

func TestProcessBatchEmpty(t *testing.T) {
	results, err := newEngine(t).ProcessBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProcessBatchCancelled(t *testing.T) {
	e := newEngine(t, scenarioEntries...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := e.ProcessBatch(ctx, samples)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, len(samples))
	for i, r := range results {
		assert.False(t, r.Success)
		assert.Equal(t, samples[i], r.Original)
		assert.True(t, hasMessage(r, result.LevelError, CancelledError))
	}
}
