package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/cognicore/shortname/pkg/shortname/result"
)

func TestObserveResult(t *testing.T) {
	comps := result.EmptyComponents()
	comps[0].Value = "Glove"
	comps[4].RulesApplied.Add(result.RuleDropForBudget)

	success := testutil.ToFloat64(ResultsTotal.WithLabelValues(OutcomeSuccess))
	drops := testutil.ToFloat64(ComponentsDropped.WithLabelValues("5"))

	ObserveResult(result.ProcessingResult{Success: true, CharacterCount: 5, Components: comps})

	assert.Equal(t, success+1, testutil.ToFloat64(ResultsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, drops+1, testutil.ToFloat64(ComponentsDropped.WithLabelValues("5")))
}

func TestObserveDictionaryLoad(t *testing.T) {
	failures := testutil.ToFloat64(DictionaryLoads.WithLabelValues(ResultError))

	ObserveDictionaryLoad(12, nil)
	assert.Equal(t, 12.0, testutil.ToFloat64(DictionaryEntries))

	ObserveDictionaryLoad(0, errors.New("boom"))
	assert.Equal(t, failures+1, testutil.ToFloat64(DictionaryLoads.WithLabelValues(ResultError)))
	assert.Equal(t, 12.0, testutil.ToFloat64(DictionaryEntries))
}

func TestObserveCache(t *testing.T) {
	hits := testutil.ToFloat64(CacheLookups.WithLabelValues(ResultHit))
	ObserveCache(true)
	ObserveCache(false)
	assert.Equal(t, hits+1, testutil.ToFloat64(CacheLookups.WithLabelValues(ResultHit)))
}
