package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cognicore/shortname/pkg/shortname/result"
)

// Processing metrics
var (
	ResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameResultsTotal,
			Help: HelpTextResultsTotal,
		},
		[]string{LabelOutcome},
	)

	RulesAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRulesAppliedTotal,
			Help: HelpTextRulesAppliedTotal,
		},
		[]string{LabelRule},
	)

	ComponentsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameComponentsDropped,
			Help: HelpTextComponentsDropped,
		},
		[]string{LabelPosition},
	)

	ShortNameLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameShortNameLength,
			Help:    HelpTextShortNameLength,
			Buckets: LengthBuckets,
		},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameBatchDuration,
			Help:    HelpTextBatchDuration,
			Buckets: prometheus.DefBuckets,
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheLookups,
			Help: HelpTextCacheLookups,
		},
		[]string{LabelResult},
	)
)

// Dictionary metrics
var (
	DictionaryEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameDictionaryEntries,
			Help: HelpTextDictionaryEntries,
		},
	)

	DictionaryLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDictionaryLoads,
			Help: HelpTextDictionaryLoads,
		},
		[]string{LabelResult},
	)
)

// ObserveResult records one processing result.
func ObserveResult(r result.ProcessingResult) {
	outcome := OutcomeSuccess
	if !r.Success {
		outcome = OutcomeFailure
	}
	ResultsTotal.WithLabelValues(outcome).Inc()
	ShortNameLength.Observe(float64(r.CharacterCount))

	for _, c := range r.Components {
		for _, rule := range c.RulesApplied {
			RulesAppliedTotal.WithLabelValues(string(rule)).Inc()
			if rule == result.RuleDropForBudget {
				ComponentsDropped.WithLabelValues(strconv.Itoa(int(c.Position))).Inc()
			}
		}
	}
}

// ObserveDictionaryLoad records a load attempt and, on success, the new size.
func ObserveDictionaryLoad(entries int, err error) {
	if err != nil {
		DictionaryLoads.WithLabelValues(ResultError).Inc()
		return
	}
	DictionaryLoads.WithLabelValues(ResultOK).Inc()
	DictionaryEntries.Set(float64(entries))
}

// ObserveCache records a result cache lookup.
func ObserveCache(hit bool) {
	if hit {
		CacheLookups.WithLabelValues(ResultHit).Inc()
		return
	}
	CacheLookups.WithLabelValues(ResultMiss).Inc()
}
