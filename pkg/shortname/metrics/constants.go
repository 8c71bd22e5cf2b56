package metrics

// Metric names
const (
	MetricNameResultsTotal      = "shortname_results_total"
	MetricNameRulesAppliedTotal = "shortname_rules_applied_total"
	MetricNameComponentsDropped = "shortname_components_dropped_total"
	MetricNameShortNameLength   = "shortname_length_characters"
	MetricNameDictionaryEntries = "shortname_dictionary_entries"
	MetricNameDictionaryLoads   = "shortname_dictionary_loads_total"
	MetricNameBatchDuration     = "shortname_batch_duration_seconds"
	MetricNameCacheLookups      = "shortname_cache_lookups_total"
)

// Metric help text
const (
	HelpTextResultsTotal      = "Descriptions processed, by outcome"
	HelpTextRulesAppliedTotal = "Transformation rules applied to components"
	HelpTextComponentsDropped = "Components dropped to fit the length limit, by position"
	HelpTextShortNameLength   = "Character count of generated short names"
	HelpTextDictionaryEntries = "Entries in the active abbreviation dictionary"
	HelpTextDictionaryLoads   = "Dictionary load attempts, by result"
	HelpTextBatchDuration     = "Wall time of batch runs in seconds"
	HelpTextCacheLookups      = "Result cache lookups, by result"
)

// Label names
const (
	LabelOutcome  = "outcome"
	LabelRule     = "rule"
	LabelPosition = "position"
	LabelResult   = "result"
)

// Label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	ResultOK    = "ok"
	ResultError = "error"
	ResultHit   = "hit"
	ResultMiss  = "miss"
)

// LengthBuckets cover short names up to and somewhat past the usual limit.
var LengthBuckets = []float64{5, 10, 15, 20, 25, 30, 35, 40, 50}
