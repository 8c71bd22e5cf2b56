package shortname

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/shortname/pkg/shortname/abbrev"
	"github.com/cognicore/shortname/pkg/shortname/budget"
	"github.com/cognicore/shortname/pkg/shortname/classify"
	"github.com/cognicore/shortname/pkg/shortname/dictionary"
	"github.com/cognicore/shortname/pkg/shortname/metrics"
	"github.com/cognicore/shortname/pkg/shortname/result"
	"github.com/cognicore/shortname/pkg/shortname/ruleset"
	"github.com/cognicore/shortname/pkg/shortname/store"
)

// DefaultCacheSize is the number of results remembered per dictionary
// when Options.CacheSize is zero.
const DefaultCacheSize = 1024

// Message texts shared by the pipeline and its callers.
const (
	NoDictionaryWarning = "No dictionary loaded; abbreviations were not applied"
	CancelledError      = "Batch cancelled before this description was processed"
)

// Engine is the short-name generator facade. It is safe for concurrent
// use; the dictionary can be replaced at any time without blocking
// callers, which keep working against the snapshot they started with.
type Engine struct {
	rules     *ruleset.Ruleset
	logger    *slog.Logger
	workers   int
	cacheSize int

	active atomic.Pointer[snapshot]
}

// snapshot is everything derived from one dictionary. It is never
// mutated after install except for its own result cache.
type snapshot struct {
	dict       *dictionary.Dictionary
	classifier *classify.Classifier
	abbrev     *abbrev.Engine
	cache      *lru.Cache[string, result.ProcessingResult]
}

// Options configures an Engine
type Options struct {
	Rules      *ruleset.Ruleset
	Dictionary *dictionary.Dictionary
	Logger     *slog.Logger

	// Workers bounds ProcessBatch concurrency. Zero means GOMAXPROCS.
	Workers int

	// CacheSize is the per-dictionary result cache size. Zero selects
	// DefaultCacheSize, a negative value disables caching.
	CacheSize int
}

// New creates an engine. A nil dictionary starts the engine in the
// empty state, where processing still works but nothing is abbreviated.
func New(opts Options) *Engine {
	e := &Engine{
		rules:     opts.Rules,
		logger:    opts.Logger,
		workers:   opts.Workers,
		cacheSize: opts.CacheSize,
	}
	if e.rules == nil {
		e.rules = ruleset.Default()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	if e.cacheSize == 0 {
		e.cacheSize = DefaultCacheSize
	}

	dict := opts.Dictionary
	if dict == nil {
		dict = dictionary.New()
	}
	e.install(dict)
	return e
}

func (e *Engine) install(dict *dictionary.Dictionary) {
	snap := &snapshot{
		dict:       dict,
		classifier: classify.NewClassifier(e.rules, dict),
		abbrev:     abbrev.NewEngine(e.rules, dict),
	}
	if e.cacheSize > 0 {
		// only fails for a non-positive size
		snap.cache, _ = lru.New[string, result.ProcessingResult](e.cacheSize)
	}
	e.active.Store(snap)
	metrics.DictionaryEntries.Set(float64(dict.Len()))
}

// Rules returns the ruleset the engine was built with.
func (e *Engine) Rules() *ruleset.Ruleset {
	return e.rules
}

// Dictionary returns the active dictionary.
func (e *Engine) Dictionary() *dictionary.Dictionary {
	return e.active.Load().dict
}

// SetDictionary replaces the active dictionary.
func (e *Engine) SetDictionary(dict *dictionary.Dictionary) {
	if dict == nil {
		dict = dictionary.New()
	}
	e.install(dict)
}

// LoadDictionary loads a dictionary file and makes it active. On error
// the previous dictionary stays active.
func (e *Engine) LoadDictionary(path string) error {
	dict, err := dictionary.Load(path)
	return e.finishLoad(path, dict, err)
}

// LoadDictionaryFromStore loads the dictionary table held by st.
func (e *Engine) LoadDictionaryFromStore(ctx context.Context, st store.Store, source string) error {
	dict, err := store.LoadDictionary(ctx, st, source)
	return e.finishLoad(source, dict, err)
}

func (e *Engine) finishLoad(source string, dict *dictionary.Dictionary, err error) error {
	if err != nil {
		metrics.ObserveDictionaryLoad(0, err)
		e.logger.Warn("dictionary load failed, keeping previous dictionary",
			"source", source,
			"entries", e.DictionaryEntryCount(),
			"error", err)
		return err
	}

	metrics.ObserveDictionaryLoad(dict.Len(), nil)
	for _, w := range dict.Warnings() {
		e.logger.Warn("dictionary row skipped", "source", source, "reason", w)
	}
	e.install(dict)
	e.logger.Info("dictionary loaded",
		"source", source,
		"entries", dict.Len(),
		"skipped", len(dict.Warnings()),
		"revision", dict.Revision())
	return nil
}

// DictionaryEntryCount returns the number of unique terms in the active
// dictionary.
func (e *Engine) DictionaryEntryCount() int {
	return e.active.Load().dict.Len()
}

// DictionaryLoaded reports whether a non-empty dictionary is active.
func (e *Engine) DictionaryLoaded() bool {
	return !e.active.Load().dict.Empty()
}

// Status describes the active dictionary.
type Status struct {
	Loaded    bool   `json:"dictionary_loaded"`
	Entries   int    `json:"abbreviation_count"`
	Source    string `json:"dictionary_path"`
	Revision  string `json:"revision"`
	Skipped   int    `json:"skipped_rows"`
	MaxLength int    `json:"max_length"`
}

// Status returns the current dictionary status.
func (e *Engine) Status() Status {
	d := e.active.Load().dict
	return Status{
		Loaded:    !d.Empty(),
		Entries:   d.Len(),
		Source:    d.Source(),
		Revision:  d.Revision(),
		Skipped:   len(d.Warnings()),
		MaxLength: e.rules.MaxLength,
	}
}

// Process converts one free-form description into a short name. It never
// fails: every problem is reported through the result's messages and
// success flag.
func (e *Engine) Process(text string) result.ProcessingResult {
	return e.processWith(e.active.Load(), text)
}

func (e *Engine) processWith(snap *snapshot, text string) result.ProcessingResult {
	if snap.cache != nil {
		if r, ok := snap.cache.Get(text); ok {
			metrics.ObserveCache(true)
			metrics.ObserveResult(r)
			return r.Clone()
		}
		metrics.ObserveCache(false)
	}

	r := e.run(snap, text)
	metrics.ObserveResult(r)
	if snap.cache != nil {
		snap.cache.Add(text, r.Clone())
	}
	return r
}

// run is the pipeline: classify, abbreviate, enforce the budget, assemble.
func (e *Engine) run(snap *snapshot, text string) result.ProcessingResult {
	limit := e.rules.MaxLength

	var msgs result.Messages
	if snap.dict.Empty() {
		msgs.Warnf(NoDictionaryWarning)
	} else if n := len(snap.dict.Warnings()); n > 0 {
		msgs.Warnf("Dictionary %s skipped %d malformed row(s) when it was loaded", snap.dict.Source(), n)
	}

	a, err := snap.classifier.Classify(text)
	if err != nil {
		msgs.Errorf("Missing mandatory %s: description is empty", result.ProductType)
		return result.Assemble(text, result.EmptyComponents(), msgs, limit)
	}
	msgs = append(msgs, a.Notes...)

	comps, resolved := snap.abbrev.Resolve(&a)
	msgs = append(msgs, resolved...)

	out := budget.Enforce(comps, limit)
	msgs = append(msgs, out.Messages...)

	e.logger.Debug("description processed",
		"input", text,
		"length", out.Length,
		"dropped", len(out.Dropped))
	return result.Assemble(text, out.Components, msgs, limit)
}

// ProcessBatch processes texts independently with at most Options.Workers
// goroutines and returns one result per input, in input order. All items
// use the dictionary that was active when the call started.
//
// Cancelling ctx stops scheduling new items; items already running finish.
// Items never started get a failed result, and the context error is
// returned alongside the full result slice.
func (e *Engine) ProcessBatch(ctx context.Context, texts []string) ([]result.ProcessingResult, error) {
	started := time.Now()
	batchID := ulid.Make().String()
	snap := e.active.Load()
	results := make([]result.ProcessingResult, len(texts))
	scheduled := make([]bool, len(texts))

	logger := e.logger.With("batch_id", batchID)
	logger.Info("batch started", "items", len(texts), "workers", e.workers)

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, text := range texts {
		if ctx.Err() != nil {
			break
		}
		scheduled[i] = true
		i, text := i, text
		g.Go(func() error {
			results[i] = e.safeProcess(logger, snap, text)
			return nil
		})
	}
	_ = g.Wait()

	skipped := 0
	for i, ok := range scheduled {
		if ok {
			continue
		}
		skipped++
		var msgs result.Messages
		msgs.Errorf(CancelledError)
		results[i] = result.Assemble(texts[i], result.EmptyComponents(), msgs, e.rules.MaxLength)
	}

	metrics.BatchDuration.Observe(time.Since(started).Seconds())
	if err := ctx.Err(); err != nil && skipped > 0 {
		logger.Warn("batch cancelled", "processed", len(texts)-skipped, "skipped", skipped)
		return results, fmt.Errorf("batch %s: %w", batchID, err)
	}
	logger.Info("batch finished", "items", len(texts), "elapsed", time.Since(started))
	return results, nil
}

// safeProcess converts a panic in one item into that item's failure.
func (e *Engine) safeProcess(logger *slog.Logger, snap *snapshot, text string) (r result.ProcessingResult) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("panic while processing description", "input", text, "panic", p)
			var msgs result.Messages
			msgs.Errorf("Internal error while processing description: %v", p)
			r = result.Assemble(text, result.EmptyComponents(), msgs, e.rules.MaxLength)
		}
	}()
	return e.processWith(snap, text)
}
