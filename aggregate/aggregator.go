// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package aggregate

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/query"
	"github.com/poiesic/omnisearch/storage"
)

const defaultTimeout = 10 * time.Second

// Outcome is the result of searching one source.
type Outcome struct {
	SourceID string
	Query    *query.ParsedQuery // The input as parsed with the source's vocabulary
	Results  []core.Result
	Err      error
	Elapsed  time.Duration
}

// Response holds one Outcome per source, in source registration order.
type Response struct {
	Query    string
	Outcomes []Outcome
}

// Merged returns the results of every source ordered by score, highest first.
// Results with equal scores keep source order.
func (r *Response) Merged() []core.Result {
	var merged []core.Result
	for _, o := range r.Outcomes {
		merged = append(merged, o.Results...)
	}
	slices.SortStableFunc(merged, func(a, b core.Result) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return merged
}

// ResultCount returns the number of results across all sources.
func (r *Response) ResultCount() int {
	n := 0
	for _, o := range r.Outcomes {
		n += len(o.Results)
	}
	return n
}

// Err joins the errors of all failed sources. It returns nil when every
// source succeeded.
func (r *Response) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.SourceID, o.Err))
		}
	}
	return errors.Join(errs...)
}

// Aggregator searches many sources concurrently.
type Aggregator struct {
	sources     []Source
	parsers     []*query.Parser
	pool        *ants.Pool
	poolSize    int
	history     storage.HistoryRepository
	timeout     time.Duration
	maxAttempts int
	retryDelay  time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator) error

// antsLoggerAdapter adapts slog.Logger to the ants.Logger interface.
type antsLoggerAdapter struct {
	logger *slog.Logger
}

var _ ants.Logger = (*antsLoggerAdapter)(nil)

func (al *antsLoggerAdapter) Printf(format string, args ...any) {
	al.logger.Warn(fmt.Sprintf(format, args...))
}

// WithPoolSize sets the number of sources searched concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(a *Aggregator) error {
		if size < 1 {
			size = 1
		}
		a.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// WithTimeout bounds each source's search. Default is 10 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(a *Aggregator) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", timeout)
		}
		a.timeout = timeout
		return nil
	}
}

// WithHistory records every search in repo.
func WithHistory(repo storage.HistoryRepository) Option {
	return func(a *Aggregator) error {
		a.history = repo
		return nil
	}
}

// WithRetry retries searches failing with ErrTemporary up to maxAttempts
// times in total, starting with baseDelay between attempts.
// Default is a single attempt.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(a *Aggregator) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		a.maxAttempts = maxAttempts
		a.retryDelay = baseDelay
		return nil
	}
}

// WithClock sets the time source used for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) error {
		if now == nil {
			now = time.Now
		}
		a.now = now
		return nil
	}
}

func newPool(size int, logger *slog.Logger) (*ants.Pool, error) {
	return ants.NewPool(size, ants.WithLogger(&antsLoggerAdapter{logger: logger}))
}

// NewAggregator creates an aggregator over sources. Source IDs must be
// unique; the order of sources is the order of outcomes in every Response.
func NewAggregator(sources []Source, opts ...Option) (*Aggregator, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	a := &Aggregator{
		poolSize:    max(1, runtime.NumCPU()/2),
		timeout:     defaultTimeout,
		maxAttempts: 1,
		now:         time.Now,
		logger:      slog.Default(),
	}

	seen := make(map[string]bool, len(sources))
	for _, src := range sources {
		if src == nil {
			return nil, ErrNilSource
		}
		if seen[src.ID()] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSource, src.ID())
		}
		seen[src.ID()] = true
		a.sources = append(a.sources, src)
		a.parsers = append(a.parsers, query.NewParser(src.Options()...))
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	// The pool is built last so it logs through the final logger.
	pool, err := newPool(a.poolSize, a.logger)
	if err != nil {
		return nil, err
	}
	a.pool = pool

	return a, nil
}

// SourceIDs returns the IDs of the sources in registration order.
func (a *Aggregator) SourceIDs() []string {
	ids := make([]string, len(a.sources))
	for i, src := range a.sources {
		ids[i] = src.ID()
	}
	return ids
}

// Search sends input to every source and waits for all of them.
func (a *Aggregator) Search(ctx context.Context, input string) (*Response, error) {
	return a.SearchWithMonitor(ctx, input, nil)
}

// SearchWithMonitor sends input to every source and waits for all of them,
// reporting progress to monitor. Source failures are reported in the
// outcomes; the returned error is only set when the search could not run.
// Once monitor.Start has been called, monitor.Finish always follows; if
// the pool shuts down mid-search, sources that never ran carry the error.
func (a *Aggregator) SearchWithMonitor(ctx context.Context, input string, monitor Monitor) (*Response, error) {
	if a.pool == nil || a.pool.IsClosed() {
		return nil, ErrPoolClosed
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	ids := a.SourceIDs()
	monitor.Start(input, ids)

	resp := &Response{
		Query:    input,
		Outcomes: make([]Outcome, len(a.sources)),
	}

	var wg sync.WaitGroup
	for i, src := range a.sources {
		q := a.parsers[i].Parse(input)
		resp.Outcomes[i] = Outcome{SourceID: src.ID(), Query: q}

		wg.Add(1)
		err := a.pool.Submit(func() {
			defer wg.Done()
			monitor.SourceStarted(src.ID(), q)
			a.searchSource(ctx, src, &resp.Outcomes[i])
			monitor.SourceFinished(resp.Outcomes[i])
		})
		if err != nil {
			wg.Done()
			if errors.Is(err, ants.ErrPoolClosed) {
				err = ErrPoolClosed
			}
			for j := i; j < len(a.sources); j++ {
				resp.Outcomes[j].SourceID = a.sources[j].ID()
				resp.Outcomes[j].Err = err
			}
			wg.Wait()
			monitor.Finish(resp)
			return nil, err
		}
	}
	wg.Wait()

	a.recordHistory(ctx, resp)
	monitor.Finish(resp)
	return resp, nil
}

// searchSource fills in outcome for one source. It never panics.
func (a *Aggregator) searchSource(ctx context.Context, src Source, outcome *Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("source panicked", "source", src.ID(), "panic", r)
			outcome.Results = nil
			outcome.Err = fmt.Errorf("%w: %v", ErrSourcePanic, r)
		}
		outcome.Elapsed = time.Since(start)
	}()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var results []core.Result
	err := retryTemporary(ctx, a.logger, func() error {
		var err error
		results, err = a.searchAuthorized(ctx, src, outcome.Query)
		return err
	}, a.maxAttempts, a.retryDelay)

	if err != nil {
		a.logger.Warn("source search failed", "source", src.ID(), "err", err)
		outcome.Err = err
		return
	}
	for i := range results {
		if results[i].SourceID == "" {
			results[i].SourceID = src.ID()
		}
	}
	a.logger.Debug("source search finished", "source", src.ID(), "results", len(results))
	outcome.Results = results
}

// searchAuthorized runs one search, reauthorizing and retrying once when
// the source rejects its credentials.
func (a *Aggregator) searchAuthorized(ctx context.Context, src Source, q *query.ParsedQuery) ([]core.Result, error) {
	results, err := src.Search(ctx, q)
	if err == nil || !errors.Is(err, ErrUnauthorized) {
		return results, err
	}

	reauth, ok := src.(Reauthorizer)
	if !ok {
		return nil, err
	}
	a.logger.Info("reauthorizing source", "source", src.ID())
	if rerr := reauth.Reauthorize(ctx); rerr != nil {
		return nil, fmt.Errorf("%w: reauthorize: %w", err, rerr)
	}
	return src.Search(ctx, q)
}

func (a *Aggregator) recordHistory(ctx context.Context, resp *Response) {
	if a.history == nil || core.NormalizeQuery(resp.Query) == "" {
		return
	}
	entry := core.NewHistoryEntry(resp.Query, a.SourceIDs(), resp.ResultCount(), a.now())
	if err := a.history.RecordSearch(ctx, entry); err != nil {
		a.logger.Warn("failed to record search history", "query", entry.Query, "err", err)
	}
}

// Close releases the worker pool. Searching after Close returns ErrPoolClosed.
func (a *Aggregator) Close() {
	if a.pool != nil {
		a.pool.Release()
	}
}
