package mock

import (
	"context"
	"sync/atomic"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/query"
)

// MockSource is a test double for aggregate.Source.
// It allows custom behavior injection via function fields and is safe for
// concurrent use as long as the injected functions are.
type MockSource struct {
	// SearchFunc is called by Search if set.
	// If nil, returns a single result titled with the query text.
	SearchFunc func(ctx context.Context, q *query.ParsedQuery) ([]core.Result, error)

	id        string
	options   []query.Option
	callCount atomic.Int64
}

// NewMockSource creates a mock source with the given ID and parser options.
func NewMockSource(id string, options ...query.Option) *MockSource {
	return &MockSource{id: id, options: options}
}

// ID returns the source ID.
func (m *MockSource) ID() string {
	return m.id
}

// Options returns the parser options the mock was created with.
func (m *MockSource) Options() []query.Option {
	return m.options
}

// Search runs SearchFunc, or echoes the query text as one result.
func (m *MockSource) Search(ctx context.Context, q *query.ParsedQuery) ([]core.Result, error) {
	m.callCount.Add(1)

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q)
	}

	text, _ := q.Text()
	return []core.Result{{
		SourceID: m.id,
		Title:    text,
		Score:    1,
	}}, nil
}

// CallCount returns the number of times Search was called.
func (m *MockSource) CallCount() int {
	return int(m.callCount.Load())
}

// MockReauthSource is a MockSource that can refresh its credentials.
type MockReauthSource struct {
	*MockSource

	// ReauthorizeFunc is called by Reauthorize if set.
	// If nil, reauthorization succeeds.
	ReauthorizeFunc func(ctx context.Context) error

	reauthCount atomic.Int64
}

// NewMockReauthSource creates a reauthorizable mock source.
func NewMockReauthSource(id string, options ...query.Option) *MockReauthSource {
	return &MockReauthSource{MockSource: NewMockSource(id, options...)}
}

// Reauthorize runs ReauthorizeFunc.
func (m *MockReauthSource) Reauthorize(ctx context.Context) error {
	m.reauthCount.Add(1)

	if m.ReauthorizeFunc != nil {
		return m.ReauthorizeFunc(ctx)
	}
	return nil
}

// ReauthCount returns the number of times Reauthorize was called.
func (m *MockReauthSource) ReauthCount() int {
	return int(m.reauthCount.Load())
}
