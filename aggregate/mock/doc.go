// Package mock provides test double implementations of aggregate.Source.
//
// The mocks allow aggregator tests to run without any external search
// service and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	src := mock.NewMockSource("jira", query.WithKeywords("project"))
//	results, err := src.Search(ctx, q)
//
//	// Custom behavior injection
//	src.SearchFunc = func(ctx context.Context, q *query.ParsedQuery) ([]core.Result, error) {
//	    return nil, errors.New("service down")
//	}
//
//	// Check call counts
//	count := src.CallCount()
//
// # Default Behavior
//
//   - MockSource: returns one result echoing the parsed query text
//   - MockReauthSource: a MockSource that also implements Reauthorize
package mock
