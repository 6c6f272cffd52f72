package fetch

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"explaindeck/internal/article"
)

// Source lists record identifiers and retrieves their contents.
type Source interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) ([]byte, error)
}

// Result holds the outcome of one full load. Per-record failures are
// collected in Errors and never abort the load; a listing failure is
// returned by FetchAll itself.
type Result struct {
	Records []article.Record
	Errors  []error
}

// FetchAll lists the source and retrieves every record concurrently,
// waiting for all requests to settle. Records that fail to fetch or
// decode are skipped with a warning. The returned records are sorted
// by timestamp, newest first, so the order does not depend on fetch
// completion timing.
func FetchAll(ctx context.Context, src Source) (Result, error) {
	names, err := src.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("listing records: %w", err)
	}

	var (
		mu     sync.Mutex
		result Result
		wg     sync.WaitGroup
	)

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			rec, err := fetchOne(ctx, src, name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn("skipping record", "name", name, "err", err)
				result.Errors = append(result.Errors, err)
				return
			}
			result.Records = append(result.Records, rec)
		}(name)
	}

	wg.Wait()

	sort.SliceStable(result.Records, func(i, j int) bool {
		return result.Records[i].TimestampUTC.After(result.Records[j].TimestampUTC)
	})

	return result, nil
}

func fetchOne(ctx context.Context, src Source, name string) (article.Record, error) {
	data, err := src.Get(ctx, name)
	if err != nil {
		return article.Record{}, fmt.Errorf("fetching %s: %w", name, err)
	}
	return article.Decode(data, name)
}
