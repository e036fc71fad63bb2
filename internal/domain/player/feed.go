package player

import "context"

// Feed supplies the raw records a draft pool is built from.
type Feed interface {
	FetchRecords(ctx context.Context) ([]Record, error)
}
