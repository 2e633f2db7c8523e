package sink

import (
	"context"

	"github.com/nao1215/pagecrawl/internal/database"
	"github.com/nao1215/pagecrawl/internal/model"
)

// FetchStore persists fetch records. Both database.CrawlDB and
// database.PostgresDB implement it.
type FetchStore interface {
	InsertFetchRecord(ctx context.Context, record *database.FetchRecord) error
}

// DBSink records every fetch attempt, failed ones included, in a FetchStore.
type DBSink struct {
	store FetchStore
}

// NewDBSink creates a DBSink writing to store.
func NewDBSink(store FetchStore) *DBSink {
	return &DBSink{store: store}
}

// Record implements Recorder.
func (s *DBSink) Record(ctx context.Context, result *model.FetchResult) error {
	return s.store.InsertFetchRecord(ctx, database.NewFetchRecord(result))
}
