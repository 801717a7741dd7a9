package storage

import "swapScope/internal/model"

// Storage defines a sink for quote results and pool snapshots.
type Storage interface {
	PutQuoteBatch(quotes []model.QuoteRecord) error
	PutSnapshotBatch(snapshots []model.PoolSnapshot) error
}
