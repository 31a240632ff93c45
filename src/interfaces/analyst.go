package interfaces

import (
	"context"

	"index-observer/src/models"
)

// -----------------------------------------------------------------------------
// IAnalyst produces a natural-language reading of a price series.
// -----------------------------------------------------------------------------

type IAnalyst interface {
	Analyze(ctx context.Context, indexName string, points []models.MBucket) (string, error)
}
