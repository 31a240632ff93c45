package interfaces

import (
	"context"

	"index-observer/src/models"
)

// -----------------------------------------------------------------------------
// IDataSource loads the raw observation table from wherever it lives.
// -----------------------------------------------------------------------------

type IDataSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// Load reads every observation. Unparseable cells are returned as nil
	// fields and invalid dates as zero times; only unreadable input is an error.
	Load(ctx context.Context) ([]models.MObservation, error)
}
