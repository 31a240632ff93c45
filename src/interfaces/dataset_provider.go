package interfaces

import "index-observer/src/models"

// -----------------------------------------------------------------------------
// IDatasetProvider hands out the live dataset snapshot.
// -----------------------------------------------------------------------------

type IDatasetProvider interface {
	// Current returns nil until a dataset has been loaded.
	Current() *models.MDataset
}
