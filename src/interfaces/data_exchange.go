package interfaces

import "index-observer/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger is the outward surface that renders views for clients.
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// DatasetChanged tells connected clients that a new snapshot is live so
	// they receive a fresh view for their current selection.
	DatasetChanged(ds *models.MDataset)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop() error
}
