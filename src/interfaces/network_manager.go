package interfaces

import "context"

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for fetching remote resources over HTTP.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// Get performs a GET request to the specified URL with parameters.
	// Returns the response body as bytes or an error.
	Get(ctx context.Context, url string, params map[string]string) ([]byte, error)
}
