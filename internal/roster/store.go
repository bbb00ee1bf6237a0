package roster

import "context"

// Store reads the full roster from the backing store. Implementations must
// return records with at least FullName populated; match keys are derived by
// the service after load. The core never writes to this store.
type Store interface {
	LoadAll(ctx context.Context) ([]Record, error)
}
