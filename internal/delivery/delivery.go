// Package delivery defines the contract every transport front end fulfils.
package delivery

import "context"

// Delivery is a long-running transport server. Implementations block in
// Serve until the server stops; shutdown is driven through fx lifecycle
// hooks registered by the implementation.
type Delivery interface {
	Serve(ctx context.Context) error
}
