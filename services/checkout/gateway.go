package checkout

import (
	"context"

	"edupath/models"
)

// Gateway abstracts the hosted checkout the user is handed to after order
// creation. Open returns the URL of the hosted payment page; completion is
// reported back through the callbacks in CompletionHandler, not through the
// return value.
type Gateway interface {
	Open(ctx context.Context, cfg models.CheckoutConfig) (string, error)
}
