package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts the online payment provider (Mercado Pago) used
// when a resident settles a monthly obligation by card or transfer.
//
// providerStatus is the provider's raw status ("approved", "rejected", ...).
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
