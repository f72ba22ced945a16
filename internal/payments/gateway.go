package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrDeclined = errors.New("payment declined by gateway")

// Gateway charges external payment methods. The real club wires an acquiring
// provider here; the mock stands in for it everywhere else.
type Gateway interface {
	Charge(ctx context.Context, userID string, amount float64, method string) (transactionID string, err error)
}

type mockGateway struct{}

func NewMockGateway() Gateway {
	return &mockGateway{}
}

func (g *mockGateway) Charge(ctx context.Context, userID string, amount float64, method string) (string, error) {
	if amount <= 0 {
		return "", ErrDeclined
	}
	return fmt.Sprintf("txn_%s", uuid.NewString()), nil
}
