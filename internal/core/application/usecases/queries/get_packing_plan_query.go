package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPackingPlanQueryIsNotConstructed = errors.New(
	"GetPackingPlanQuery must be created via NewGetPackingPlanQuery constructor",
)

// GetPackingPlanQuery retrieves the persisted packing plan of an order.
type GetPackingPlanQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPackingPlanQuery creates a query for an order's packing plan.
func NewGetPackingPlanQuery(orderID kernel.UUID) (GetPackingPlanQuery, error) {
	query := GetPackingPlanQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return GetPackingPlanQuery{}, err
	}

	query.orderID = orderID
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPackingPlanQuery) Validate() error {
	return q.guard.Validate(ErrGetPackingPlanQueryIsNotConstructed)
}

// OrderID returns the order being queried.
func (q GetPackingPlanQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetPackingPlanQueryResponse represents one planned piece.
type GetPackingPlanQueryResponse struct {
	ID          kernel.UUID
	ProduceType string
	Mode        string
	Units       int
	EstWeightKg float64
	Liters      float64
	Sequence    int
}
