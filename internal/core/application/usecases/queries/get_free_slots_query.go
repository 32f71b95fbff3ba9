package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetFreeSlotsQueryIsNotConstructed = errors.New(
	"GetFreeSlotsQuery must be created via NewGetFreeSlotsQuery constructor",
)

// GetFreeSlotsQuery retrieves the free shelf slots of a logistic center
// for staging dashboards. The result is a snapshot; a listed slot can be
// claimed by the time a staging operation runs.
type GetFreeSlotsQuery struct { //nolint:recvcheck //using for validation
	logisticCenterID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetFreeSlotsQuery creates a query for a center's free slots.
func NewGetFreeSlotsQuery(logisticCenterID kernel.UUID) (GetFreeSlotsQuery, error) {
	query := GetFreeSlotsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := logisticCenterID.Validate(); err != nil {
		return GetFreeSlotsQuery{}, err
	}

	query.logisticCenterID = logisticCenterID
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetFreeSlotsQuery) Validate() error {
	return q.guard.Validate(ErrGetFreeSlotsQueryIsNotConstructed)
}

// LogisticCenterID returns the warehouse being queried.
func (q GetFreeSlotsQuery) LogisticCenterID() kernel.UUID {
	return q.logisticCenterID
}

// GetFreeSlotsQueryResponse represents one free shelf slot.
type GetFreeSlotsQueryResponse struct {
	ID   kernel.UUID
	Zone string
	Code string
}
