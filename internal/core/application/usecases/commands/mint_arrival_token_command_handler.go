package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// MintArrivalTokenResult carries the freshly minted token and the
// confirmation link built from it. The token value appears here and in
// the link only; it is never written to logs.
type MintArrivalTokenResult struct {
	Token     string
	URL       string
	ExpiresAt time.Time
}

// MintArrivalTokenCommandHandler handles the business logic for arrival
// token minting. A token authorizes exactly one arrival confirmation;
// re-minting overwrites the stored value so earlier links stop resolving.
type MintArrivalTokenCommandHandler struct {
	uowFactory ShipmentUoWFactory
	ttl        time.Duration
	baseURL    string
}

// NewMintArrivalTokenCommandHandler creates a handler for token minting.
// ttl is the token lifetime and baseURL the public address of this API;
// minted links target the POST /api/v1/arrivals/:token/confirm route.
func NewMintArrivalTokenCommandHandler(
	uowFactory ShipmentUoWFactory,
	ttl time.Duration,
	baseURL string,
) MintArrivalTokenCommandHandler {
	return MintArrivalTokenCommandHandler{
		uowFactory: uowFactory,
		ttl:        ttl,
		baseURL:    baseURL,
	}
}

// Handle processes the mint command and returns the token with its link.
func (h MintArrivalTokenCommandHandler) Handle(
	ctx context.Context,
	cmd MintArrivalTokenCommand,
) (MintArrivalTokenResult, error) {
	if err := cmd.Validate(); err != nil {
		return MintArrivalTokenResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return MintArrivalTokenResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return MintArrivalTokenResult{}, ErrShipmentNotFound
	}
	if err != nil {
		return MintArrivalTokenResult{}, err
	}

	token, err := aggregate.MintArrivalToken(time.Now().UTC(), h.ttl)
	if err != nil {
		return MintArrivalTokenResult{}, err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return MintArrivalTokenResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return MintArrivalTokenResult{}, err
	}

	return MintArrivalTokenResult{
		Token:     token.Value(),
		URL:       fmt.Sprintf("%s/api/v1/arrivals/%s/confirm", h.baseURL, token.Value()),
		ExpiresAt: token.ExpiresAt(),
	}, nil
}
