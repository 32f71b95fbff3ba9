package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/robfig/cron/v3"
)

// ArrivalTokenJob mints arrival tokens for in-transit shipments whose
// containers are fully scanned but which have no token yet. Running this
// on a schedule keeps minting out of the scan hot path.
//
// Token values are returned by the handler but deliberately never logged.
type ArrivalTokenJob struct {
	uowFactory commands.ShipmentUoWFactory
	handler    commands.MintArrivalTokenCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewArrivalTokenJob creates a job that mints pending arrival tokens every
// thirty seconds.
func NewArrivalTokenJob(
	uowFactory commands.ShipmentUoWFactory,
	handler commands.MintArrivalTokenCommandHandler,
	logger *slog.Logger,
) *ArrivalTokenJob {
	return &ArrivalTokenJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "arrival_token_job"),
	}
}

// Start begins the arrival token job to run every thirty seconds.
func (j *ArrivalTokenJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		if err := j.mintPending(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Arrival token job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Arrival token job started (running every 30 seconds)")
	return nil
}

// Stop stops the arrival token job.
func (j *ArrivalTokenJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Arrival token job stopped")
}

// mintPending finds shipments awaiting a token and mints one for each.
// A shipment that changed state between listing and minting is skipped.
func (j *ArrivalTokenJob) mintPending(ctx context.Context) error {
	uow := j.uowFactory.Create()
	shipments, err := uow.ShipmentRepository().GetAllAwaitingArrivalToken(ctx)
	if err != nil {
		return err
	}

	for _, awaiting := range shipments {
		cmd, cmdErr := commands.NewMintArrivalTokenCommand(awaiting.ID())
		if cmdErr != nil {
			return cmdErr
		}

		if _, mintErr := j.handler.Handle(ctx, cmd); mintErr != nil {
			if errors.Is(mintErr, shipment.ErrInvalidShipmentState) ||
				errors.Is(mintErr, commands.ErrShipmentNotFound) {
				continue
			}
			j.logger.ErrorContext(ctx, "Failed to mint arrival token",
				"shipment_id", awaiting.ID().String(), "error", mintErr)
		}
	}

	return nil
}
