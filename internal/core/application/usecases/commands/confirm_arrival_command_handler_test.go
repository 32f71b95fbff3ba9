package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockConfirmShipmentRepository struct{ mock.Mock }

func (m *MockConfirmShipmentRepository) Add(_ context.Context, _ *shipment.Shipment) error {
	return errors.New("not implemented in mock")
}
func (m *MockConfirmShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockConfirmShipmentRepository) Get(_ context.Context, _ kernel.UUID) (*shipment.Shipment, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockConfirmShipmentRepository) GetByOrder(_ context.Context, _ kernel.UUID) (*shipment.Shipment, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockConfirmShipmentRepository) GetByArrivalToken(ctx context.Context, token string) (*shipment.Shipment, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}
func (m *MockConfirmShipmentRepository) MarkScanned(_ context.Context, _ kernel.UUID, _ string, _ time.Time) (bool, error) {
	return false, errors.New("not implemented in mock")
}
func (m *MockConfirmShipmentRepository) ScanCounts(_ context.Context, _ kernel.UUID) (ports.ScanCounts, error) {
	return ports.ScanCounts{}, errors.New("not implemented in mock")
}
func (m *MockConfirmShipmentRepository) ConsumeArrivalToken(ctx context.Context, shipmentID kernel.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, shipmentID, at)
	return args.Bool(0), args.Error(1)
}
func (m *MockConfirmShipmentRepository) GetAllAwaitingArrivalToken(_ context.Context) ([]*shipment.Shipment, error) {
	return nil, errors.New("not implemented in mock")
}

type MockConfirmOrderRepository struct{ mock.Mock }

func (m *MockConfirmOrderRepository) Add(_ context.Context, _ *fulfillment.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockConfirmOrderRepository) Update(ctx context.Context, o *fulfillment.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockConfirmOrderRepository) Get(ctx context.Context, id kernel.UUID) (*fulfillment.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Order), args.Error(1)
}

type MockConfirmUoW struct{ mock.Mock }

func (m *MockConfirmUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockConfirmUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockConfirmUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockConfirmUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockConfirmUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}

func (m *MockConfirmUoW) ShelfSlotRepository() ports.ShelfSlotRepository {
	args := m.Called()
	return args.Get(0).(ports.ShelfSlotRepository)
}

func (m *MockConfirmUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockConfirmUoWFactory struct{ mock.Mock }

func (m *MockConfirmUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

func shippedOrder(t *testing.T, id kernel.UUID) *fulfillment.Order {
	t.Helper()
	order := packedOrder(t, id)
	require.NoError(t, order.MarkStaged())
	require.NoError(t, order.MarkShipped())
	return order
}

func mintedShipment(t *testing.T, orderID kernel.UUID, ttl time.Duration) (*shipment.Shipment, string) {
	t.Helper()
	aggregate := inTransitShipment(t, kernel.NewUUID(), "BC-1")
	token, err := aggregate.MintArrivalToken(time.Now().UTC(), ttl)
	require.NoError(t, err)

	restored, err := shipment.RestoreShipment(
		aggregate.ID(), orderID, aggregate.Status(), aggregate.Containers(), aggregate.ArrivalToken(),
	)
	require.NoError(t, err)
	return restored, token.Value()
}

func TestConfirmArrivalCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	order := shippedOrder(t, orderID)
	aggregate, token := mintedShipment(t, orderID, time.Hour)
	cmd, _ := commands.NewConfirmArrivalCommand(token)

	shipmentRepo := new(MockConfirmShipmentRepository)
	orderRepo := new(MockConfirmOrderRepository)
	uow := new(MockConfirmUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetByArrivalToken", mock.Anything, token).Return(aggregate, nil).Once(),
		shipmentRepo.On("ConsumeArrivalToken", mock.Anything, aggregate.ID(), mock.AnythingOfType("time.Time")).
			Return(true, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(order, nil).Once(),
		shipmentRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, order).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConfirmUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmArrivalCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.ShipmentID.IsEqual(aggregate.ID()))
	assert.Equal(t, shipment.Arrived, aggregate.Status())
	assert.Equal(t, fulfillment.Arrived, order.Status())
	shipmentRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmArrivalCommandHandler_Handle_UnknownToken(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewConfirmArrivalCommand("no-such-token")

	shipmentRepo := new(MockConfirmShipmentRepository)
	uow := new(MockConfirmUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetByArrivalToken", mock.Anything, "no-such-token").
			Return(nil, errs.NewObjectNotFoundError("arrivalToken", "no-such-token")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConfirmUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmArrivalCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, shipment.ErrTokenNotFound)
}

func TestConfirmArrivalCommandHandler_Handle_ExpiredToken(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	aggregate, token := mintedShipment(t, orderID, 0) // ttl of zero expires immediately
	cmd, _ := commands.NewConfirmArrivalCommand(token)

	shipmentRepo := new(MockConfirmShipmentRepository)
	uow := new(MockConfirmUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetByArrivalToken", mock.Anything, token).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConfirmUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmArrivalCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, shipment.ErrTokenExpired)
}

func TestConfirmArrivalCommandHandler_Handle_LostConsumeRace(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	aggregate, token := mintedShipment(t, orderID, time.Hour)
	cmd, _ := commands.NewConfirmArrivalCommand(token)

	shipmentRepo := new(MockConfirmShipmentRepository)
	uow := new(MockConfirmUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetByArrivalToken", mock.Anything, token).Return(aggregate, nil).Once(),
		// a concurrent confirmation committed first
		shipmentRepo.On("ConsumeArrivalToken", mock.Anything, aggregate.ID(), mock.AnythingOfType("time.Time")).
			Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConfirmUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmArrivalCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, shipment.ErrTokenAlreadyUsed)
}
