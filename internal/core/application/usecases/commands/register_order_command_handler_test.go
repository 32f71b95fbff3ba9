package commands_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRegisterOrderRepository struct{ mock.Mock }

func (m *MockRegisterOrderRepository) Add(ctx context.Context, o *fulfillment.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockRegisterOrderRepository) Update(_ context.Context, _ *fulfillment.Order) error {
	return nil
}
func (m *MockRegisterOrderRepository) Get(_ context.Context, _ kernel.UUID) (*fulfillment.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockRegisterOrderUoW struct{ mock.Mock }

func (m *MockRegisterOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRegisterOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRegisterOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRegisterOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockRegisterOrderUoWFactory struct{ mock.Mock }

func (m *MockRegisterOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func TestRegisterOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewRegisterOrderCommand(id, []packing.LineItem{kgLineItem(t, "tomato", 7.3)})

	repo := new(MockRegisterOrderRepository)
	uow := new(MockRegisterOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*fulfillment.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRegisterOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRegisterOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RegisterOrderCommand{} // not constructed properly
	factory := new(MockRegisterOrderUoWFactory)
	h := commands.NewRegisterOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestRegisterOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRegisterOrderCommand(kernel.NewUUID(), []packing.LineItem{kgLineItem(t, "tomato", 7.3)})

	uow := new(MockRegisterOrderUoW)
	factory := new(MockRegisterOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewRegisterOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestRegisterOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRegisterOrderCommand(kernel.NewUUID(), []packing.LineItem{kgLineItem(t, "tomato", 7.3)})

	repo := new(MockRegisterOrderRepository)
	uow := new(MockRegisterOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*fulfillment.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRegisterOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRegisterOrderCommand(kernel.NewUUID(), []packing.LineItem{kgLineItem(t, "tomato", 7.3)})

	repo := new(MockRegisterOrderRepository)
	uow := new(MockRegisterOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*fulfillment.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRegisterOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
