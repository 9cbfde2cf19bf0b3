package commands_test

import (
	"context"
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_AcceptOrderCommandHandler_should_assign_deliverer(t *testing.T) {
	ctx := context.Background()
	cmd, err := commands.NewAcceptOrderCommand(42, 7)
	require.NoError(t, err)

	awaiting := storedOrder(t, 42, order.AwaitingDeliverer, nil)
	delivererID := int64(7)
	accepted := storedOrder(t, 42, order.InPreparation, &delivererID)

	repo := &MockOrderRepository{}
	reader := &MockOrderRepository{}
	uow := &MockUnitOfWork{}
	factory := &MockUnitOfWorkFactory{}

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(repo)
	reader.On("Get", ctx, int64(42)).Return(accepted, nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", ctx, int64(42)).Return(awaiting, nil).Once(),
		repo.On("Update", ctx, awaiting).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAcceptOrderCommandHandler(factory, reader)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InPreparation, awaiting.Status())
	require.NotNil(t, awaiting.DelivererID())
	assert.Equal(t, int64(7), *awaiting.DelivererID())
	assert.Equal(t, accepted, result)
	mock.AssertExpectationsForObjects(t, repo, reader, uow, factory)
}

func Test_AcceptOrderCommandHandler_should_absorb_duplicate_accept(t *testing.T) {
	ctx := context.Background()
	cmd, err := commands.NewAcceptOrderCommand(42, 9)
	require.NoError(t, err)

	firstDeliverer := int64(7)
	alreadyAccepted := storedOrder(t, 42, order.InPreparation, &firstDeliverer)

	repo := &MockOrderRepository{}
	reader := &MockOrderRepository{}
	uow := &MockUnitOfWork{}
	factory := &MockUnitOfWorkFactory{}

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, int64(42)).Return(alreadyAccepted, nil).Once()
	reader.On("Get", ctx, int64(42)).Return(alreadyAccepted, nil).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, reader)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	// The first deliverer keeps the order; the duplicate wrote nothing.
	require.NotNil(t, result.DelivererID())
	assert.Equal(t, int64(7), *result.DelivererID())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mock.AssertExpectationsForObjects(t, repo, reader, uow, factory)
}

func Test_AcceptOrderCommandHandler_should_reject_order_awaiting_restaurant(t *testing.T) {
	ctx := context.Background()
	cmd, err := commands.NewAcceptOrderCommand(42, 7)
	require.NoError(t, err)

	fresh := storedOrder(t, 42, order.AwaitingRestaurant, nil)

	repo := &MockOrderRepository{}
	uow := &MockUnitOfWork{}
	factory := &MockUnitOfWorkFactory{}

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, int64(42)).Return(fresh, nil).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, &MockOrderRepository{})
	result, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Nil(t, result)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func Test_AcceptOrderCommandHandler_should_propagate_missing_order(t *testing.T) {
	ctx := context.Background()
	cmd, err := commands.NewAcceptOrderCommand(404, 7)
	require.NoError(t, err)

	repo := &MockOrderRepository{}
	uow := &MockUnitOfWork{}
	factory := &MockUnitOfWorkFactory{}

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, int64(404)).Return(nil, errs.NewObjectNotFoundError("orderId", 404)).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, &MockOrderRepository{})
	result, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, result)
}

func Test_AcceptOrderCommand_constructor_should_validate_inputs(t *testing.T) {
	_, err := commands.NewAcceptOrderCommand(0, 7)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewAcceptOrderCommand(42, 0)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	var cmd commands.AcceptOrderCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrAcceptOrderCommandIsNotConstructed)
}
