package commands_test

import (
	"context"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/negotiation"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/request"
	"procurement/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, r *request.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, r *request.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*request.Request)
	return r, args.Error(1)
}

func (m *MockRequestRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRequestRepository) ExistsByEvent(ctx context.Context, eventID int64) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

type MockNegotiationRepository struct{ mock.Mock }

func (m *MockNegotiationRepository) Add(ctx context.Context, n *negotiation.Negotiation) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNegotiationRepository) Update(ctx context.Context, n *negotiation.Negotiation) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNegotiationRepository) Get(ctx context.Context, id kernel.UUID) (*negotiation.Negotiation, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*negotiation.Negotiation)
	return n, args.Error(1)
}

func (m *MockNegotiationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNegotiationRepository) FindByRequest(ctx context.Context, requestID kernel.UUID) (*negotiation.Negotiation, error) {
	args := m.Called(ctx, requestID)
	n, _ := args.Get(0).(*negotiation.Negotiation)
	return n, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) FindByNegotiation(ctx context.Context, negotiationID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, negotiationID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

// MockUoW serves both commands.RequestUoW and commands.UoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) RequestRepository() ports.RequestRepository {
	return m.Called().Get(0).(ports.RequestRepository)
}

func (m *MockUoW) NegotiationRepository() ports.NegotiationRepository {
	return m.Called().Get(0).(ports.NegotiationRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	return m.Called().Get(0).(commands.RequestUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

func testParties(t require.TestingT, eventID int64) kernel.Parties {
	parties, err := kernel.NewParties(eventID, "Annual Summit", 42, "Acme Catering", "jdoe")
	require.NoError(t, err)
	return parties
}

var testDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func amount(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}
