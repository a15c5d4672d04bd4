package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"procurement/internal/adapters/out/storage"
	"procurement/internal/adapters/out/storage/storagetest"
	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/negotiation"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/request"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/keylock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type gormUoWFactory struct {
	factory *storage.GormUnitOfWorkFactory
}

func (f gormUoWFactory) Create() commands.UoW {
	return f.factory.Create()
}

type gormRequestUoWFactory struct {
	factory *storage.GormUnitOfWorkFactory
}

func (f gormRequestUoWFactory) Create() commands.RequestUoW {
	return f.factory.Create()
}

// WorkflowHandlersTestSuite drives the handlers against an in-memory SQLite
// database and checks what was committed.
type WorkflowHandlersTestSuite struct {
	suite.Suite

	ctx     context.Context
	db      *gorm.DB
	storage *storage.GormUnitOfWorkFactory
	deps    commands.Deps

	createRequest     commands.CreateRequestCommandHandler
	deleteRequest     commands.DeleteRequestCommandHandler
	decideRequest     commands.DecideRequestCommandHandler
	createNegotiation commands.CreateNegotiationCommandHandler
	updateNegotiation commands.UpdateNegotiationCommandHandler
	deleteNegotiation commands.DeleteNegotiationCommandHandler
	createOrder       commands.CreateOrderCommandHandler
	updateOrder       commands.UpdateOrderCommandHandler
	changeOrder       commands.ChangeOrderCommandHandler
}

func TestWorkflowHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowHandlersTestSuite))
}

func (s *WorkflowHandlersTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = storagetest.NewSQLite(s.T())
	s.storage = storage.NewGormUnitOfWorkFactory(s.db)
	s.deps = commands.Deps{
		Locks: keylock.New(),
		Clock: func() time.Time { return time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC) },
	}

	uows := gormUoWFactory{factory: s.storage}
	requestUoWs := gormRequestUoWFactory{factory: s.storage}

	s.createRequest = commands.NewCreateRequestCommandHandler(requestUoWs, s.deps)
	s.decideRequest = commands.NewDecideRequestCommandHandler(requestUoWs, s.deps)
	s.deleteRequest = commands.NewDeleteRequestCommandHandler(uows, s.deps)
	s.createNegotiation = commands.NewCreateNegotiationCommandHandler(uows, s.deps)
	s.updateNegotiation = commands.NewUpdateNegotiationCommandHandler(uows, s.deps)
	s.deleteNegotiation = commands.NewDeleteNegotiationCommandHandler(uows, s.deps)
	s.createOrder = commands.NewCreateOrderCommandHandler(uows, s.deps)
	s.updateOrder = commands.NewUpdateOrderCommandHandler(uows, s.deps)
	s.changeOrder = commands.NewChangeOrderCommandHandler(uows, s.deps)
}

func (s *WorkflowHandlersTestSuite) reader() ports.UnitOfWork {
	return s.storage.Create()
}

func (s *WorkflowHandlersTestSuite) givenRequest(eventID int64, allocated string) kernel.UUID {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateRequestCommand(id, testParties(s.T(), eventID), testDate, amount(allocated))
	s.Require().NoError(err)
	s.Require().NoError(s.createRequest.Handle(s.ctx, cmd))
	return id
}

func (s *WorkflowHandlersTestSuite) givenNegotiation(requestID kernel.UUID) kernel.UUID {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateNegotiationFromRequestCommand(id, requestID)
	s.Require().NoError(err)
	s.Require().NoError(s.createNegotiation.Handle(s.ctx, cmd))
	return id
}

func (s *WorkflowHandlersTestSuite) reviseNegotiation(
	negotiationID kernel.UUID,
	finalAmount string,
	status negotiation.Status,
	orderID kernel.UUID,
) error {
	cmd, err := commands.NewUpdateNegotiationCommand(negotiationID, amount(finalAmount),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), status, "agreed", orderID)
	s.Require().NoError(err)
	return s.updateNegotiation.Handle(s.ctx, cmd)
}

// givenCompletedChain returns a request, its completed negotiation and the
// order that the completion created.
func (s *WorkflowHandlersTestSuite) givenCompletedChain(eventID int64) (kernel.UUID, kernel.UUID, kernel.UUID) {
	requestID := s.givenRequest(eventID, "10000")
	negotiationID := s.givenNegotiation(requestID)
	orderID := kernel.NewUUID()
	s.Require().NoError(s.reviseNegotiation(negotiationID, "9500", negotiation.Completed, orderID))
	return requestID, negotiationID, orderID
}

func (s *WorkflowHandlersTestSuite) requestStatus(id kernel.UUID) request.Status {
	r, err := s.reader().RequestRepository().Get(s.ctx, id)
	s.Require().NoError(err)
	return r.Status()
}

func (s *WorkflowHandlersTestSuite) negotiationStatus(id kernel.UUID) negotiation.Status {
	n, err := s.reader().NegotiationRepository().Get(s.ctx, id)
	s.Require().NoError(err)
	return n.Status()
}

func (s *WorkflowHandlersTestSuite) TestCreateRequest_DuplicateEvent() {
	s.givenRequest(7, "10000")

	cmd, err := commands.NewCreateRequestCommand(kernel.NewUUID(), testParties(s.T(), 7), testDate, amount("500"))
	s.Require().NoError(err)

	err = s.createRequest.Handle(s.ctx, cmd)
	s.Equal(errs.KindInvalidState, errs.KindOf(err))
}

func (s *WorkflowHandlersTestSuite) TestCreateNegotiationFromRequest_CopiesRequest() {
	requestID := s.givenRequest(7, "10000")
	negotiationID := s.givenNegotiation(requestID)

	n, err := s.reader().NegotiationRepository().Get(s.ctx, negotiationID)
	s.Require().NoError(err)
	s.Equal(negotiation.Pending, n.Status())
	s.True(n.InitialQuote().Equal(amount("10000")))
	s.True(n.FinalAmount().Equal(amount("10000")))
	s.Equal(int64(7), n.Parties().EventID())
	s.Equal("Acme Catering", n.Parties().VendorName())
	s.True(n.NegotiationDate().Equal(s.deps.Clock()))
	s.True(n.RequestID().IsEqual(requestID))

	s.Equal(request.Pending, s.requestStatus(requestID))
}

func (s *WorkflowHandlersTestSuite) TestCreateNegotiation_Preconditions() {
	requestID := s.givenRequest(7, "10000")
	s.givenNegotiation(requestID)

	again, err := commands.NewCreateNegotiationFromRequestCommand(kernel.NewUUID(), requestID)
	s.Require().NoError(err)
	err = s.createNegotiation.Handle(s.ctx, again)
	s.Require().ErrorIs(err, errs.ErrInvalidState)
	s.Contains(err.Error(), "negotiation already exists")

	approvedID := s.givenRequest(8, "10000")
	approve, err := commands.NewApproveRequestCommand(approvedID)
	s.Require().NoError(err)
	s.Require().NoError(s.decideRequest.Handle(s.ctx, approve))

	custom, err := commands.NewCreateNegotiationCommand(kernel.NewUUID(), approvedID, testDate,
		amount("10000"), amount("9000"), "late")
	s.Require().NoError(err)
	err = s.createNegotiation.Handle(s.ctx, custom)
	s.Require().ErrorIs(err, errs.ErrInvalidState)
	s.Contains(err.Error(), "can only create negotiation from Pending requests")

	missing, err := commands.NewCreateNegotiationFromRequestCommand(kernel.NewUUID(), kernel.NewUUID())
	s.Require().NoError(err)
	s.ErrorIs(s.createNegotiation.Handle(s.ctx, missing), errs.ErrObjectNotFound)
}

func (s *WorkflowHandlersTestSuite) TestUpdateNegotiation_CompletedCreatesOrder() {
	requestID, negotiationID, orderID := s.givenCompletedChain(7)

	s.Equal(request.Approved, s.requestStatus(requestID))

	n, err := s.reader().NegotiationRepository().Get(s.ctx, negotiationID)
	s.Require().NoError(err)
	s.Equal(negotiation.Completed, n.Status())
	s.True(n.FinalAmount().Equal(amount("9500")))
	s.Equal("agreed", n.Notes())

	o, err := s.reader().OrderRepository().FindByNegotiation(s.ctx, negotiationID)
	s.Require().NoError(err)
	s.Require().NotNil(o)
	s.True(o.ID().IsEqual(orderID))
	s.Equal(order.Pending, o.Status())
	s.True(o.Amount().Primary().Equal(amount("9500")))
	s.Equal("114.4578", o.Amount().Secondary().StringFixed(4))
	s.Equal("114.46", o.Amount().Secondary().StringFixed(2))
	s.Require().NotNil(o.RequestID())
	s.True(o.RequestID().IsEqual(requestID))
	s.Equal(int64(7), o.Parties().EventID())
	s.True(o.OrderDate().Equal(s.deps.Clock()))
}

func (s *WorkflowHandlersTestSuite) TestUpdateNegotiation_CompletedTwiceKeepsOneOrder() {
	_, negotiationID, orderID := s.givenCompletedChain(7)

	s.Require().NoError(s.reviseNegotiation(negotiationID, "9400", negotiation.Completed, kernel.NewUUID()))

	o, err := s.reader().OrderRepository().FindByNegotiation(s.ctx, negotiationID)
	s.Require().NoError(err)
	s.True(o.ID().IsEqual(orderID))
	s.True(o.Amount().Primary().Equal(amount("9500")), "existing order is not re-priced")

	n, err := s.reader().NegotiationRepository().Get(s.ctx, negotiationID)
	s.Require().NoError(err)
	s.True(n.FinalAmount().Equal(amount("9400")))
}

func (s *WorkflowHandlersTestSuite) TestUpdateNegotiation_CancelledRejectsRequest() {
	requestID := s.givenRequest(7, "10000")
	negotiationID := s.givenNegotiation(requestID)

	s.Require().NoError(s.reviseNegotiation(negotiationID, "10000", negotiation.Cancelled, kernel.NewUUID()))

	s.Equal(negotiation.Cancelled, s.negotiationStatus(negotiationID))
	s.Equal(request.Rejected, s.requestStatus(requestID))

	o, err := s.reader().OrderRepository().FindByNegotiation(s.ctx, negotiationID)
	s.Require().NoError(err)
	s.Nil(o)
}

func (s *WorkflowHandlersTestSuite) TestUpdateNegotiation_PendingEditHasNoCascade() {
	requestID := s.givenRequest(7, "10000")
	negotiationID := s.givenNegotiation(requestID)

	s.Require().NoError(s.reviseNegotiation(negotiationID, "9800", negotiation.Pending, kernel.NewUUID()))

	s.Equal(request.Pending, s.requestStatus(requestID))
	o, err := s.reader().OrderRepository().FindByNegotiation(s.ctx, negotiationID)
	s.Require().NoError(err)
	s.Nil(o)
}

func (s *WorkflowHandlersTestSuite) TestUpdateNegotiation_NotFound() {
	err := s.reviseNegotiation(kernel.NewUUID(), "9800", negotiation.Completed, kernel.NewUUID())
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *WorkflowHandlersTestSuite) TestUpdateNegotiation_FailedOrderInsertRollsBack() {
	_, _, takenOrderID := s.givenCompletedChain(7)

	requestID := s.givenRequest(8, "10000")
	negotiationID := s.givenNegotiation(requestID)

	err := s.reviseNegotiation(negotiationID, "9500", negotiation.Completed, takenOrderID)
	s.Require().Error(err)

	s.Equal(negotiation.Pending, s.negotiationStatus(negotiationID))
	s.Equal(request.Pending, s.requestStatus(requestID))
}

func (s *WorkflowHandlersTestSuite) TestRejectOrder_CascadesOnce() {
	requestID, negotiationID, orderID := s.givenCompletedChain(7)

	reject, err := commands.NewRejectOrderCommand(orderID)
	s.Require().NoError(err)
	s.Require().NoError(s.changeOrder.Handle(s.ctx, reject))

	o, err := s.reader().OrderRepository().Get(s.ctx, orderID)
	s.Require().NoError(err)
	s.Equal(order.Rejected, o.Status())
	s.Equal(negotiation.Cancelled, s.negotiationStatus(negotiationID))
	s.Equal(request.Rejected, s.requestStatus(requestID))

	s.Require().NoError(s.changeOrder.Handle(s.ctx, reject), "rejecting twice is a no-op")
	s.Equal(negotiation.Cancelled, s.negotiationStatus(negotiationID))
}

func (s *WorkflowHandlersTestSuite) TestCompleteOrder_DoesNotCascade() {
	requestID, negotiationID, orderID := s.givenCompletedChain(7)

	complete, err := commands.NewCompleteOrderCommand(orderID)
	s.Require().NoError(err)
	s.Require().NoError(s.changeOrder.Handle(s.ctx, complete))

	o, err := s.reader().OrderRepository().Get(s.ctx, orderID)
	s.Require().NoError(err)
	s.Equal(order.Completed, o.Status())
	s.Equal(negotiation.Completed, s.negotiationStatus(negotiationID))
	s.Equal(request.Approved, s.requestStatus(requestID))
}

func (s *WorkflowHandlersTestSuite) TestDeleteOrder_CascadesAndRemoves() {
	requestID, negotiationID, orderID := s.givenCompletedChain(7)

	del, err := commands.NewDeleteOrderCommand(orderID)
	s.Require().NoError(err)
	s.Require().NoError(s.changeOrder.Handle(s.ctx, del))

	_, err = s.reader().OrderRepository().Get(s.ctx, orderID)
	s.ErrorIs(err, errs.ErrObjectNotFound)
	s.Equal(negotiation.Cancelled, s.negotiationStatus(negotiationID))
	s.Equal(request.Rejected, s.requestStatus(requestID))

	s.ErrorIs(s.changeOrder.Handle(s.ctx, del), errs.ErrObjectNotFound)
}

func (s *WorkflowHandlersTestSuite) TestUpdateOrder_RejectedStatusCascades() {
	requestID, negotiationID, orderID := s.givenCompletedChain(7)

	secondary := amount("100")
	rejected := order.Rejected
	cmd, err := commands.NewUpdateOrderCommand(orderID, testDate, nil, &secondary, &rejected)
	s.Require().NoError(err)
	s.Require().NoError(s.updateOrder.Handle(s.ctx, cmd))

	o, err := s.reader().OrderRepository().Get(s.ctx, orderID)
	s.Require().NoError(err)
	s.Equal(order.Rejected, o.Status())
	s.True(o.Amount().Secondary().Equal(amount("100")))
	s.True(o.Amount().Primary().Equal(amount("8300")))
	s.Equal(negotiation.Cancelled, s.negotiationStatus(negotiationID))
	s.Equal(request.Rejected, s.requestStatus(requestID))
}

func (s *WorkflowHandlersTestSuite) TestUpdateOrder_KeepsAmountsWhenNoneGiven() {
	_, _, orderID := s.givenCompletedChain(7)

	cmd, err := commands.NewUpdateOrderCommand(orderID, testDate, nil, nil, nil)
	s.Require().NoError(err)
	s.Require().NoError(s.updateOrder.Handle(s.ctx, cmd))

	o, err := s.reader().OrderRepository().Get(s.ctx, orderID)
	s.Require().NoError(err)
	s.True(o.Amount().Primary().Equal(amount("9500")))
	s.Equal(order.Pending, o.Status())
	s.True(o.OrderDate().Equal(testDate))
}

func (s *WorkflowHandlersTestSuite) TestUpdateOrder_KeepsDateWhenNoneGiven() {
	_, _, orderID := s.givenCompletedChain(7)
	before, err := s.reader().OrderRepository().Get(s.ctx, orderID)
	s.Require().NoError(err)

	completed := order.Completed
	cmd, err := commands.NewUpdateOrderCommand(orderID, time.Time{}, nil, nil, &completed)
	s.Require().NoError(err)
	s.Require().NoError(s.updateOrder.Handle(s.ctx, cmd))

	o, err := s.reader().OrderRepository().Get(s.ctx, orderID)
	s.Require().NoError(err)
	s.Equal(order.Completed, o.Status())
	s.True(o.OrderDate().Equal(before.OrderDate()))
	s.True(o.Amount().Primary().Equal(amount("9500")))
}

func (s *WorkflowHandlersTestSuite) TestCreateOrder_Links() {
	requestID := s.givenRequest(7, "10000")
	negotiationID := s.givenNegotiation(requestID)

	primary := amount("8300")
	unknown := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), testParties(s.T(), 7), testDate,
		&primary, nil, nil, &requestID, &unknown)
	s.Require().NoError(err)
	s.ErrorIs(s.createOrder.Handle(s.ctx, cmd), errs.ErrObjectNotFound)

	orderID := kernel.NewUUID()
	cmd, err = commands.NewCreateOrderCommand(orderID, testParties(s.T(), 7), testDate,
		&primary, nil, nil, &requestID, &negotiationID)
	s.Require().NoError(err)
	s.Require().NoError(s.createOrder.Handle(s.ctx, cmd))

	o, err := s.reader().OrderRepository().Get(s.ctx, orderID)
	s.Require().NoError(err)
	s.True(o.Amount().Secondary().Equal(decimal.NewFromInt(100)))
	s.Equal(request.Pending, s.requestStatus(requestID))

	cmd, err = commands.NewCreateOrderCommand(kernel.NewUUID(), testParties(s.T(), 7), testDate,
		&primary, nil, nil, nil, &negotiationID)
	s.Require().NoError(err)
	s.ErrorIs(s.createOrder.Handle(s.ctx, cmd), errs.ErrInvalidState)
}

func (s *WorkflowHandlersTestSuite) TestCreateOrder_WithoutLinks() {
	orderID := kernel.NewUUID()
	primary, secondary := amount("1000"), amount("15")
	cmd, err := commands.NewCreateOrderCommand(orderID, testParties(s.T(), 9), testDate,
		&primary, &secondary, nil, nil, nil)
	s.Require().NoError(err)
	s.Require().NoError(s.createOrder.Handle(s.ctx, cmd))

	o, err := s.reader().OrderRepository().Get(s.ctx, orderID)
	s.Require().NoError(err)
	s.True(o.Amount().Primary().Equal(primary))
	s.True(o.Amount().Secondary().Equal(secondary), "both amounts are stored as given")
	s.Nil(o.RequestID())
	s.Nil(o.NegotiationID())
}

func (s *WorkflowHandlersTestSuite) TestDeleteGuards() {
	requestID, negotiationID, orderID := s.givenCompletedChain(7)

	delRequest, err := commands.NewDeleteRequestCommand(requestID)
	s.Require().NoError(err)
	s.ErrorIs(s.deleteRequest.Handle(s.ctx, delRequest), errs.ErrInvalidState)

	delNegotiation, err := commands.NewDeleteNegotiationCommand(negotiationID)
	s.Require().NoError(err)
	s.ErrorIs(s.deleteNegotiation.Handle(s.ctx, delNegotiation), errs.ErrInvalidState)

	delOrder, err := commands.NewDeleteOrderCommand(orderID)
	s.Require().NoError(err)
	s.Require().NoError(s.changeOrder.Handle(s.ctx, delOrder))
	s.Require().NoError(s.deleteNegotiation.Handle(s.ctx, delNegotiation))
	s.Require().NoError(s.deleteRequest.Handle(s.ctx, delRequest))

	_, err = s.reader().RequestRepository().Get(s.ctx, requestID)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *WorkflowHandlersTestSuite) TestUpdateRequest_KeepsStatusWhenNotGiven() {
	requestID := s.givenRequest(7, "10000")

	parties, err := kernel.NewParties(7, "Winter Summit", 43, "Other Vendor", "asmith")
	s.Require().NoError(err)
	cmd, err := commands.NewUpdateRequestCommand(requestID, parties, testDate, amount("12000"), nil)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewUpdateRequestCommandHandler(gormRequestUoWFactory{factory: s.storage}, s.deps).
		Handle(s.ctx, cmd))

	r, err := s.reader().RequestRepository().Get(s.ctx, requestID)
	s.Require().NoError(err)
	s.Equal(request.Pending, r.Status())
	s.Equal("Winter Summit", r.Parties().EventName())
	s.True(r.AllocatedAmount().Equal(amount("12000")))
}

func (s *WorkflowHandlersTestSuite) TestConcurrentCompletionCreatesOneOrder() {
	requestID := s.givenRequest(7, "10000")
	negotiationID := s.givenNegotiation(requestID)

	const workers = 8
	cmds := make([]commands.UpdateNegotiationCommand, 0, workers)
	for range workers {
		cmd, err := commands.NewUpdateNegotiationCommand(negotiationID, amount("9500"), testDate,
			negotiation.Completed, "race", kernel.NewUUID())
		s.Require().NoError(err)
		cmds = append(cmds, cmd)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for _, cmd := range cmds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- s.updateNegotiation.Handle(s.ctx, cmd)
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		s.Require().NoError(err)
	}

	var count int64
	s.Require().NoError(s.db.Table("purchase_orders").
		Where("negotiation_id = ?", negotiationID.Bytes()).Count(&count).Error)
	s.Equal(int64(1), count)
	s.Equal(request.Approved, s.requestStatus(requestID))
}
