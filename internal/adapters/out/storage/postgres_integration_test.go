package storage_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"procurement/internal/adapters/out/storage"
	"procurement/internal/core/domain/model/request"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresIntegrationTestSuite runs the unit of work against a real PostgreSQL
// container, including the row locks SQLite does not have.
type PostgresIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *storage.GormUnitOfWorkFactory
}

func (s *PostgresIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(storage.Migrate(db))
	s.factory = storage.NewGormUnitOfWorkFactory(db)
}

func (s *PostgresIntegrationTestSuite) SetupTest() {
	err := s.db.Exec("TRUNCATE TABLE purchase_orders, negotiations, purchase_requests").Error
	s.Require().NoError(err)
}

func (s *PostgresIntegrationTestSuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PostgresIntegrationTestSuite) TestRoundTrip() {
	ctx := context.Background()
	r := newRequest(s.T(), 1)
	n := newNegotiation(s.T(), r)
	o := newOrder(s.T(), r, n)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.RequestRepository().Add(ctx, r))
	s.Require().NoError(uow.NegotiationRepository().Add(ctx, n))
	s.Require().NoError(uow.OrderRepository().Add(ctx, o))
	s.Require().NoError(uow.Commit(ctx))

	got, err := s.factory.Create().OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Equal("9500", got.Amount().Primary().String())
	s.Equal("114.4578", got.Amount().Secondary().String())
	s.True(got.NegotiationID().IsEqual(n.ID()))
}

func (s *PostgresIntegrationTestSuite) TestUniqueOrderPerNegotiation() {
	ctx := context.Background()
	r := newRequest(s.T(), 1)
	n := newNegotiation(s.T(), r)
	uow := s.factory.Create()

	s.Require().NoError(uow.RequestRepository().Add(ctx, r))
	s.Require().NoError(uow.NegotiationRepository().Add(ctx, n))
	s.Require().NoError(uow.OrderRepository().Add(ctx, newOrder(s.T(), r, n)))
	s.Error(uow.OrderRepository().Add(ctx, newOrder(s.T(), r, n)))
}

// TestGet_LocksRow checks that a second transaction reading the same request
// waits until the first one commits.
func (s *PostgresIntegrationTestSuite) TestGet_LocksRow() {
	ctx := context.Background()
	r := newRequest(s.T(), 1)
	s.Require().NoError(s.factory.Create().RequestRepository().Add(ctx, r))

	first := s.factory.Create()
	s.Require().NoError(first.Begin(ctx))
	locked, err := first.RequestRepository().Get(ctx, r.ID())
	s.Require().NoError(err)

	var (
		wg       sync.WaitGroup
		observed request.Status
		readErr  error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		second := s.factory.Create()
		if readErr = second.Begin(ctx); readErr != nil {
			return
		}
		defer func() { _ = second.Rollback(ctx) }()
		got, err := second.RequestRepository().Get(ctx, r.ID())
		if err != nil {
			readErr = err
			return
		}
		observed = got.Status()
	}()

	time.Sleep(200 * time.Millisecond)
	locked.Approve()
	s.Require().NoError(first.RequestRepository().Update(ctx, locked))
	s.Require().NoError(first.Commit(ctx))

	wg.Wait()
	s.Require().NoError(readErr)
	s.Equal(request.Approved, observed)
}

func (s *PostgresIntegrationTestSuite) TestGet_NotFound() {
	_, err := s.factory.Create().RequestRepository().Get(context.Background(), newRequest(s.T(), 9).ID())
	s.Equal(errs.KindNotFound, errs.KindOf(err))
}

func TestPostgresIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresIntegrationTestSuite))
}
