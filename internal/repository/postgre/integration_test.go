//go:build integration

package postgre_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"casebem/config"
	"casebem/config/postgre"
	catalogPostgre "casebem/internal/catalog/repository/postgre"
	demandUC "casebem/internal/demand/usecase"
	"casebem/internal/model"
	"casebem/internal/negotiation"
	negotiationUC "casebem/internal/negotiation/usecase"
	"casebem/internal/quote"
	quoteUC "casebem/internal/quote/usecase"
	"casebem/internal/repository"
	repoPostgre "casebem/internal/repository/postgre"
	"casebem/pkg/log"
)

var (
	couple   = model.Scope{UserID: "couple-1", Role: model.RoleCouple}
	supplier = model.Scope{UserID: "supplier-1", Role: model.RoleSupplier}
)

type PostgresSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sql.DB
	repo      repository.Repository
	uc        negotiation.UseCase
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()

	var err error
	s.container, err = postgres.Run(
		s.ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("casebem"),
		postgres.WithUsername("casebem"),
		postgres.WithPassword("casebem"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)

	dsn, err := s.container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(postgre.Migrate(dsn, "../../../migrations"))
	// A second run finds nothing to apply.
	s.Require().NoError(postgre.Migrate(dsn, "../../../migrations"))

	s.db, err = postgre.Connect(s.ctx, config.PostgresConfig{DSN: dsn, MaxOpenConns: 10})
	s.Require().NoError(err)

	l := log.NewNop()
	s.repo = repoPostgre.New(s.db, l, 2*time.Second)
	quotes := quoteUC.New(s.repo, catalogPostgre.New(s.db, l), l)
	demands := demandUC.New(s.repo, quotes, l)
	s.uc = negotiationUC.New(s.repo, demands, quotes, l, negotiationUC.Config{SweepBatchSize: 2})
}

func (s *PostgresSuite) TearDownSuite() {
	if s.db != nil {
		_ = postgre.Disconnect(s.ctx, s.db)
	}
	if s.container != nil {
		if err := s.container.Terminate(s.ctx); err != nil {
			s.T().Logf("terminate postgres container: %v", err)
		}
	}
}

func (s *PostgresSuite) SetupTest() {
	_, err := s.db.ExecContext(s.ctx, "TRUNCATE quote_line, quote, demand_item, demand, item CASCADE")
	s.Require().NoError(err)
	_, err = s.db.ExecContext(s.ctx, `
		INSERT INTO item (id, supplier_id, category_id, kind, name, base_price, active) VALUES
		('photo-1', 'supplier-1', 'PHOTO', 'SERVICE', 'Photography', 3000, TRUE),
		('photo-2', 'supplier-2', 'PHOTO', 'SERVICE', 'Photography', 2500, TRUE),
		('photo-3', 'supplier-3', 'PHOTO', 'SERVICE', 'Photography', 2000, TRUE),
		('old-1',   'supplier-1', 'PHOTO', 'SERVICE', 'Retired',     1000, FALSE)`)
	s.Require().NoError(err)
}

func (s *PostgresSuite) publish() model.Demand {
	d, err := s.uc.PublishDemand(s.ctx, couple, negotiation.PublishDemandInput{
		Header: model.DemandHeader{Description: "Garden wedding", WeddingCity: "Olinda"},
		Items:  []model.DemandItem{{Kind: model.KindService, CategoryID: "PHOTO", Quantity: 1}},
	})
	s.Require().NoError(err)
	return d
}

func (s *PostgresSuite) line(d model.Demand, itemID, unit string) quote.LineInput {
	return quote.LineInput{
		DemandItemID: d.Items[0].ID,
		ItemID:       itemID,
		Quantity:     1,
		UnitPrice:    decimal.RequireFromString(unit),
		DiscountPct:  decimal.RequireFromString("2.5"),
	}
}

func (s *PostgresSuite) TestAcceptFulfilsDemand() {
	d := s.publish()

	q, err := s.uc.SubmitQuote(s.ctx, supplier, negotiation.SubmitQuoteInput{
		DemandID: d.ID,
		Lines:    []quote.LineInput{s.line(d, "photo-1", "1999.99")},
	})
	s.Require().NoError(err)
	s.Equal("1949.99", q.TotalValue.StringFixed(2))

	q, err = s.uc.DecideLine(s.ctx, couple, negotiation.DecideLineInput{
		QuoteID:  q.ID,
		LineID:   q.Lines[0].ID,
		Decision: model.DecisionAccept,
	})
	s.Require().NoError(err)
	s.Equal(model.QuoteAccepted, q.Status)

	stored, err := s.repo.GetOneDemand(s.ctx, repository.GetOneDemandOptions{ID: d.ID})
	s.Require().NoError(err)
	s.Equal(model.DemandFulfilled, stored.Status)
}

func (s *PostgresSuite) TestInactiveItemRejected() {
	d := s.publish()
	_, err := s.uc.SubmitQuote(s.ctx, supplier, negotiation.SubmitQuoteInput{
		DemandID: d.ID,
		Lines:    []quote.LineInput{s.line(d, "old-1", "100")},
	})
	s.ErrorIs(err, model.ErrInvalidLine)
}

func (s *PostgresSuite) TestConcurrentSubmissionsKeepOneActiveQuote() {
	d := s.publish()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		oks  int
		dups int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.uc.SubmitQuote(s.ctx, supplier, negotiation.SubmitQuoteInput{
				DemandID: d.ID,
				Lines:    []quote.LineInput{s.line(d, "photo-1", "1500")},
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				oks++
			case model.KindOf(err) == model.KindDuplicateQuote:
				dups++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, oks)
	s.Equal(4, dups)
}

func (s *PostgresSuite) TestCancelWithdrawsOpenQuotes() {
	d := s.publish()
	for _, sc := range []model.Scope{supplier, {UserID: "supplier-2", Role: model.RoleSupplier}} {
		item := "photo-1"
		if sc.UserID == "supplier-2" {
			item = "photo-2"
		}
		_, err := s.uc.SubmitQuote(s.ctx, sc, negotiation.SubmitQuoteInput{
			DemandID: d.ID,
			Lines:    []quote.LineInput{s.line(d, item, "1000")},
		})
		s.Require().NoError(err)
	}

	cancelled, err := s.uc.CancelDemand(s.ctx, couple, d.ID)
	s.Require().NoError(err)
	s.Equal(model.DemandCancelled, cancelled.Status)

	quotes, total, err := s.repo.ListQuotes(s.ctx, repository.ListQuotesOptions{DemandID: d.ID})
	s.Require().NoError(err)
	s.Equal(2, total)
	for _, q := range quotes {
		s.Equal(model.QuoteWithdrawn, q.Status)
	}
}

func (s *PostgresSuite) TestExpirySweepInBatches() {
	past := time.Now().Add(-time.Hour).UTC()
	for _, sup := range []string{"1", "2", "3"} {
		d := s.publish()
		_, err := s.uc.SubmitQuote(s.ctx, model.Scope{UserID: "supplier-" + sup, Role: model.RoleSupplier}, negotiation.SubmitQuoteInput{
			DemandID: d.ID,
			Lines:    []quote.LineInput{s.line(d, "photo-"+sup, "800")},
		})
		s.Require().NoError(err)
	}
	_, err := s.db.ExecContext(s.ctx, "UPDATE quote SET valid_until = $1", past)
	s.Require().NoError(err)

	n, err := s.uc.RunExpirySweep(s.ctx, time.Now().UTC())
	s.Require().NoError(err)
	s.Equal(3, n)

	n, err = s.uc.RunExpirySweep(s.ctx, time.Now().UTC())
	s.Require().NoError(err)
	s.Zero(n)

	counts, err := s.repo.CountQuotesByStatus(s.ctx, repository.CountQuotesOptions{SupplierID: "supplier-2"})
	s.Require().NoError(err)
	s.Equal(1, counts[model.QuoteExpired])
}

func (s *PostgresSuite) TestLockTimeoutIsStorageError() {
	d := s.publish()

	locked := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = s.repo.WithinTx(s.ctx, func(ctx context.Context) error {
			if _, err := s.repo.GetOneDemand(ctx, repository.GetOneDemandOptions{ID: d.ID, ForUpdate: true}); err != nil {
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked
	defer close(release)

	_, err := s.uc.CancelDemand(s.ctx, couple, d.ID)
	s.Equal(model.KindStorage, model.KindOf(err))
}
