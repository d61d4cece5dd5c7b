package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmem "casebem/internal/catalog/repository/memory"
	"casebem/internal/demand"
	demandUC "casebem/internal/demand/usecase"
	"casebem/internal/model"
	"casebem/internal/query"
	"casebem/internal/query/usecase"
	"casebem/internal/quote"
	quoteUC "casebem/internal/quote/usecase"
	"casebem/internal/repository"
	"casebem/internal/repository/memory"
	"casebem/pkg/log"
	"casebem/pkg/paginator"
)

var (
	couple    = model.Scope{UserID: "couple-1", Role: model.RoleCouple}
	stranger  = model.Scope{UserID: "couple-2", Role: model.RoleCouple}
	supplier  = model.Scope{UserID: "supplier-1", Role: model.RoleSupplier}
	supplier2 = model.Scope{UserID: "supplier-2", Role: model.RoleSupplier}
)

type fixture struct {
	uc      query.UseCase
	demands demand.UseCase
	quotes  quote.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	l := log.NewNop()
	repo := memory.New(l, time.Second)
	cat := catalogmem.New(
		model.CatalogItem{ID: "p1", SupplierID: supplier.UserID, CategoryID: "PHOTO", Kind: model.KindService, Active: true},
		model.CatalogItem{ID: "p2", SupplierID: supplier2.UserID, CategoryID: "PHOTO", Kind: model.KindService, Active: true},
	)
	quotes := quoteUC.New(repo, cat, l)
	demands := demandUC.New(repo, quotes, l)
	return &fixture{
		uc:      usecase.New(demands, quotes, repo, l, usecase.Config{DefaultPageSize: 2, PublicPageSize: 3, MaxPageSize: 5}),
		demands: demands,
		quotes:  quotes,
	}
}

func (f *fixture) publish(t *testing.T, desc string) model.Demand {
	t.Helper()
	d, err := f.demands.CreateDemand(context.Background(), demand.CreateDemandInput{
		CoupleID: couple.UserID,
		Header:   model.DemandHeader{Description: desc, WeddingCity: "Recife"},
		Items:    []model.DemandItem{{Kind: model.KindService, CategoryID: "PHOTO", Quantity: 1}},
	})
	require.NoError(t, err)
	return d
}

func (f *fixture) submit(t *testing.T, sc model.Scope, d model.Demand, item string) model.Quote {
	t.Helper()
	q, err := f.quotes.SubmitQuote(context.Background(), quote.SubmitInput{
		SupplierID: sc.UserID,
		DemandID:   d.ID,
		Lines: []quote.LineInput{{
			DemandItemID: d.Items[0].ID, ItemID: item, Quantity: 1, UnitPrice: decimal.NewFromInt(100),
		}},
	})
	require.NoError(t, err)
	return q
}

func TestDemandsByCouplePagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.publish(t, fmt.Sprintf("demand %d", i))
	}

	page, err := f.uc.DemandsByCouple(context.Background(), couple, query.DemandsByCoupleInput{})
	require.NoError(t, err)
	assert.Len(t, page.Demands, 2)
	assert.Equal(t, paginator.Paginator{Total: 5, Count: 2, PerPage: 2, CurrentPage: 1, LastPage: 3}, page.Paginator)

	page, err = f.uc.DemandsByCouple(context.Background(), couple, query.DemandsByCoupleInput{
		Paginate: paginator.PaginateQuery{Page: 9, Limit: 2},
	})
	require.NoError(t, err)
	assert.Len(t, page.Demands, 1, "page past the end is clamped to the last page")
	assert.Equal(t, 3, page.Paginator.CurrentPage)

	page, err = f.uc.DemandsByCouple(context.Background(), couple, query.DemandsByCoupleInput{
		Paginate: paginator.PaginateQuery{Page: 1, Limit: 500},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Paginator.PerPage)

	page, err = f.uc.DemandsByCouple(context.Background(), stranger, query.DemandsByCoupleInput{
		Paginate: paginator.PaginateQuery{Page: 4},
	})
	require.NoError(t, err)
	assert.Empty(t, page.Demands)
	assert.Equal(t, 1, page.Paginator.CurrentPage)

	_, err = f.uc.DemandsByCouple(context.Background(), supplier, query.DemandsByCoupleInput{})
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestOpenDemandsUsesPublicPageSize(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 4; i++ {
		f.publish(t, "open")
	}
	d := f.publish(t, "to cancel")
	_, err := f.demands.CancelDemand(context.Background(), demand.CancelInput{DemandID: d.ID, CoupleID: couple.UserID})
	require.NoError(t, err)

	page, err := f.uc.OpenDemands(context.Background(), supplier, query.OpenDemandsInput{})
	require.NoError(t, err)
	assert.Len(t, page.Demands, 3)
	assert.Equal(t, 4, page.Paginator.Total)

	_, err = f.uc.OpenDemands(context.Background(), couple, query.OpenDemandsInput{})
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.publish(t, "visible")
	q1 := f.submit(t, supplier, d, "p1")
	q2 := f.submit(t, supplier2, d, "p2")

	all, err := f.uc.QuotesForDemand(ctx, couple, query.QuotesForDemandInput{DemandID: d.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Paginator.Total)

	own, err := f.uc.QuotesForDemand(ctx, supplier, query.QuotesForDemandInput{DemandID: d.ID})
	require.NoError(t, err)
	require.Len(t, own.Quotes, 1)
	assert.Equal(t, q1.ID, own.Quotes[0].ID)

	_, err = f.uc.QuotesForDemand(ctx, stranger, query.QuotesForDemandInput{DemandID: d.ID})
	assert.ErrorIs(t, err, model.ErrNotFound)

	got, err := f.uc.GetQuote(ctx, couple, q2.ID)
	require.NoError(t, err)
	assert.Equal(t, q2, got)

	_, err = f.uc.GetQuote(ctx, supplier, q2.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = f.uc.GetQuote(ctx, stranger, q2.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.uc.GetDemand(ctx, stranger, d.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.demands.CancelDemand(ctx, demand.CancelInput{DemandID: d.ID, CoupleID: couple.UserID})
	require.NoError(t, err)

	_, err = f.uc.GetDemand(ctx, supplier, d.ID)
	assert.NoError(t, err, "a supplier that quoted still sees the demand")

	outsider := model.Scope{UserID: "supplier-9", Role: model.RoleSupplier}
	_, err = f.uc.GetDemand(ctx, outsider, d.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCounters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d1 := f.publish(t, "one")
	d2 := f.publish(t, "two")
	f.submit(t, supplier, d1, "p1")
	f.submit(t, supplier, d2, "p1")
	_, err := f.demands.CancelDemand(ctx, demand.CancelInput{DemandID: d2.ID, CoupleID: couple.UserID})
	require.NoError(t, err)

	c, err := f.uc.CountersForCouple(ctx, couple)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Demands[model.DemandOpen])
	assert.Equal(t, 1, c.Demands[model.DemandCancelled])
	assert.Equal(t, 0, c.Demands[model.DemandFulfilled])
	assert.Equal(t, 1, c.Quotes[model.QuotePending])
	assert.Equal(t, 1, c.Quotes[model.QuoteWithdrawn])
	assert.Len(t, c.Quotes, len(model.AllQuoteStatuses))

	s, err := f.uc.CountersForSupplier(ctx, supplier)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Quotes[model.QuotePending])
	assert.Empty(t, s.Demands)

	_, err = f.uc.CountersForSupplier(ctx, couple)
	assert.ErrorIs(t, err, model.ErrForbidden)
}

type failingCounters struct{ err error }

func (f failingCounters) CountDemandsByStatus(ctx context.Context, opt repository.CountDemandsOptions) (map[model.DemandStatus]int, error) {
	return map[model.DemandStatus]int{model.DemandOpen: 1}, nil
}

func (f failingCounters) CountQuotesByStatus(ctx context.Context, opt repository.CountQuotesOptions) (map[model.QuoteStatus]int, error) {
	return nil, f.err
}

func TestCountersStorageFailure(t *testing.T) {
	f := newFixture(t)
	uc := usecase.New(f.demands, f.quotes, failingCounters{err: errors.New("connection reset")}, log.NewNop(), usecase.Config{})

	_, err := uc.CountersForCouple(context.Background(), couple)
	assert.ErrorIs(t, err, model.ErrStorage)

	_, err = uc.CountersForSupplier(context.Background(), supplier)
	assert.ErrorIs(t, err, model.ErrStorage)
}
