package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmem "casebem/internal/catalog/repository/memory"
	"casebem/internal/demand"
	demandUC "casebem/internal/demand/usecase"
	"casebem/internal/model"
	"casebem/internal/negotiation"
	"casebem/internal/negotiation/usecase"
	"casebem/internal/quote"
	quoteUC "casebem/internal/quote/usecase"
	"casebem/internal/repository/memory"
	"casebem/pkg/log"
)

var (
	couple    = model.Scope{UserID: "couple-1", Role: model.RoleCouple}
	other     = model.Scope{UserID: "couple-2", Role: model.RoleCouple}
	supplier  = model.Scope{UserID: "supplier-1", Role: model.RoleSupplier}
	supplier2 = model.Scope{UserID: "supplier-2", Role: model.RoleSupplier}
	supplier3 = model.Scope{UserID: "supplier-3", Role: model.RoleSupplier}
)

type fixture struct {
	uc      negotiation.UseCase
	demands demand.UseCase
	quotes  quote.UseCase
	catalog *catalogmem.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	l := log.NewNop()
	repo := memory.New(l, time.Second)
	cat := catalogmem.New()
	for _, s := range []string{supplier.UserID, supplier2.UserID, supplier3.UserID} {
		cat.Put(model.CatalogItem{ID: "photo-" + s, SupplierID: s, CategoryID: "PHOTO", Kind: model.KindService, Name: "Photo", BasePrice: dec("3000"), Active: true})
		cat.Put(model.CatalogItem{ID: "music-" + s, SupplierID: s, CategoryID: "MUSIC", Kind: model.KindService, Name: "Band", BasePrice: dec("2000"), Active: true})
	}

	quotes := quoteUC.New(repo, cat, l)
	demands := demandUC.New(repo, quotes, l)
	return &fixture{
		uc:      usecase.New(repo, demands, quotes, l, usecase.Config{SweepBatchSize: 2}),
		demands: demands,
		quotes:  quotes,
		catalog: cat,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// publish creates a demand with a PHOTO and a MUSIC service item.
func (f *fixture) publish(t *testing.T) model.Demand {
	t.Helper()
	d, err := f.uc.PublishDemand(context.Background(), couple, negotiation.PublishDemandInput{
		Header: model.DemandHeader{Description: "Wedding in June", WeddingCity: "Recife"},
		Items: []model.DemandItem{
			{Kind: model.KindService, CategoryID: "PHOTO", Quantity: 1, Description: "photographer"},
			{Kind: model.KindService, CategoryID: "MUSIC", Quantity: 1, Description: "live band"},
		},
	})
	require.NoError(t, err)
	require.Len(t, d.Items, 2)
	return d
}

func photoLine(d model.Demand, sc model.Scope, unit string) quote.LineInput {
	return quote.LineInput{DemandItemID: d.Items[0].ID, ItemID: "photo-" + sc.UserID, Quantity: 1, UnitPrice: dec(unit), DiscountPct: decimal.Zero}
}

func musicLine(d model.Demand, sc model.Scope, unit, disc string) quote.LineInput {
	return quote.LineInput{DemandItemID: d.Items[1].ID, ItemID: "music-" + sc.UserID, Quantity: 1, UnitPrice: dec(unit), DiscountPct: dec(disc)}
}

func (f *fixture) submit(t *testing.T, sc model.Scope, d model.Demand, lines ...quote.LineInput) model.Quote {
	t.Helper()
	q, err := f.uc.SubmitQuote(context.Background(), sc, negotiation.SubmitQuoteInput{DemandID: d.ID, Lines: lines})
	require.NoError(t, err)
	return q
}

func (f *fixture) decide(t *testing.T, q model.Quote, lineIdx int, decision model.Decision) model.Quote {
	t.Helper()
	out, err := f.uc.DecideLine(context.Background(), couple, negotiation.DecideLineInput{
		QuoteID: q.ID, LineID: q.Lines[lineIdx].ID, Decision: decision,
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) demand(t *testing.T, id string) model.Demand {
	t.Helper()
	d, err := f.demands.GetDemand(context.Background(), demand.GetInput{DemandID: id})
	require.NoError(t, err)
	return d
}

func (f *fixture) quote(t *testing.T, id string) model.Quote {
	t.Helper()
	q, err := f.quotes.GetQuote(context.Background(), quote.GetInput{QuoteID: id})
	require.NoError(t, err)
	return q
}
