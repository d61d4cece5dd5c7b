package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmem "casebem/internal/catalog/repository/memory"
	"casebem/internal/model"
	"casebem/internal/quote"
	repo "casebem/internal/repository"
	"casebem/internal/repository/memory"
	"casebem/pkg/log"
)

var baseTime = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

type failingCatalog struct{ err error }

func (f failingCatalog) GetItem(ctx context.Context, itemID string) (model.CatalogItem, error) {
	return model.CatalogItem{}, f.err
}

type fixture struct {
	uc   *implUseCase
	repo repo.Repository
	cat  *catalogmem.Catalog
	now  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	l := log.NewNop()
	r := memory.New(l, time.Second)
	cat := catalogmem.New(
		model.CatalogItem{ID: "photo-a", SupplierID: "sup-a", CategoryID: "PHOTO", Kind: model.KindService, Name: "Full day", Active: true},
		model.CatalogItem{ID: "photo-b", SupplierID: "sup-b", CategoryID: "PHOTO", Kind: model.KindService, Name: "Half day", Active: true},
		model.CatalogItem{ID: "photo-old", SupplierID: "sup-a", CategoryID: "PHOTO", Kind: model.KindService, Name: "Retired", Active: false},
		model.CatalogItem{ID: "album-a", SupplierID: "sup-a", CategoryID: "PHOTO", Kind: model.KindProduct, Name: "Album", Active: true},
		model.CatalogItem{ID: "cake-a", SupplierID: "sup-a", CategoryID: "CAKE", Kind: model.KindService, Name: "Cake tasting", Active: true},
	)

	f := &fixture{repo: r, cat: cat, now: baseTime}
	uc := New(r, cat, l).(*implUseCase)
	uc.now = func() time.Time { return f.now }
	f.uc = uc

	_, err := r.CreateDemand(context.Background(), repo.CreateDemandOptions{
		ID:        "d1",
		CoupleID:  "couple-1",
		Header:    model.DemandHeader{Description: "Wedding in Porto"},
		Status:    model.DemandOpen,
		CreatedAt: baseTime,
		Items: []model.DemandItem{
			{ID: "di-photo", Kind: model.KindService, CategoryID: "PHOTO", Quantity: 1, Description: "Photographer"},
		},
	})
	require.NoError(t, err)
	_, err = r.CreateDemand(context.Background(), repo.CreateDemandOptions{
		ID:        "d2",
		CoupleID:  "couple-2",
		Header:    model.DemandHeader{Description: "Other wedding"},
		Status:    model.DemandOpen,
		CreatedAt: baseTime,
		Items: []model.DemandItem{
			{ID: "di-other", Kind: model.KindService, CategoryID: "PHOTO", Quantity: 1, Description: "Photographer"},
		},
	})
	require.NoError(t, err)
	return f
}

func photoLine(itemID string) quote.LineInput {
	return quote.LineInput{
		DemandItemID: "di-photo",
		ItemID:       itemID,
		Quantity:     2,
		UnitPrice:    decimal.RequireFromString("750.005"),
		DiscountPct:  decimal.NewFromInt(10),
	}
}

func (f *fixture) submit(t *testing.T, supplierID string, lines ...quote.LineInput) model.Quote {
	t.Helper()
	q, err := f.uc.SubmitQuote(context.Background(), quote.SubmitInput{SupplierID: supplierID, DemandID: "d1", Lines: lines})
	require.NoError(t, err)
	return q
}

func TestSubmitQuote(t *testing.T) {
	f := newFixture(t)
	validUntil := baseTime.Add(48 * time.Hour)

	q, err := f.uc.SubmitQuote(context.Background(), quote.SubmitInput{
		SupplierID: "sup-a",
		DemandID:   "d1",
		ValidUntil: &validUntil,
		Notes:      "  includes travel  ",
		Lines:      []quote.LineInput{photoLine("photo-a")},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, q.ID)
	assert.Equal(t, model.QuotePending, q.Status)
	assert.Equal(t, "includes travel", q.Notes)
	require.Len(t, q.Lines, 1)
	assert.Equal(t, model.LinePending, q.Lines[0].Status)
	assert.Equal(t, "750", q.Lines[0].UnitPrice.String())
	// 2 x 750.00 less 10%
	assert.Equal(t, "1350.00", q.TotalValue.StringFixed(2))
	assert.True(t, q.ValidUntil.Equal(validUntil))

	stored, err := f.repo.GetOneQuote(context.Background(), repo.GetOneQuoteOptions{ID: q.ID})
	require.NoError(t, err)
	assert.Equal(t, q.ID, stored.ID)
	assert.Equal(t, "d1", stored.DemandID)
}

func TestSubmitQuoteStoresCheckedAmounts(t *testing.T) {
	f := newFixture(t)
	l := photoLine("photo-a")
	l.DiscountPct = decimal.RequireFromString("99.995")

	q := f.submit(t, "sup-a", l)
	require.Len(t, q.Lines, 1)
	assert.Equal(t, "100.00", q.Lines[0].DiscountPct.StringFixed(2))
	assert.True(t, q.TotalValue.IsZero())
}

func TestSubmitQuotePreconditions(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "sup-a", photoLine("photo-a"))

	require.NoError(t, f.repo.UpdateDemandStatus(context.Background(), repo.UpdateDemandStatusOptions{
		ID: "d2", Status: model.DemandCancelled, UpdatedAt: baseTime,
	}))

	past := baseTime.Add(-time.Minute)
	tests := map[string]struct {
		input quote.SubmitInput
		want  error
	}{
		"missing supplier wins over missing demand": {
			input: quote.SubmitInput{DemandID: "nope", Lines: []quote.LineInput{photoLine("photo-a")}},
			want:  quote.ErrMissingSupplier,
		},
		"unknown demand": {
			input: quote.SubmitInput{SupplierID: "sup-b", DemandID: "nope"},
			want:  quote.ErrDemandNotFound,
		},
		"closed demand wins over bad lines": {
			input: quote.SubmitInput{SupplierID: "sup-b", DemandID: "d2"},
			want:  quote.ErrDemandNotOpen,
		},
		"active quote wins over bad lines": {
			input: quote.SubmitInput{SupplierID: "sup-a", DemandID: "d1"},
			want:  quote.ErrDuplicateQuote,
		},
		"no lines": {
			input: quote.SubmitInput{SupplierID: "sup-b", DemandID: "d1"},
			want:  quote.ErrNoLines,
		},
		"validity in the past": {
			input: quote.SubmitInput{SupplierID: "sup-b", DemandID: "d1", ValidUntil: &past, Lines: []quote.LineInput{photoLine("photo-b")}},
			want:  quote.ErrValidUntil,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.SubmitQuote(context.Background(), tc.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
		})
	}
}

func TestSubmitQuoteLineErrors(t *testing.T) {
	good := photoLine("photo-a")
	with := func(mut func(*quote.LineInput)) quote.LineInput {
		l := good
		mut(&l)
		return l
	}

	tests := map[string]struct {
		lines    []quote.LineInput
		want     error
		wantKind model.ErrorKind
		wantLine int
	}{
		"zero quantity": {
			lines:    []quote.LineInput{good, with(func(l *quote.LineInput) { l.Quantity = 0 })},
			want:     quote.ErrQuantity,
			wantKind: model.KindInvalidInput,
			wantLine: 2,
		},
		"free line": {
			lines:    []quote.LineInput{with(func(l *quote.LineInput) { l.UnitPrice = decimal.Zero })},
			want:     quote.ErrUnitPrice,
			wantKind: model.KindInvalidInput,
			wantLine: 1,
		},
		"discount above 100": {
			lines:    []quote.LineInput{with(func(l *quote.LineInput) { l.DiscountPct = decimal.NewFromInt(101) })},
			want:     quote.ErrDiscount,
			wantKind: model.KindInvalidInput,
			wantLine: 1,
		},
		"price rounding to zero": {
			lines:    []quote.LineInput{good, with(func(l *quote.LineInput) { l.UnitPrice = decimal.RequireFromString("0.004") })},
			want:     quote.ErrUnitPrice,
			wantKind: model.KindInvalidInput,
			wantLine: 2,
		},
		"discount rounding above 100": {
			lines:    []quote.LineInput{with(func(l *quote.LineInput) { l.DiscountPct = decimal.RequireFromString("100.006") })},
			want:     quote.ErrDiscount,
			wantKind: model.KindInvalidInput,
			wantLine: 1,
		},
		"structural checks run before catalog lookups": {
			lines:    []quote.LineInput{with(func(l *quote.LineInput) { l.ItemID = "missing" }), with(func(l *quote.LineInput) { l.Quantity = -1 })},
			want:     quote.ErrQuantity,
			wantKind: model.KindInvalidInput,
			wantLine: 2,
		},
		"demand item of another demand": {
			lines:    []quote.LineInput{good, with(func(l *quote.LineInput) { l.DemandItemID = "di-other" })},
			want:     quote.ErrForeignDemand,
			wantKind: model.KindInvalidLine,
			wantLine: 2,
		},
		"unknown catalog item": {
			lines:    []quote.LineInput{with(func(l *quote.LineInput) { l.ItemID = "missing" })},
			want:     quote.ErrUnknownItem,
			wantKind: model.KindInvalidLine,
			wantLine: 1,
		},
		"item of another supplier": {
			lines:    []quote.LineInput{with(func(l *quote.LineInput) { l.ItemID = "photo-b" })},
			want:     quote.ErrForeignItem,
			wantKind: model.KindInvalidLine,
			wantLine: 1,
		},
		"inactive item": {
			lines:    []quote.LineInput{good, with(func(l *quote.LineInput) { l.ItemID = "photo-old" })},
			want:     quote.ErrInactiveItem,
			wantKind: model.KindInvalidLine,
			wantLine: 2,
		},
		"kind mismatch": {
			lines:    []quote.LineInput{with(func(l *quote.LineInput) { l.ItemID = "album-a" })},
			want:     quote.ErrKindMismatch,
			wantKind: model.KindInvalidLine,
			wantLine: 1,
		},
		"category mismatch": {
			lines:    []quote.LineInput{with(func(l *quote.LineInput) { l.ItemID = "cake-a" })},
			want:     quote.ErrCategoryMismatch,
			wantKind: model.KindInvalidLine,
			wantLine: 1,
		},
		"repeated pair": {
			lines:    []quote.LineInput{good, good},
			want:     quote.ErrDuplicateLine,
			wantKind: model.KindInvalidLine,
			wantLine: 2,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.uc.SubmitQuote(context.Background(), quote.SubmitInput{SupplierID: "sup-a", DemandID: "d1", Lines: tc.lines})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)

			var de *model.Error
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tc.wantKind, de.Kind)
			assert.Equal(t, tc.wantLine, de.Line)

			_, total, err := f.repo.ListQuotes(context.Background(), repo.ListQuotesOptions{DemandID: "d1"})
			require.NoError(t, err)
			assert.Zero(t, total)
		})
	}
}

func TestSubmitQuoteCatalogFailure(t *testing.T) {
	f := newFixture(t)
	uc := New(f.repo, failingCatalog{err: errors.New("catalog down")}, log.NewNop())

	_, err := uc.SubmitQuote(context.Background(), quote.SubmitInput{SupplierID: "sup-a", DemandID: "d1", Lines: []quote.LineInput{photoLine("photo-a")}})
	require.Error(t, err)
	assert.Equal(t, model.KindStorage, model.KindOf(err))
}

func TestSubmitAfterWithdrawal(t *testing.T) {
	f := newFixture(t)
	first := f.submit(t, "sup-a", photoLine("photo-a"))

	_, err := f.uc.WithdrawQuote(context.Background(), quote.WithdrawInput{SupplierID: "sup-a", QuoteID: first.ID})
	require.NoError(t, err)

	second := f.submit(t, "sup-a", photoLine("photo-a"))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestWithdrawQuote(t *testing.T) {
	f := newFixture(t)
	q := f.submit(t, "sup-a", photoLine("photo-a"))

	t.Run("foreign supplier", func(t *testing.T) {
		_, err := f.uc.WithdrawQuote(context.Background(), quote.WithdrawInput{SupplierID: "sup-b", QuoteID: q.ID})
		assert.True(t, errors.Is(err, model.ErrForbidden), "got %v", err)
	})

	t.Run("unknown quote", func(t *testing.T) {
		_, err := f.uc.WithdrawQuote(context.Background(), quote.WithdrawInput{SupplierID: "sup-a", QuoteID: "missing"})
		assert.True(t, errors.Is(err, model.ErrForbidden), "got %v", err)
	})

	t.Run("withdraws and rejects pending lines", func(t *testing.T) {
		got, err := f.uc.WithdrawQuote(context.Background(), quote.WithdrawInput{SupplierID: "sup-a", QuoteID: q.ID})
		require.NoError(t, err)
		assert.Equal(t, model.QuoteWithdrawn, got.Status)
		assert.Equal(t, model.ReasonQuoteWithdrawn, got.StatusReason)
		require.Len(t, got.Lines, 1)
		assert.Equal(t, model.LineRejected, got.Lines[0].Status)
		assert.True(t, got.TotalValue.IsZero())
	})

	t.Run("second withdrawal is a no-op", func(t *testing.T) {
		got, err := f.uc.WithdrawQuote(context.Background(), quote.WithdrawInput{SupplierID: "sup-a", QuoteID: q.ID})
		require.NoError(t, err)
		assert.Equal(t, model.QuoteWithdrawn, got.Status)
	})
}

func TestWithdrawDecidedQuote(t *testing.T) {
	f := newFixture(t)
	q := f.submit(t, "sup-a", photoLine("photo-a"))

	_, err := f.uc.RejectLine(context.Background(), quote.DecideInput{CoupleID: "couple-1", QuoteID: q.ID, LineID: q.Lines[0].ID, Reason: "too far"})
	require.NoError(t, err)

	_, err = f.uc.WithdrawQuote(context.Background(), quote.WithdrawInput{SupplierID: "sup-a", QuoteID: q.ID})
	assert.True(t, errors.Is(err, quote.ErrQuoteClosed), "got %v", err)
}

func TestWithdrawAllForDemand(t *testing.T) {
	f := newFixture(t)
	a := f.submit(t, "sup-a", photoLine("photo-a"))
	b := f.submit(t, "sup-b", photoLine("photo-b"))

	_, err := f.uc.WithdrawQuote(context.Background(), quote.WithdrawInput{SupplierID: "sup-b", QuoteID: b.ID})
	require.NoError(t, err)

	later := baseTime.Add(time.Hour)
	n, err := f.uc.WithdrawAllForDemand(context.Background(), "d1", model.ReasonDemandCancelled, later)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.repo.GetOneQuote(context.Background(), repo.GetOneQuoteOptions{ID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, model.QuoteWithdrawn, got.Status)
	assert.Equal(t, model.ReasonDemandCancelled, got.StatusReason)
	assert.Equal(t, model.ReasonDemandCancelled, got.Lines[0].RejectionReason)
	assert.True(t, got.UpdatedAt.Equal(later))

	// b keeps the reason of its own withdrawal
	got, err = f.repo.GetOneQuote(context.Background(), repo.GetOneQuoteOptions{ID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, model.ReasonQuoteWithdrawn, got.StatusReason)
}

func TestExpireQuotes(t *testing.T) {
	f := newFixture(t)
	soon := baseTime.Add(time.Hour)
	later := baseTime.Add(72 * time.Hour)

	submitUntil := func(supplierID, itemID string, until *time.Time) model.Quote {
		q, err := f.uc.SubmitQuote(context.Background(), quote.SubmitInput{
			SupplierID: supplierID,
			DemandID:   "d1",
			ValidUntil: until,
			Lines:      []quote.LineInput{photoLine(itemID)},
		})
		require.NoError(t, err)
		return q
	}
	a := submitUntil("sup-a", "photo-a", &soon)
	b := submitUntil("sup-b", "photo-b", &later)

	t.Run("nothing due yet", func(t *testing.T) {
		n, err := f.uc.ExpireQuotes(context.Background(), baseTime.Add(30*time.Minute), 10)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("expires only the elapsed quote", func(t *testing.T) {
		n, err := f.uc.ExpireQuotes(context.Background(), baseTime.Add(2*time.Hour), 10)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		got, err := f.repo.GetOneQuote(context.Background(), repo.GetOneQuoteOptions{ID: a.ID})
		require.NoError(t, err)
		assert.Equal(t, model.QuoteExpired, got.Status)
		assert.Equal(t, model.ReasonExpired, got.Lines[0].RejectionReason)

		got, err = f.repo.GetOneQuote(context.Background(), repo.GetOneQuoteOptions{ID: b.ID})
		require.NoError(t, err)
		assert.Equal(t, model.QuotePending, got.Status)
	})

	t.Run("already expired quotes are skipped", func(t *testing.T) {
		n, err := f.uc.ExpireQuotes(context.Background(), baseTime.Add(2*time.Hour), 10)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestExpireQuotesLimit(t *testing.T) {
	f := newFixture(t)
	soon := baseTime.Add(time.Hour)
	for _, s := range []struct{ supplier, item string }{{"sup-a", "photo-a"}, {"sup-b", "photo-b"}} {
		_, err := f.uc.SubmitQuote(context.Background(), quote.SubmitInput{
			SupplierID: s.supplier,
			DemandID:   "d1",
			ValidUntil: &soon,
			Lines:      []quote.LineInput{photoLine(s.item)},
		})
		require.NoError(t, err)
	}

	n, err := f.uc.ExpireQuotes(context.Background(), baseTime.Add(2*time.Hour), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = f.uc.ExpireQuotes(context.Background(), baseTime.Add(2*time.Hour), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = f.uc.ExpireQuotes(context.Background(), baseTime.Add(2*time.Hour), 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}
