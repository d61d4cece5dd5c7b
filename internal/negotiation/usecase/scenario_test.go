package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casebem/internal/model"
	"casebem/internal/negotiation"
	"casebem/internal/quote"
)

func TestHappyPathFullAcceptance(t *testing.T) {
	f := newFixture(t)
	d := f.publish(t)
	assert.Equal(t, model.DemandOpen, d.Status)

	q := f.submit(t, supplier, d, photoLine(d, supplier, "3000"), musicLine(d, supplier, "2000", "10"))
	assert.Equal(t, model.QuotePending, q.Status)
	assert.Equal(t, "4800.00", q.TotalValue.StringFixed(2))

	q = f.decide(t, q, 0, model.DecisionAccept)
	assert.Equal(t, model.LineAccepted, q.Lines[0].Status)
	assert.Equal(t, model.QuotePartiallyAccepted, q.Status)
	assert.Equal(t, model.DemandOpen, f.demand(t, d.ID).Status)

	q = f.decide(t, q, 1, model.DecisionAccept)
	assert.Equal(t, model.QuoteAccepted, q.Status)
	assert.Equal(t, model.DemandFulfilled, f.demand(t, d.ID).Status)
}

func TestDuplicateQuoteRejected(t *testing.T) {
	f := newFixture(t)
	d := f.publish(t)
	q1 := f.submit(t, supplier, d, photoLine(d, supplier, "3000"))

	_, err := f.uc.SubmitQuote(context.Background(), supplier, negotiation.SubmitQuoteInput{
		DemandID: d.ID,
		Lines:    []quote.LineInput{musicLine(d, supplier, "2000", "0")},
	})
	assert.ErrorIs(t, err, model.ErrDuplicateQuote)

	out, err := f.quotes.ListQuotes(context.Background(), quote.ListInput{DemandID: d.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, q1, f.quote(t, q1.ID))
}

func TestPartialRejectionThenCompetingAcceptance(t *testing.T) {
	f := newFixture(t)
	d := f.publish(t)

	q1 := f.submit(t, supplier, d, photoLine(d, supplier, "3000"))
	q1, err := f.uc.DecideLine(context.Background(), couple, negotiation.DecideLineInput{
		QuoteID: q1.ID, LineID: q1.Lines[0].ID, Decision: model.DecisionReject, Reason: "too expensive",
	})
	require.NoError(t, err)
	assert.Equal(t, model.QuoteRejected, q1.Status)
	assert.Equal(t, "too expensive", q1.Lines[0].RejectionReason)
	assert.True(t, q1.TotalValue.IsZero())

	q2 := f.submit(t, supplier2, d, photoLine(d, supplier2, "2500"), musicLine(d, supplier2, "1500", "0"))
	f.decide(t, q2, 0, model.DecisionAccept)
	q2 = f.decide(t, q2, 1, model.DecisionAccept)
	assert.Equal(t, model.QuoteAccepted, q2.Status)
	assert.Equal(t, model.DemandFulfilled, f.demand(t, d.ID).Status)
}

func TestFreezeAfterFirstQuote(t *testing.T) {
	f := newFixture(t)
	d := f.publish(t)
	f.submit(t, supplier, d, photoLine(d, supplier, "3000"))

	_, err := f.uc.RemoveDemandItem(context.Background(), couple, negotiation.RemoveDemandItemInput{
		DemandID: d.ID, ItemID: d.Items[1].ID,
	})
	assert.ErrorIs(t, err, model.ErrFrozen)

	_, err = f.uc.UpdateDemandHeader(context.Background(), couple, negotiation.UpdateDemandHeaderInput{
		DemandID: d.ID, Header: model.DemandHeader{Description: "changed"},
	})
	assert.ErrorIs(t, err, model.ErrFrozen)

	got := f.demand(t, d.ID)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, "Wedding in June", got.Description)
}

func TestExpirySweep(t *testing.T) {
	f := newFixture(t)
	d := f.publish(t)
	validUntil := time.Now().Add(time.Hour)

	q, err := f.uc.SubmitQuote(context.Background(), supplier, negotiation.SubmitQuoteInput{
		DemandID:   d.ID,
		ValidUntil: &validUntil,
		Lines:      []quote.LineInput{photoLine(d, supplier, "3000"), musicLine(d, supplier, "2000", "0")},
	})
	require.NoError(t, err)
	q = f.decide(t, q, 0, model.DecisionAccept)
	require.Equal(t, model.QuotePartiallyAccepted, q.Status)

	n, err := f.uc.RunExpirySweep(context.Background(), validUntil.Add(-time.Minute))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.uc.RunExpirySweep(context.Background(), validUntil.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got := f.quote(t, q.ID)
	assert.Equal(t, model.QuoteExpired, got.Status)
	assert.Equal(t, model.LineAccepted, got.Lines[0].Status)
	assert.Equal(t, model.LineRejected, got.Lines[1].Status)
	assert.Equal(t, model.ReasonExpired, got.Lines[1].RejectionReason)
	assert.Equal(t, "3000.00", got.TotalValue.StringFixed(2))

	n, err = f.uc.RunExpirySweep(context.Background(), validUntil.Add(time.Second))
	require.NoError(t, err)
	assert.Zero(t, n, "sweep is idempotent")
}

func TestExpirySweepRunsInBatches(t *testing.T) {
	f := newFixture(t)
	validUntil := time.Now().Add(time.Hour)
	var ids []string
	for i := 0; i < 5; i++ {
		d := f.publish(t)
		q, err := f.uc.SubmitQuote(context.Background(), supplier, negotiation.SubmitQuoteInput{
			DemandID:   d.ID,
			ValidUntil: &validUntil,
			Lines:      []quote.LineInput{photoLine(d, supplier, "100")},
		})
		require.NoError(t, err)
		ids = append(ids, q.ID)
	}

	n, err := f.uc.RunExpirySweep(context.Background(), validUntil.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	for _, id := range ids {
		assert.Equal(t, model.QuoteExpired, f.quote(t, id).Status)
	}
}

func TestCancellationCascade(t *testing.T) {
	f := newFixture(t)
	d := f.publish(t)

	q1 := f.submit(t, supplier, d, photoLine(d, supplier, "3000"))
	q2 := f.submit(t, supplier2, d, photoLine(d, supplier2, "3000"), musicLine(d, supplier2, "2000", "0"))
	f.decide(t, q2, 0, model.DecisionAccept)
	q3 := f.submit(t, supplier3, d, photoLine(d, supplier3, "3000"))
	q3, err := f.uc.WithdrawQuote(context.Background(), supplier3, q3.ID)
	require.NoError(t, err)
	q3Before := f.quote(t, q3.ID)

	got, err := f.uc.CancelDemand(context.Background(), couple, d.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DemandCancelled, got.Status)

	for _, id := range []string{q1.ID, q2.ID} {
		q := f.quote(t, id)
		assert.Equal(t, model.QuoteWithdrawn, q.Status)
		assert.Equal(t, model.ReasonDemandCancelled, q.StatusReason)
	}
	assert.Equal(t, model.LineAccepted, f.quote(t, q2.ID).Lines[0].Status)
	assert.Equal(t, model.ReasonDemandCancelled, f.quote(t, q2.ID).Lines[1].RejectionReason)
	assert.Equal(t, q3Before, f.quote(t, q3.ID))

	again, err := f.uc.CancelDemand(context.Background(), couple, d.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DemandCancelled, again.Status)

	_, err = f.uc.SubmitQuote(context.Background(), supplier, negotiation.SubmitQuoteInput{
		DemandID: d.ID, Lines: []quote.LineInput{photoLine(d, supplier, "1")},
	})
	assert.ErrorIs(t, err, model.ErrDemandNotOpen)
}
