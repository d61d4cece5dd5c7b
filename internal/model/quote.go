package model

import (
	"time"

	"github.com/shopspring/decimal"

	"casebem/pkg/money"
)

// QuoteStatus is the lifecycle state of a Quote.
type QuoteStatus string

const (
	QuotePending           QuoteStatus = "PENDING"
	QuotePartiallyAccepted QuoteStatus = "PARTIALLY_ACCEPTED"
	QuoteAccepted          QuoteStatus = "ACCEPTED"
	QuoteRejected          QuoteStatus = "REJECTED"
	QuoteWithdrawn         QuoteStatus = "WITHDRAWN"
	QuoteExpired           QuoteStatus = "EXPIRED"
)

// AllQuoteStatuses lists every quote status in display order.
var AllQuoteStatuses = []QuoteStatus{
	QuotePending, QuotePartiallyAccepted, QuoteAccepted,
	QuoteRejected, QuoteWithdrawn, QuoteExpired,
}

// BlockingQuoteStatuses are the statuses that prevent a second quote from the
// same supplier and freeze the demand structure.
var BlockingQuoteStatuses = []QuoteStatus{QuotePending, QuotePartiallyAccepted, QuoteAccepted}

// OpenQuoteStatuses are the statuses in which lines may still be decided.
var OpenQuoteStatuses = []QuoteStatus{QuotePending, QuotePartiallyAccepted}

// ValidQuoteStatus reports whether s is a known quote status.
func ValidQuoteStatus(s QuoteStatus) bool {
	for _, v := range AllQuoteStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition can leave s.
func (s QuoteStatus) IsTerminal() bool {
	switch s {
	case QuoteAccepted, QuoteRejected, QuoteWithdrawn, QuoteExpired:
		return true
	}
	return false
}

// IsOpen reports whether lines of a quote in status s can still be decided.
func (s QuoteStatus) IsOpen() bool {
	return s == QuotePending || s == QuotePartiallyAccepted
}

// IsBlocking reports whether s counts for the duplicate and freeze checks.
func (s QuoteStatus) IsBlocking() bool {
	return s.IsOpen() || s == QuoteAccepted
}

// LineStatus is the decision state of a QuoteLine.
type LineStatus string

const (
	LinePending  LineStatus = "PENDING"
	LineAccepted LineStatus = "ACCEPTED"
	LineRejected LineStatus = "REJECTED"
)

// Decision is a couple's verdict on a line.
type Decision string

const (
	DecisionAccept Decision = "ACCEPT"
	DecisionReject Decision = "REJECT"
)

// Target returns the line status a decision moves to.
func (d Decision) Target() (LineStatus, bool) {
	switch d {
	case DecisionAccept:
		return LineAccepted, true
	case DecisionReject:
		return LineRejected, true
	}
	return "", false
}

// Quote is a supplier's offer against a Demand.
type Quote struct {
	ID           string
	DemandID     string
	SupplierID   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ValidUntil   *time.Time
	Status       QuoteStatus
	StatusReason string
	Notes        string
	TotalValue   decimal.Decimal
	Lines        []QuoteLine
}

// QuoteLine proposes one catalog item for one demand item.
type QuoteLine struct {
	ID              string
	QuoteID         string
	DemandItemID    string
	ItemID          string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPct     decimal.Decimal
	Status          LineStatus
	RejectionReason string
	Notes           string
	DecidedAt       *time.Time
}

// Total is the discounted, rounded amount of the line.
func (l QuoteLine) Total() decimal.Decimal {
	return money.LineTotal(l.Quantity, l.UnitPrice, l.DiscountPct)
}

// TotalValue sums the totals of every line that is not REJECTED.
func TotalValue(lines []QuoteLine) decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(lines))
	for _, l := range lines {
		if l.Status == LineRejected {
			continue
		}
		amounts = append(amounts, l.Total())
	}
	return money.Sum(amounts...)
}

// RecomputeQuoteStatus derives a quote status from its current lines.
// ACCEPTED needs every line accepted; any other mix holding an accepted line
// is PARTIALLY_ACCEPTED, even once nothing is pending.
func RecomputeQuoteStatus(lines []QuoteLine) QuoteStatus {
	var pending, accepted, rejected int
	for _, l := range lines {
		switch l.Status {
		case LinePending:
			pending++
		case LineAccepted:
			accepted++
		case LineRejected:
			rejected++
		}
	}

	switch {
	case len(lines) > 0 && accepted == len(lines):
		return QuoteAccepted
	case accepted > 0:
		return QuotePartiallyAccepted
	case len(lines) > 0 && rejected == len(lines):
		return QuoteRejected
	default:
		return QuotePending
	}
}

// Line returns a pointer to the line with the given id.
func (q *Quote) Line(id string) *QuoteLine {
	for i := range q.Lines {
		if q.Lines[i].ID == id {
			return &q.Lines[i]
		}
	}
	return nil
}

// Refresh recomputes the derived status and total from the lines.
func (q *Quote) Refresh() {
	q.Status = RecomputeQuoteStatus(q.Lines)
	q.TotalValue = TotalValue(q.Lines)
}

// Close moves the quote to a terminal status written directly, WITHDRAWN or
// EXPIRED, rejecting every still pending line with reason.
func (q *Quote) Close(status QuoteStatus, reason string, now time.Time) []QuoteLine {
	var changed []QuoteLine
	for i := range q.Lines {
		if q.Lines[i].Status != LinePending {
			continue
		}
		q.Lines[i].Status = LineRejected
		q.Lines[i].RejectionReason = reason
		decided := now
		q.Lines[i].DecidedAt = &decided
		changed = append(changed, q.Lines[i])
	}
	q.Status = status
	q.StatusReason = reason
	q.TotalValue = TotalValue(q.Lines)
	q.UpdatedAt = now
	return changed
}

// IsExpiredAt reports whether the validity window has elapsed at now.
func (q Quote) IsExpiredAt(now time.Time) bool {
	return q.ValidUntil != nil && q.ValidUntil.Before(now)
}
