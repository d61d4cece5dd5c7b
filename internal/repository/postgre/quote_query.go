package postgre

import (
	"fmt"
	"strings"

	repo "casebem/internal/repository"
)

// buildQuoteWhere builds the WHERE clause + args shared by count and list.
func (r *implRepository) buildQuoteWhere(opt repo.ListQuotesOptions) (string, []any) {
	var conditions []string
	var args []any
	idx := 1

	if opt.DemandID != "" {
		conditions = append(conditions, fmt.Sprintf("q.demand_id = $%d", idx))
		args = append(args, opt.DemandID)
		idx++
	}
	if opt.SupplierID != "" {
		conditions = append(conditions, fmt.Sprintf("q.supplier_id = $%d", idx))
		args = append(args, opt.SupplierID)
		idx++
	}
	if opt.CoupleID != "" {
		conditions = append(conditions, fmt.Sprintf("q.demand_id IN (SELECT id FROM demand WHERE couple_id = $%d)", idx))
		args = append(args, opt.CoupleID)
		idx++
	}
	if len(opt.Statuses) > 0 {
		statuses := make([]string, len(opt.Statuses))
		for i, s := range opt.Statuses {
			statuses[i] = string(s)
		}
		conditions = append(conditions, fmt.Sprintf("q.status = ANY($%d)", idx))
		args = append(args, statuses)
		idx++
	}

	if len(conditions) == 0 {
		return "1=1", args
	}
	return strings.Join(conditions, " AND "), args
}

// buildQuoteListQuery builds the full WHERE + ORDER + LIMIT + OFFSET clause for ListQuotes.
func (r *implRepository) buildQuoteListQuery(opt repo.ListQuotesOptions) (string, []any) {
	where, args := r.buildQuoteWhere(opt)
	parts := []string{"WHERE " + where, "ORDER BY q.created_at DESC, q.id DESC"}
	idx := len(args) + 1

	if opt.Limit > 0 {
		parts = append(parts, fmt.Sprintf("LIMIT $%d", idx))
		args = append(args, opt.Limit)
		idx++
	}
	if opt.Offset > 0 {
		parts = append(parts, fmt.Sprintf("OFFSET $%d", idx))
		args = append(args, opt.Offset)
	}
	return strings.Join(parts, " "), args
}
