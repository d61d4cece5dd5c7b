package postgre

import (
	"fmt"
	"strings"

	repo "casebem/internal/repository"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildDemandWhere builds the WHERE clause + args shared by count and list.
func (r *implRepository) buildDemandWhere(opt repo.ListDemandsOptions) (string, []any) {
	var conditions []string
	var args []any
	idx := 1

	if opt.CoupleID != "" {
		conditions = append(conditions, fmt.Sprintf("d.couple_id = $%d", idx))
		args = append(args, opt.CoupleID)
		idx++
	}
	if len(opt.Statuses) > 0 {
		statuses := make([]string, len(opt.Statuses))
		for i, s := range opt.Statuses {
			statuses[i] = string(s)
		}
		conditions = append(conditions, fmt.Sprintf("d.status = ANY($%d)", idx))
		args = append(args, statuses)
		idx++
	}
	if opt.City != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(d.wedding_city) = LOWER($%d)", idx))
		args = append(args, opt.City)
		idx++
	}
	if opt.CategoryID != "" || opt.Kind != "" {
		var itemConds []string
		if opt.CategoryID != "" {
			itemConds = append(itemConds, fmt.Sprintf("di.category_id = $%d", idx))
			args = append(args, opt.CategoryID)
			idx++
		}
		if opt.Kind != "" {
			itemConds = append(itemConds, fmt.Sprintf("di.kind = $%d", idx))
			args = append(args, string(opt.Kind))
			idx++
		}
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM demand_item di WHERE di.demand_id = d.id AND %s)",
			strings.Join(itemConds, " AND ")))
	}
	if opt.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(d.description ILIKE $%d OR EXISTS (SELECT 1 FROM demand_item ds WHERE ds.demand_id = d.id AND ds.description ILIKE $%d))",
			idx, idx))
		args = append(args, "%"+likeEscaper.Replace(opt.Search)+"%")
		idx++
	}

	if len(conditions) == 0 {
		return "1=1", args
	}
	return strings.Join(conditions, " AND "), args
}

// buildDemandListQuery builds the full WHERE + ORDER + LIMIT + OFFSET clause for ListDemands.
func (r *implRepository) buildDemandListQuery(opt repo.ListDemandsOptions) (string, []any) {
	where, args := r.buildDemandWhere(opt)
	parts := []string{"WHERE " + where, "ORDER BY d.created_at DESC, d.id DESC"}
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
