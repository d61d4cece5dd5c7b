package memory

import (
	"context"
	"sort"
	"strings"

	"casebem/internal/model"
	repo "casebem/internal/repository"
)

func (r *implRepository) CreateDemand(ctx context.Context, opt repo.CreateDemandOptions) (model.Demand, error) {
	if _, exists := r.demand(ctx, opt.ID); exists {
		return model.Demand{}, repo.ErrDuplicateKey
	}

	d := model.Demand{
		ID:           opt.ID,
		CoupleID:     opt.CoupleID,
		DemandHeader: opt.Header,
		Status:       opt.Status,
		CreatedAt:    opt.CreatedAt,
		UpdatedAt:    opt.CreatedAt,
		Items:        make([]model.DemandItem, len(opt.Items)),
	}
	for i, it := range opt.Items {
		it.DemandID = opt.ID
		d.Items[i] = it
	}
	r.stageDemand(ctx, d)
	return cloneDemand(d), nil
}

// GetOneDemand returns a zero Demand when not found.
func (r *implRepository) GetOneDemand(ctx context.Context, opt repo.GetOneDemandOptions) (model.Demand, error) {
	if opt.ForUpdate {
		if err := r.lock(ctx, demandKey(opt.ID)); err != nil {
			return model.Demand{}, err
		}
	}
	d, ok := r.demand(ctx, opt.ID)
	if !ok {
		return model.Demand{}, nil
	}
	return d, nil
}

func (r *implRepository) ListDemands(ctx context.Context, opt repo.ListDemandsOptions) ([]model.Demand, int, error) {
	var matched []model.Demand
	for _, d := range r.allDemands(ctx) {
		if matchDemand(d, opt) {
			matched = append(matched, d)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return page(matched, opt.Limit, opt.Offset), len(matched), nil
}

func matchDemand(d model.Demand, opt repo.ListDemandsOptions) bool {
	if opt.CoupleID != "" && d.CoupleID != opt.CoupleID {
		return false
	}
	if len(opt.Statuses) > 0 && !containsDemandStatus(opt.Statuses, d.Status) {
		return false
	}
	if opt.City != "" && !strings.EqualFold(d.WeddingCity, opt.City) {
		return false
	}
	if opt.CategoryID != "" || opt.Kind != "" {
		found := false
		for _, it := range d.Items {
			if (opt.CategoryID == "" || it.CategoryID == opt.CategoryID) && (opt.Kind == "" || it.Kind == opt.Kind) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if opt.Search != "" {
		needle := strings.ToLower(opt.Search)
		hit := strings.Contains(strings.ToLower(d.Description), needle)
		for _, it := range d.Items {
			if hit {
				break
			}
			hit = strings.Contains(strings.ToLower(it.Description), needle)
		}
		if !hit {
			return false
		}
	}
	return true
}

func containsDemandStatus(list []model.DemandStatus, s model.DemandStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (r *implRepository) UpdateDemand(ctx context.Context, opt repo.UpdateDemandOptions) error {
	d, ok := r.demand(ctx, opt.ID)
	if !ok {
		return repo.ErrFailedToUpdate
	}
	d.DemandHeader = opt.Header
	d.UpdatedAt = opt.UpdatedAt
	r.stageDemand(ctx, d)
	return nil
}

func (r *implRepository) UpdateDemandStatus(ctx context.Context, opt repo.UpdateDemandStatusOptions) error {
	d, ok := r.demand(ctx, opt.ID)
	if !ok {
		return repo.ErrFailedToUpdate
	}
	d.Status = opt.Status
	d.UpdatedAt = opt.UpdatedAt
	r.stageDemand(ctx, d)
	return nil
}

func (r *implRepository) CreateDemandItem(ctx context.Context, opt repo.CreateDemandItemOptions) error {
	d, ok := r.demand(ctx, opt.Item.DemandID)
	if !ok {
		return repo.ErrFailedToInsert
	}
	if _, exists := d.Item(opt.Item.ID); exists {
		return repo.ErrDuplicateKey
	}
	d.Items = append(d.Items, opt.Item)
	d.UpdatedAt = opt.UpdatedAt
	r.stageDemand(ctx, d)
	return nil
}

func (r *implRepository) UpdateDemandItem(ctx context.Context, opt repo.UpdateDemandItemOptions) error {
	d, ok := r.demand(ctx, opt.Item.DemandID)
	if !ok {
		return repo.ErrFailedToUpdate
	}
	for i := range d.Items {
		if d.Items[i].ID == opt.Item.ID {
			d.Items[i] = opt.Item
			d.UpdatedAt = opt.UpdatedAt
			r.stageDemand(ctx, d)
			return nil
		}
	}
	return repo.ErrFailedToUpdate
}

func (r *implRepository) DeleteDemandItem(ctx context.Context, opt repo.DeleteDemandItemOptions) error {
	d, ok := r.demand(ctx, opt.DemandID)
	if !ok {
		return repo.ErrFailedToDelete
	}
	kept := d.Items[:0]
	for _, it := range d.Items {
		if it.ID != opt.ItemID {
			kept = append(kept, it)
		}
	}
	d.Items = kept
	d.UpdatedAt = opt.UpdatedAt
	r.stageDemand(ctx, d)
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
