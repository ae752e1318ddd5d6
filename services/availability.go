package services

import (
	"context"

	"roomrent/constants"
	"roomrent/errors"
	"roomrent/models"
	"roomrent/repository"
)

// HouseFilter is a normalized search request. Page is 1-based.
type HouseFilter struct {
	AreaID uint
	Range  models.DateRange
	Sort   string
	Page   int
}

// HousePage is one resolved page. Houses is empty when Page is past the end.
type HousePage struct {
	Houses      []models.House
	Total       int64
	TotalPage   int
	CurrentPage int
}

// AvailabilityResolver answers which houses are free for a stay. It reads
// only from the store and never from the cache.
type AvailabilityResolver struct {
	store    repository.Store
	pageSize int
}

func NewAvailabilityResolver(store repository.Store, pageSize int) *AvailabilityResolver {
	if pageSize <= 0 {
		pageSize = constants.HouseListPageCapacity
	}
	return &AvailabilityResolver{store: store, pageSize: pageSize}
}

func (r *AvailabilityResolver) PageSize() int {
	return r.pageSize
}

// NormalizeSort maps unknown sort keys to newest first.
func NormalizeSort(key string) string {
	switch key {
	case constants.SortBooking, constants.SortPriceAsc, constants.SortPriceDesc:
		return key
	default:
		return constants.SortNewest
	}
}

func (r *AvailabilityResolver) Search(ctx context.Context, f HouseFilter) (*HousePage, error) {
	if f.Page < 1 {
		return nil, errors.InvalidInput("page must be at least 1")
	}

	q := repository.HouseQuery{
		AreaID: f.AreaID,
		Sort:   NormalizeSort(f.Sort),
		Offset: (f.Page - 1) * r.pageSize,
		Limit:  r.pageSize,
	}
	if !f.Range.IsZero() {
		ids, err := r.store.ConflictingHouseIDs(ctx, f.Range)
		if err != nil {
			return nil, errors.Infrastructure("query conflicting orders", err)
		}
		q.ExcludeIDs = ids
	}

	houses, total, err := r.store.SearchHouses(ctx, q)
	if err != nil {
		return nil, errors.Infrastructure("query houses", err)
	}

	return &HousePage{
		Houses:      houses,
		Total:       total,
		TotalPage:   int((total + int64(r.pageSize) - 1) / int64(r.pageSize)),
		CurrentPage: f.Page,
	}, nil
}
