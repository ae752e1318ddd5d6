package services

import (
	"context"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"roomrent/cache"
	"roomrent/config"
	"roomrent/constants"
	"roomrent/dto"
	"roomrent/errors"
	"roomrent/repository"
	"roomrent/services/logger"
)

type ListingConfig struct {
	Cache       config.Cache
	Listing     config.Listing
	ImagePrefix string
}

// ListingService serves the read-mostly views through the cache. Every view
// is stored as the exact JSON returned to clients.
type ListingService struct {
	store    repository.Store
	cache    cache.Cache
	resolver *AvailabilityResolver
	log      logger.Logger
	cfg      ListingConfig
}

func NewListingService(store repository.Store, c cache.Cache, resolver *AvailabilityResolver, log logger.Logger, cfg ListingConfig) *ListingService {
	if cfg.Listing.HomePageMax <= 0 {
		cfg.Listing.HomePageMax = constants.HomePageMaxHouses
	}
	if cfg.Listing.CommentCount <= 0 {
		cfg.Listing.CommentCount = constants.HouseDetailCommentCount
	}
	if cfg.Cache.AreaTTL <= 0 {
		cfg.Cache.AreaTTL = constants.AreaInfoCacheTTL
	}
	if cfg.Cache.HomeTTL <= 0 {
		cfg.Cache.HomeTTL = constants.HomePageCacheTTL
	}
	if cfg.Cache.DetailTTL <= 0 {
		cfg.Cache.DetailTTL = constants.HouseDetailCacheTTL
	}
	if cfg.Cache.ListTTL <= 0 {
		cfg.Cache.ListTTL = constants.HouseListCacheTTL
	}
	return &ListingService{store: store, cache: c, resolver: resolver, log: log, cfg: cfg}
}

func (s *ListingService) Areas(ctx context.Context) (json.RawMessage, error) {
	e := cache.Entry{Key: cache.AreaListKey(), TTL: s.cfg.Cache.AreaTTL}
	v, _, err := cache.Aside(ctx, s.cache, s.log, e, s.loadAreas)
	return v, err
}

func (s *ListingService) loadAreas(ctx context.Context) ([]byte, bool, error) {
	areas, err := s.store.Areas(ctx)
	if err != nil {
		return nil, false, errors.Infrastructure("query areas", err)
	}
	out := make([]dto.AreaResponse, 0, len(areas))
	for _, a := range areas {
		out = append(out, dto.NewAreaResponse(a))
	}
	return encode(out)
}

// HomePage lists the most booked houses that have an index image.
func (s *ListingService) HomePage(ctx context.Context) (json.RawMessage, error) {
	e := cache.Entry{Key: cache.HomePageKey(), TTL: s.cfg.Cache.HomeTTL}
	v, _, err := cache.Aside(ctx, s.cache, s.log, e, s.loadHomePage)
	return v, err
}

func (s *ListingService) loadHomePage(ctx context.Context) ([]byte, bool, error) {
	houses, err := s.store.TopHouses(ctx, s.cfg.Listing.HomePageMax)
	if err != nil {
		return nil, false, errors.Infrastructure("query top houses", err)
	}
	out := make([]dto.HouseSummary, 0, len(houses))
	for _, h := range houses {
		if h.IndexImageURL == "" {
			continue
		}
		out = append(out, dto.NewHouseSummary(h, s.cfg.ImagePrefix))
	}
	return encode(out)
}

// HouseDetail returns the cached house payload with viewerID spliced in.
// Anonymous viewers are constants.AnonymousViewerID.
func (s *ListingService) HouseDetail(ctx context.Context, houseID uint, viewerID int64) (*dto.HouseDetailResponse, error) {
	if houseID == 0 {
		return nil, errors.InvalidInput("house id is required")
	}
	e := cache.Entry{Key: cache.HouseDetailKey(houseID), TTL: s.cfg.Cache.DetailTTL}
	v, _, err := cache.Aside(ctx, s.cache, s.log, e, func(ctx context.Context) ([]byte, bool, error) {
		return s.loadHouseDetail(ctx, houseID)
	})
	if err != nil {
		return nil, err
	}
	return &dto.HouseDetailResponse{UserID: viewerID, House: v}, nil
}

func (s *ListingService) loadHouseDetail(ctx context.Context, houseID uint) ([]byte, bool, error) {
	house, err := s.store.HouseDetail(ctx, houseID)
	if err != nil {
		return nil, false, storeError(err, "house not found", "query house detail")
	}
	reviews, err := s.store.HouseReviews(ctx, houseID, s.cfg.Listing.CommentCount)
	if err != nil {
		return nil, false, errors.Infrastructure("query house reviews", err)
	}
	return encode(dto.NewHouseDetail(*house, reviews, s.cfg.ImagePrefix))
}

// SearchHouses returns one page of the filtered list. Pages within range are
// cached as fields of one hash per filter; out-of-range pages never are.
func (s *ListingService) SearchHouses(ctx context.Context, f HouseFilter) (json.RawMessage, error) {
	if f.Page < 1 {
		return nil, errors.InvalidInput("page must be at least 1")
	}
	f.Sort = NormalizeSort(f.Sort)

	e := cache.Entry{
		Key:   houseListKey(f),
		Field: cache.PageField(f.Page),
		TTL:   s.cfg.Cache.ListTTL,
	}
	v, _, err := cache.Aside(ctx, s.cache, s.log, e, func(ctx context.Context) ([]byte, bool, error) {
		page, err := s.resolver.Search(ctx, f)
		if err != nil {
			return nil, false, err
		}
		body, _, err := encode(dto.HouseListPage{
			Houses:      dto.NewHouseSummaries(page.Houses, s.cfg.ImagePrefix),
			TotalPage:   page.TotalPage,
			CurrentPage: page.CurrentPage,
		})
		return body, err == nil && page.CurrentPage <= page.TotalPage, err
	})
	return v, err
}

// WarmUp recomputes the area list and the home page and overwrites both keys.
func (s *ListingService) WarmUp(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	views := []struct {
		entry cache.Entry
		load  cache.Loader
	}{
		{cache.Entry{Key: cache.AreaListKey(), TTL: s.cfg.Cache.AreaTTL}, s.loadAreas},
		{cache.Entry{Key: cache.HomePageKey(), TTL: s.cfg.Cache.HomeTTL}, s.loadHomePage},
	}
	for _, v := range views {
		body, _, err := v.load(ctx)
		if err != nil {
			return err
		}
		if err := s.cache.Set(ctx, v.entry.Key, body, v.entry.TTL); err != nil {
			s.log.Error("cache warm %s: %v", v.entry, err)
		}
	}
	return nil
}

func houseListKey(f HouseFilter) string {
	area := ""
	if f.AreaID != 0 {
		area = strconv.FormatUint(uint64(f.AreaID), 10)
	}
	return cache.HouseListKey(area, formatDate(f.Range.Start), formatDate(f.Range.End), f.Sort)
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(constants.DateLayout)
}

func encode(v interface{}) ([]byte, bool, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, false, errors.Infrastructure("encode payload", err)
	}
	return b, true, nil
}

// storeError maps a missing row to NOT_FOUND and anything else to an infrastructure error.
func storeError(err error, notFound, op string) error {
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NotFound(notFound)
	}
	return errors.Infrastructure(op, err)
}
