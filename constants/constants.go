package constants

import "time"

// Cache keys. The list key is a redis hash whose fields are page numbers.
const (
	AreaInfoCacheKey     = "area_info"
	HomePageCacheKey     = "home_page_data"
	HouseDetailKeyPrefix = "house_info_"
	HouseListKeyPrefix   = "houses_"
)

// Default cache lifetimes, overridable through config.
const (
	AreaInfoCacheTTL    = 2 * time.Hour
	HomePageCacheTTL    = time.Hour
	HouseDetailCacheTTL = 10 * time.Minute
	HouseListCacheTTL   = 10 * time.Minute
)

const (
	HouseListPageCapacity    = 2
	HomePageMaxHouses        = 5
	HouseDetailCommentCount  = 30
	AnonymousViewerID        = -1
	DateLayout               = "2006-01-02"
	RoleLandlord             = "landlord"
	DefaultImageURLPrefix    = "https://res.cloudinary.com/roomrent/image/upload/"
	HouseImageUploadFolder   = "houses"
	MaxHouseImageUploadBytes = 8 << 20
)

// Sort keys accepted by the house list.
const (
	SortNewest    = "new"
	SortBooking   = "booking"
	SortPriceAsc  = "price-inc"
	SortPriceDesc = "price-des"
)
