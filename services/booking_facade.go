package services

import (
	"roomrent/cache"
	"roomrent/config"
	"roomrent/constants"
	"roomrent/repository"
	"roomrent/services/logger"
	"roomrent/services/notification"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	Store    repository.Store
	Cache    cache.Cache // may be nil: every read then goes to the store
	Storage  ImageStorage
	Notifier notification.Service
	Log      logger.Logger
	Config   config.Config
}

// BookingFacade builds the engine's services over one set of dependencies.
type BookingFacade struct {
	Listings *ListingService
	Orders   *OrderService
	Houses   *HouseService
}

func NewBookingFacade(d Deps) *BookingFacade {
	if d.Log == nil {
		d.Log = logger.NewNop()
	}
	prefix := d.Config.Cloudinary.URLPrefix
	if prefix == "" {
		prefix = constants.DefaultImageURLPrefix
	}
	resolver := NewAvailabilityResolver(d.Store, d.Config.Listing.PageSize)

	return &BookingFacade{
		Listings: NewListingService(d.Store, d.Cache, resolver, d.Log, ListingConfig{
			Cache:       d.Config.Cache,
			Listing:     d.Config.Listing,
			ImagePrefix: prefix,
		}),
		Orders: NewOrderService(d.Store, d.Cache, d.Log, d.Notifier, d.Config.Retry, prefix),
		Houses: NewHouseService(d.Store, d.Storage, d.Cache, d.Log, prefix),
	}
}
