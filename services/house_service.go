package services

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/go-playground/validator/v10"

	"roomrent/cache"
	"roomrent/constants"
	"roomrent/dto"
	"roomrent/errors"
	"roomrent/models"
	"roomrent/repository"
	"roomrent/services/logger"
)

type PublishHouseInput struct {
	Title      string  `validate:"required"`
	Price      float64 `validate:"gte=0"` // major units
	AreaID     uint    `validate:"required"`
	Address    string  `validate:"required"`
	RoomCount  int     `validate:"gte=1"`
	Acreage    int     `validate:"gte=0"`
	Unit       string  `validate:"required"`
	Capacity   int     `validate:"gte=1"`
	Beds       string  `validate:"required"`
	Deposit    float64 `validate:"gte=0"` // major units
	MinDays    int     `validate:"gte=1"`
	MaxDays    int     `validate:"gte=0"`
	Facilities []uint
}

var validate = validator.New()

// Validate checks field bounds. MaxDays 0 means no upper limit.
func (in PublishHouseInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidInput, "invalid house fields", err)
	}
	if in.MaxDays != 0 && in.MaxDays < in.MinDays {
		return errors.InvalidInput("max days is less than min days")
	}
	return nil
}

// HouseService lets landlords publish houses and attach images.
type HouseService struct {
	store       repository.Store
	storage     ImageStorage
	cache       cache.Cache
	log         logger.Logger
	imagePrefix string
}

func NewHouseService(store repository.Store, storage ImageStorage, c cache.Cache, log logger.Logger, imagePrefix string) *HouseService {
	return &HouseService{store: store, storage: storage, cache: c, log: log, imagePrefix: imagePrefix}
}

// ToMinorUnits converts a price in major units, rounding to the nearest cent.
func ToMinorUnits(v float64) int64 {
	return int64(math.Round(v * 100))
}

func (s *HouseService) PublishHouse(ctx context.Context, ownerID uint, in PublishHouseInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	house := &models.House{
		UserID:    ownerID,
		AreaID:    in.AreaID,
		Title:     in.Title,
		Price:     ToMinorUnits(in.Price),
		Address:   in.Address,
		RoomCount: in.RoomCount,
		Acreage:   in.Acreage,
		Unit:      in.Unit,
		Capacity:  in.Capacity,
		Beds:      in.Beds,
		Deposit:   ToMinorUnits(in.Deposit),
		MinDays:   in.MinDays,
		MaxDays:   in.MaxDays,
	}
	if err := s.store.CreateHouse(ctx, house, in.Facilities); err != nil {
		return 0, errors.Infrastructure("save house", err)
	}
	s.log.Info("house %d published by user %d", house.ID, ownerID)
	return house.ID, nil
}

// SaveHouseImage uploads data and attaches it to the owner's house. The first
// image becomes the index image. Returns the public URL.
func (s *HouseService) SaveHouseImage(ctx context.Context, ownerID, houseID uint, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.InvalidInput("image is required")
	}
	if len(data) > constants.MaxHouseImageUploadBytes {
		return "", errors.InvalidInput("image is too large")
	}
	if ct := http.DetectContentType(data); len(ct) < 6 || ct[:6] != "image/" {
		return "", errors.InvalidInput("file is not an image")
	}

	house, err := s.store.HouseByID(ctx, houseID)
	if err != nil {
		return "", storeError(err, "house not found", "query house")
	}
	if house.UserID != ownerID {
		return "", errors.Forbidden("house belongs to another user")
	}

	if s.storage == nil {
		return "", errors.Infrastructure("upload image", fmt.Errorf("image storage is not configured"))
	}
	name, err := s.storage.Upload(ctx, data)
	if err != nil {
		return "", errors.Infrastructure("upload image", err)
	}

	if err := s.store.AddHouseImage(ctx, houseID, name); err != nil {
		return "", storeError(err, "house not found", "save house image")
	}
	cache.Invalidate(ctx, s.cache, s.log, cache.HouseDetailKey(houseID))
	return dto.ImageURL(s.imagePrefix, name), nil
}

// MyHouses lists the owner's houses, newest first.
func (s *HouseService) MyHouses(ctx context.Context, ownerID uint) ([]dto.HouseSummary, error) {
	houses, err := s.store.HousesByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Infrastructure("query owner houses", err)
	}
	return dto.NewHouseSummaries(houses, s.imagePrefix), nil
}
