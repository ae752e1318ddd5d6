package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrent/cache"
	"roomrent/errors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func validHouseInput() PublishHouseInput {
	return PublishHouseInput{
		Title:      "sunny loft",
		Price:      199.99,
		AreaID:     1,
		Address:    "8 Garden Rd",
		RoomCount:  2,
		Acreage:    60,
		Unit:       "two bedrooms",
		Capacity:   4,
		Beds:       "2x double",
		Deposit:    500,
		MinDays:    1,
		MaxDays:    0,
		Facilities: []uint{1, 2},
	}
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(19999), ToMinorUnits(199.99))
	assert.Equal(t, int64(12346), ToMinorUnits(123.456))
	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
	assert.Equal(t, int64(0), ToMinorUnits(0))
}

func TestHouseService_PublishHouse(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.store.AddFacility("wifi")
	ctx := context.Background()

	id, err := env.facade.Houses.PublishHouse(ctx, env.owner.ID, validHouseInput())
	require.NoError(t, err)

	h, err := env.store.HouseDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(19999), h.Price)
	assert.Equal(t, int64(50000), h.Deposit)
	assert.Equal(t, env.owner.ID, h.UserID)
	assert.Len(t, h.Facilities, 1, "unknown facility ids are ignored")
	assert.Empty(t, h.IndexImageURL)
}

func TestHouseService_PublishHouseValidation(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()

	mutations := map[string]func(*PublishHouseInput){
		"no title":       func(in *PublishHouseInput) { in.Title = "" },
		"no area":        func(in *PublishHouseInput) { in.AreaID = 0 },
		"negative price": func(in *PublishHouseInput) { in.Price = -1 },
		"no rooms":       func(in *PublishHouseInput) { in.RoomCount = 0 },
		"max below min":  func(in *PublishHouseInput) { in.MinDays, in.MaxDays = 5, 2 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			in := validHouseInput()
			mutate(&in)
			_, err := env.facade.Houses.PublishHouse(ctx, env.owner.ID, in)
			assert.Equal(t, errors.ErrCodeInvalidInput, errors.CodeOf(err))
		})
	}
	assert.Zero(t, env.store.Calls("CreateHouse"))
}

func TestHouseService_SaveHouseImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := NewMockImageStorage(ctrl)
	c := newMemoryCache(t)
	env := newTestEnv(t, c, storage)
	house := env.addHouse(t, env.area.ID, 100, "")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, cache.HouseDetailKey(house.ID), []byte(`{"houseId":1}`), 0))

	gomock.InOrder(
		storage.EXPECT().Upload(gomock.Any(), pngHeader).Return("houses/abc", nil),
		storage.EXPECT().Upload(gomock.Any(), pngHeader).Return("houses/def", nil),
	)

	url, err := env.facade.Houses.SaveHouseImage(ctx, env.owner.ID, house.ID, pngHeader)
	require.NoError(t, err)
	assert.Equal(t, testImagePrefix+"houses/abc", url)

	_, err = c.Get(ctx, cache.HouseDetailKey(house.ID))
	assert.ErrorIs(t, err, cache.ErrMiss, "detail invalidated")

	_, err = env.facade.Houses.SaveHouseImage(ctx, env.owner.ID, house.ID, pngHeader)
	require.NoError(t, err)

	h, err := env.store.HouseDetail(ctx, house.ID)
	require.NoError(t, err)
	assert.Equal(t, "houses/abc", h.IndexImageURL, "first image stays the index image")
	assert.Len(t, h.Images, 2)
}

func TestHouseService_SaveHouseImageRejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := NewMockImageStorage(ctrl)
	env := newTestEnv(t, nil, storage)
	house := env.addHouse(t, env.area.ID, 100, "")
	ctx := context.Background()

	_, err := env.facade.Houses.SaveHouseImage(ctx, env.owner.ID, 404, pngHeader)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))

	_, err = env.facade.Houses.SaveHouseImage(ctx, env.renter.ID, house.ID, pngHeader)
	assert.Equal(t, errors.ErrCodeForbidden, errors.CodeOf(err))

	_, err = env.facade.Houses.SaveHouseImage(ctx, env.owner.ID, house.ID, []byte("plain text, not an image"))
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.CodeOf(err))

	_, err = env.facade.Houses.SaveHouseImage(ctx, env.owner.ID, house.ID, nil)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.CodeOf(err))
}

func TestHouseService_SaveHouseImageStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := NewMockImageStorage(ctrl)
	env := newTestEnv(t, nil, storage)
	house := env.addHouse(t, env.area.ID, 100, "")
	ctx := context.Background()

	storage.EXPECT().Upload(gomock.Any(), gomock.Any()).Return("", stderrors.New("503 from cdn"))

	_, err := env.facade.Houses.SaveHouseImage(ctx, env.owner.ID, house.ID, pngHeader)
	assert.Equal(t, errors.ErrCodeInfrastructure, errors.CodeOf(err))
	assert.Zero(t, env.store.Calls("AddHouseImage"))
}

func TestHouseService_MyHouses(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()
	a := env.addHouse(t, env.area.ID, 100, "a.jpg")
	b := env.addHouse(t, env.area2.ID, 200, "")

	houses, err := env.facade.Houses.MyHouses(ctx, env.owner.ID)
	require.NoError(t, err)
	require.Len(t, houses, 2)
	assert.Equal(t, b.ID, houses[0].HouseID)
	assert.Equal(t, a.ID, houses[1].HouseID)
	assert.Equal(t, "Xi Cheng", houses[0].AreaName)
	assert.Equal(t, testImagePrefix+"a.jpg", houses[1].ImgURL)

	none, err := env.facade.Houses.MyHouses(ctx, env.renter.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
