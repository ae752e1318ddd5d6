package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"roomrent/constants"
	"roomrent/models"
)

// Runs against a disposable postgres database named by TEST_DATABASE_DSN.
func newGormStore(t *testing.T) (*GormStore, *gorm.DB) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, db.Migrator().DropTable("house_facilities", &models.Order{}, &models.HouseImage{}, &models.House{}, &models.Facility{}, &models.Area{}, &models.User{}))
	require.NoError(t, AutoMigrate(ctx, db))
	return NewGormStore(db), db
}

func TestGormStore_OrderLifecycle(t *testing.T) {
	store, db := newGormStore(t)
	ctx := context.Background()

	owner := models.User{Name: "owner", Mobile: "13800000001"}
	renter := models.User{Name: "renter", Mobile: "13800000002"}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&renter).Error)

	areas, err := store.Areas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, len(DefaultAreas))

	house := &models.House{UserID: owner.ID, AreaID: areas[0].ID, Title: "loft", Price: 100}
	require.NoError(t, store.CreateHouse(ctx, house, []uint{1, 2}))
	require.NoError(t, store.AddHouseImage(ctx, house.ID, "a.jpg"))
	require.NoError(t, store.AddHouseImage(ctx, house.ID, "b.jpg"))

	detail, err := store.HouseDetail(ctx, house.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", detail.IndexImageURL)
	assert.Len(t, detail.Images, 2)
	assert.Len(t, detail.Facilities, 2)
	assert.Equal(t, "owner", detail.User.Name)

	order := &models.Order{UserID: renter.ID, HouseID: house.ID, BeginDate: date("2024-06-10"), EndDate: date("2024-06-12"), Days: 3, HousePrice: 100, Amount: 300, Status: models.OrderStatusWaitAccept}
	err = store.Transaction(ctx, Serializable, func(tx Store) error {
		n, err := tx.CountOverlappingOrders(ctx, house.ID, models.NewDateRange(order.BeginDate, order.EndDate))
		if err != nil {
			return err
		}
		require.Zero(t, n)
		return tx.CreateOrder(ctx, order)
	})
	require.NoError(t, err)

	conflicts, err := store.ConflictingHouseIDs(ctx, models.NewDateRange(date("2024-06-12"), date("2024-06-14")))
	require.NoError(t, err)
	assert.Equal(t, []uint{house.ID}, conflicts)

	houses, total, err := store.SearchHouses(ctx, HouseQuery{ExcludeIDs: conflicts, Sort: constants.SortNewest, Limit: 2})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, houses)

	ok, err := store.TransitionOrder(ctx, order.ID, models.OrderStatusWaitAccept, models.OrderStatusWaitComment, "")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.TransitionOrder(ctx, order.ID, models.OrderStatusWaitAccept, models.OrderStatusRejected, "x")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.IncrementOrderCount(ctx, house.ID))
	top, err := store.TopHouses(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 1, top[0].OrderCount)

	landlordOrders, err := store.OrdersByLandlord(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, landlordOrders, 1)
	assert.Equal(t, "loft", landlordOrders[0].House.Title)

	_, err = store.OrderInStatus(ctx, order.ID, models.OrderStatusWaitAccept)
	assert.ErrorIs(t, err, ErrNotFound)
}
