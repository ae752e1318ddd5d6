package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrent/constants"
	"roomrent/models"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

type fixture struct {
	store  *MemoryStore
	area1  models.Area
	area2  models.Area
	owner  models.User
	renter models.User
	houses []*models.House
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{store: NewMemoryStore()}
	f.area1 = f.store.AddArea("Dong Cheng")
	f.area2 = f.store.AddArea("Xi Cheng")
	f.owner = f.store.AddUser(models.User{Name: "owner", Mobile: "13800000001"})
	f.renter = f.store.AddUser(models.User{Name: "renter", Mobile: "13800000002"})

	for i, spec := range []struct {
		area   uint
		price  int64
		orders int
	}{
		{f.area1.ID, 300, 1},
		{f.area1.ID, 100, 5},
		{f.area2.ID, 200, 3},
	} {
		h := &models.House{UserID: f.owner.ID, AreaID: spec.area, Title: fmt.Sprintf("house %d", i), Price: spec.price, OrderCount: spec.orders}
		require.NoError(t, f.store.CreateHouse(ctx, h, nil))
		f.houses = append(f.houses, h)
	}
	return f
}

func ids(houses []models.House) []uint {
	out := make([]uint, 0, len(houses))
	for _, h := range houses {
		out = append(out, h.ID)
	}
	return out
}

func TestMemoryStore_SearchHousesSorting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h := f.houses

	tests := []struct {
		sort string
		want []uint
	}{
		{constants.SortNewest, []uint{h[2].ID, h[1].ID, h[0].ID}},
		{"bogus", []uint{h[2].ID, h[1].ID, h[0].ID}},
		{constants.SortBooking, []uint{h[1].ID, h[2].ID, h[0].ID}},
		{constants.SortPriceAsc, []uint{h[1].ID, h[2].ID, h[0].ID}},
		{constants.SortPriceDesc, []uint{h[0].ID, h[2].ID, h[1].ID}},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			got, total, err := f.store.SearchHouses(ctx, HouseQuery{Sort: tt.sort, Limit: 10})
			require.NoError(t, err)
			assert.EqualValues(t, 3, total)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestMemoryStore_SearchHousesFilterAndPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, total, err := f.store.SearchHouses(ctx, HouseQuery{AreaID: f.area1.ID, Sort: constants.SortPriceAsc, Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []uint{f.houses[0].ID}, ids(got))
	assert.Equal(t, "Dong Cheng", got[0].Area.Name)
	assert.Equal(t, "owner", got[0].User.Name)

	got, total, err = f.store.SearchHouses(ctx, HouseQuery{ExcludeIDs: []uint{f.houses[1].ID}, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.NotContains(t, ids(got), f.houses[1].ID)

	got, _, err = f.store.SearchHouses(ctx, HouseQuery{Offset: 10, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore_ConflictingHouseIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rejected := &models.Order{UserID: f.renter.ID, HouseID: f.houses[0].ID, BeginDate: date("2024-06-10"), EndDate: date("2024-06-12"), Status: models.OrderStatusRejected}
	require.NoError(t, f.store.CreateOrder(ctx, rejected))
	waiting := &models.Order{UserID: f.renter.ID, HouseID: f.houses[2].ID, BeginDate: date("2024-06-20"), EndDate: date("2024-06-21")}
	require.NoError(t, f.store.CreateOrder(ctx, waiting))

	got, err := f.store.ConflictingHouseIDs(ctx, models.NewDateRange(date("2024-06-12"), date("2024-06-20")))
	require.NoError(t, err)
	assert.Equal(t, []uint{f.houses[0].ID, f.houses[2].ID}, got)

	start := date("2024-06-13")
	got, err = f.store.ConflictingHouseIDs(ctx, models.DateRange{Start: &start})
	require.NoError(t, err)
	assert.Equal(t, []uint{f.houses[2].ID}, got)

	n, err := f.store.CountOverlappingOrders(ctx, f.houses[0].ID, models.NewDateRange(date("2024-06-01"), date("2024-06-10")))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestMemoryStore_TransactionRollback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := f.store.Transaction(ctx, Serializable, func(tx Store) error {
		require.NoError(t, tx.IncrementOrderCount(ctx, f.houses[0].ID))
		o := &models.Order{UserID: f.renter.ID, HouseID: f.houses[0].ID, BeginDate: date("2024-06-10"), EndDate: date("2024-06-10")}
		require.NoError(t, tx.CreateOrder(ctx, o))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	h, err := f.store.HouseByID(ctx, f.houses[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, h.OrderCount)
	orders, err := f.store.OrdersByRenter(ctx, f.renter.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestMemoryStore_RollbackKeepsConcurrentWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := &models.Order{UserID: f.renter.ID, HouseID: f.houses[0].ID, BeginDate: date("2024-06-10"), EndDate: date("2024-06-12")}
	require.NoError(t, f.store.CreateOrder(ctx, o))

	entered := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- f.store.Transaction(ctx, Serializable, func(tx Store) error {
			close(entered)
			<-release
			return errors.New("conflict")
		})
	}()
	<-entered

	accepted := make(chan bool, 1)
	go func() {
		ok, err := f.store.TransitionOrder(ctx, o.ID, models.OrderStatusWaitAccept, models.OrderStatusWaitComment, "")
		assert.NoError(t, err)
		accepted <- ok
	}()

	select {
	case <-accepted:
		t.Fatal("write outside the transaction ran while it was open")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	assert.Error(t, <-txDone)
	assert.True(t, <-accepted)

	got, err := f.store.OrderInStatus(ctx, o.ID, models.OrderStatusWaitComment)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
}

func TestMemoryStore_FailInjection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.Fail("Transaction", ErrSerialization, 2)

	for i := 0; i < 2; i++ {
		err := f.store.Transaction(ctx, Serializable, func(Store) error { return nil })
		assert.True(t, IsSerializationFailure(err))
	}
	assert.NoError(t, f.store.Transaction(ctx, Serializable, func(Store) error { return nil }))
	assert.Equal(t, 3, f.store.Calls("Transaction"))
}

func TestMemoryStore_AddHouseImageSetsIndexOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.houses[0].ID

	require.NoError(t, f.store.AddHouseImage(ctx, id, "first"))
	require.NoError(t, f.store.AddHouseImage(ctx, id, "second"))
	assert.ErrorIs(t, f.store.AddHouseImage(ctx, 999, "x"), ErrNotFound)

	h, err := f.store.HouseDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "first", h.IndexImageURL)
	require.Len(t, h.Images, 2)
	assert.Equal(t, "second", h.Images[1].URL)
}

func TestMemoryStore_HouseFacilities(t *testing.T) {
	store := NewMemoryStore()
	store.SeedDefaults()
	ctx := context.Background()

	h := &models.House{UserID: 1, AreaID: 1, Title: "t"}
	require.NoError(t, store.CreateHouse(ctx, h, []uint{1, 3, 999}))

	detail, err := store.HouseDetail(ctx, h.ID)
	require.NoError(t, err)
	require.Len(t, detail.Facilities, 2)
	assert.Equal(t, uint(3), detail.Facilities[1].ID)

	_, err = store.HouseDetail(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_OrdersByRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o1 := &models.Order{UserID: f.renter.ID, HouseID: f.houses[0].ID, BeginDate: date("2024-06-01"), EndDate: date("2024-06-01")}
	o2 := &models.Order{UserID: f.renter.ID, HouseID: f.houses[1].ID, BeginDate: date("2024-06-02"), EndDate: date("2024-06-02")}
	require.NoError(t, f.store.CreateOrder(ctx, o1))
	require.NoError(t, f.store.CreateOrder(ctx, o2))

	byRenter, err := f.store.OrdersByRenter(ctx, f.renter.ID)
	require.NoError(t, err)
	require.Len(t, byRenter, 2)
	assert.Equal(t, o2.ID, byRenter[0].ID, "newest first")
	assert.Equal(t, f.houses[1].Title, byRenter[0].House.Title)

	byLandlord, err := f.store.OrdersByLandlord(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Len(t, byLandlord, 2)

	none, err := f.store.OrdersByLandlord(ctx, f.renter.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStore_TransitionOrderIsConditional(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := &models.Order{UserID: f.renter.ID, HouseID: f.houses[0].ID, BeginDate: date("2024-06-01"), EndDate: date("2024-06-01")}
	require.NoError(t, f.store.CreateOrder(ctx, o))

	ok, err := f.store.TransitionOrder(ctx, o.ID, models.OrderStatusWaitAccept, models.OrderStatusWaitComment, "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.store.TransitionOrder(ctx, o.ID, models.OrderStatusWaitAccept, models.OrderStatusRejected, "late")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.store.OrderInStatus(ctx, o.ID, models.OrderStatusWaitAccept)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsSerializationFailure(fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40P01"})))
	assert.False(t, IsSerializationFailure(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsSerializationFailure(errors.New("other")))
	assert.True(t, IsSerializationFailure(ErrSerialization))
}
