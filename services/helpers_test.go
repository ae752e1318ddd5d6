package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"roomrent/cache"
	"roomrent/config"
	"roomrent/models"
	"roomrent/repository"
	"roomrent/services/logger"
	"roomrent/services/notification"
)

const testImagePrefix = "http://img.test/"

type sentEvent struct {
	userID uint
	event  notification.Event
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []sentEvent
}

func (n *recordingNotifier) Notify(userID uint, ev notification.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, sentEvent{userID: userID, event: ev})
	return nil
}

func (n *recordingNotifier) sent() []sentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentEvent(nil), n.events...)
}

type testEnv struct {
	store    *repository.MemoryStore
	cache    cache.Cache
	notifier *recordingNotifier
	facade   *BookingFacade
	area     models.Area
	area2    models.Area
	owner    models.User
	renter   models.User
}

func testConfig() config.Config {
	return config.Config{
		Cache: config.Cache{
			AreaTTL:   2 * time.Hour,
			HomeTTL:   time.Hour,
			DetailTTL: 10 * time.Minute,
			ListTTL:   10 * time.Minute,
		},
		Listing:    config.Listing{PageSize: 2, HomePageMax: 5, CommentCount: 30},
		Cloudinary: config.Cloudinary{URLPrefix: testImagePrefix},
		Retry:      config.Retry{Attempts: 3, Base: time.Millisecond, Max: 2 * time.Millisecond},
	}
}

// newTestEnv wires the facade over an in-memory store. c may be nil.
func newTestEnv(t *testing.T, c cache.Cache, storage ImageStorage) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	env := &testEnv{
		store:    store,
		cache:    c,
		notifier: &recordingNotifier{},
		area:     store.AddArea("Dong Cheng"),
		area2:    store.AddArea("Xi Cheng"),
		owner:    store.AddUser(models.User{Name: "landlord", Mobile: "13800000001", AvatarURL: "owner.png"}),
		renter:   store.AddUser(models.User{Name: "renter", Mobile: "13800000002"}),
	}
	env.facade = NewBookingFacade(Deps{
		Store:    store,
		Cache:    c,
		Storage:  storage,
		Notifier: env.notifier,
		Log:      logger.NewNop(),
		Config:   testConfig(),
	})
	return env
}

func newMemoryCache(t *testing.T) *cache.MemoryCache {
	t.Helper()
	c, err := cache.NewMemoryCache(128)
	require.NoError(t, err)
	return c
}

func (e *testEnv) addHouse(t *testing.T, areaID uint, price int64, image string) *models.House {
	t.Helper()
	h := &models.House{
		UserID:        e.owner.ID,
		AreaID:        areaID,
		Title:         "house",
		Price:         price,
		Address:       "1 Main St",
		RoomCount:     1,
		Capacity:      2,
		MinDays:       1,
		IndexImageURL: image,
	}
	require.NoError(t, e.store.CreateHouse(context.Background(), h, nil))
	return h
}

func (e *testEnv) book(t *testing.T, renterID, houseID uint, start, end string) uint {
	t.Helper()
	id, err := e.facade.Orders.CreateOrder(context.Background(), CreateOrderInput{
		RenterID:  renterID,
		HouseID:   houseID,
		StartDate: date(start),
		EndDate:   date(end),
	})
	require.NoError(t, err)
	return id
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
