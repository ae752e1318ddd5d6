// Package repository is the durable store. Relations are never lazy: every
// method states what it loads, so the I/O cost is visible at the call site.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"roomrent/constants"
	"roomrent/models"
)

var ErrNotFound = errors.New("record not found")

// HouseQuery is one page of the filtered house list.
type HouseQuery struct {
	AreaID     uint // 0 means any area
	ExcludeIDs []uint
	Sort       string
	Offset     int
	Limit      int
}

type Store interface {
	Areas(ctx context.Context) ([]models.Area, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)

	HouseByID(ctx context.Context, id uint) (*models.House, error)
	// HouseDetail loads the owner, area, facilities and images.
	HouseDetail(ctx context.Context, id uint) (*models.House, error)
	// HouseReviews returns completed orders with a review, newest first, renter loaded.
	HouseReviews(ctx context.Context, houseID uint, limit int) ([]models.Order, error)
	// TopHouses orders by order_count desc, area and owner loaded.
	TopHouses(ctx context.Context, limit int) ([]models.House, error)
	// SearchHouses returns one page and the total number of matches.
	SearchHouses(ctx context.Context, q HouseQuery) ([]models.House, int64, error)
	HousesByOwner(ctx context.Context, ownerID uint) ([]models.House, error)
	CreateHouse(ctx context.Context, h *models.House, facilityIDs []uint) error
	// AddHouseImage stores the image and sets it as index image if none is set.
	AddHouseImage(ctx context.Context, houseID uint, url string) error
	IncrementOrderCount(ctx context.Context, houseID uint) error

	// ConflictingHouseIDs lists houses with any order overlapping r, whatever its status.
	ConflictingHouseIDs(ctx context.Context, r models.DateRange) ([]uint, error)
	CountOverlappingOrders(ctx context.Context, houseID uint, r models.DateRange) (int64, error)
	CreateOrder(ctx context.Context, o *models.Order) error
	// OrderInStatus returns ErrNotFound unless the order exists with that status.
	OrderInStatus(ctx context.Context, orderID uint, status models.OrderStatus) (*models.Order, error)
	// TransitionOrder moves an order from one status to another and stores comment.
	// It reports false when the order was no longer in from.
	TransitionOrder(ctx context.Context, orderID uint, from, to models.OrderStatus, comment string) (bool, error)
	// OrdersByRenter and OrdersByLandlord return newest first with the house loaded.
	OrdersByRenter(ctx context.Context, userID uint) ([]models.Order, error)
	OrdersByLandlord(ctx context.Context, userID uint) ([]models.Order, error)

	// Transaction runs fn against a store bound to one transaction. Any error
	// from fn rolls everything back. opts may be nil.
	Transaction(ctx context.Context, opts *sql.TxOptions, fn func(tx Store) error) error
}

// Serializable is the isolation used around check-then-insert sequences.
var Serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

// ErrSerialization marks a transaction the database aborted to keep
// serializability. The whole transaction may be retried.
var ErrSerialization = errors.New("serialization failure")

// IsSerializationFailure reports whether err is a postgres serialization or
// deadlock abort (SQLSTATE 40001 / 40P01).
func IsSerializationFailure(err error) bool {
	if errors.Is(err, ErrSerialization) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// orderClause maps a sort key to an ORDER BY; unknown keys mean newest first.
func orderClause(sort string) string {
	switch sort {
	case constants.SortBooking:
		return "houses.order_count DESC, houses.id DESC"
	case constants.SortPriceAsc:
		return "houses.price ASC, houses.id ASC"
	case constants.SortPriceDesc:
		return "houses.price DESC, houses.id DESC"
	default:
		return "houses.created_at DESC, houses.id DESC"
	}
}

var (
	_ Store = (*GormStore)(nil)
	_ Store = (*MemoryStore)(nil)
	_ Store = memoryTx{}
)
