package builders

import (
	"fmt"
	"time"

	"roomrent/models"
)

// OrderBuilder assembles a new order step by step. Days, price snapshot and
// amount are derived in Build so callers cannot set them inconsistently.
type OrderBuilder struct {
	order *models.Order
	house *models.House
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		order: &models.Order{Status: models.OrderStatusWaitAccept},
	}
}

// ForRenter sets who places the order.
func (b *OrderBuilder) ForRenter(userID uint) *OrderBuilder {
	b.order.UserID = userID
	return b
}

// ForHouse sets the house and snapshots its current nightly price.
func (b *OrderBuilder) ForHouse(house *models.House) *OrderBuilder {
	b.house = house
	return b
}

// Stay sets the inclusive date range.
func (b *OrderBuilder) Stay(start, end time.Time) *OrderBuilder {
	b.order.BeginDate = start
	b.order.EndDate = end
	return b
}

func (b *OrderBuilder) Build() (*models.Order, error) {
	if b.house == nil {
		return nil, fmt.Errorf("order builder: house is required")
	}
	if b.order.UserID == 0 {
		return nil, fmt.Errorf("order builder: renter is required")
	}
	if b.order.BeginDate.IsZero() || b.order.EndDate.IsZero() || b.order.EndDate.Before(b.order.BeginDate) {
		return nil, fmt.Errorf("order builder: invalid stay %s..%s", b.order.BeginDate, b.order.EndDate)
	}

	o := *b.order
	o.HouseID = b.house.ID
	o.Days = models.StayDays(o.BeginDate, o.EndDate)
	o.HousePrice = b.house.Price
	o.Amount = int64(o.Days) * o.HousePrice
	return &o, nil
}
