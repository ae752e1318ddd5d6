package commands

import (
	"context"
	"errors"

	"roomrent/models"
	"roomrent/repository"
)

var (
	// ErrDatesTaken means another order already holds part of the stay.
	ErrDatesTaken = errors.New("dates already booked")
	// ErrStaleOrder means the order left the expected status before the write.
	ErrStaleOrder = errors.New("order status changed")
)

// OrderCommand is one write against the store, run inside the caller's transaction.
type OrderCommand interface {
	Execute(ctx context.Context, tx repository.Store) error
}

// PlaceOrderCommand inserts an order unless its stay overlaps an existing one.
type PlaceOrderCommand struct {
	order *models.Order
}

func NewPlaceOrderCommand(order *models.Order) *PlaceOrderCommand {
	return &PlaceOrderCommand{order: order}
}

func (c *PlaceOrderCommand) Execute(ctx context.Context, tx repository.Store) error {
	stay := models.NewDateRange(c.order.BeginDate, c.order.EndDate)
	n, err := tx.CountOverlappingOrders(ctx, c.order.HouseID, stay)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrDatesTaken
	}
	return tx.CreateOrder(ctx, c.order)
}

// TransitionOrderCommand persists a status change already applied to order
// by its OrderState. The write only lands if the row is still in from.
type TransitionOrderCommand struct {
	order *models.Order
	from  models.OrderStatus
}

func NewTransitionOrderCommand(order *models.Order, from models.OrderStatus) *TransitionOrderCommand {
	return &TransitionOrderCommand{order: order, from: from}
}

func (c *TransitionOrderCommand) Execute(ctx context.Context, tx repository.Store) error {
	ok, err := tx.TransitionOrder(ctx, c.order.ID, c.from, c.order.Status, c.order.Comment)
	if err != nil {
		return err
	}
	if !ok {
		return ErrStaleOrder
	}
	return nil
}

// CompleteOrderCommand stores the review and bumps the house's order count.
type CompleteOrderCommand struct {
	transition *TransitionOrderCommand
}

func NewCompleteOrderCommand(order *models.Order) *CompleteOrderCommand {
	return &CompleteOrderCommand{
		transition: NewTransitionOrderCommand(order, models.OrderStatusWaitComment),
	}
}

func (c *CompleteOrderCommand) Execute(ctx context.Context, tx repository.Store) error {
	if err := c.transition.Execute(ctx, tx); err != nil {
		return err
	}
	return tx.IncrementOrderCount(ctx, c.transition.order.HouseID)
}
