package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"roomrent/builders"
	"roomrent/cache"
	"roomrent/commands"
	"roomrent/config"
	"roomrent/constants"
	"roomrent/dto"
	"roomrent/errors"
	"roomrent/models"
	"roomrent/repository"
	"roomrent/services/logger"
	"roomrent/services/notification"
	"roomrent/utils"
)

const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

type CreateOrderInput struct {
	RenterID  uint
	HouseID   uint
	StartDate time.Time
	EndDate   time.Time
}

type TransitionInput struct {
	OrderID uint
	ActorID uint
	Action  string
	Reason  string
}

type CommentInput struct {
	OrderID  uint
	RenterID uint
	Comment  string
}

// OrderService drives orders from creation to review.
type OrderService struct {
	store       repository.Store
	cache       cache.Cache
	log         logger.Logger
	notifier    notification.Service
	retry       config.Retry
	imagePrefix string
}

func NewOrderService(store repository.Store, c cache.Cache, log logger.Logger, notifier notification.Service, retry config.Retry, imagePrefix string) *OrderService {
	if notifier == nil {
		notifier = notification.Nop{}
	}
	return &OrderService{store: store, cache: c, log: log, notifier: notifier, retry: retry, imagePrefix: imagePrefix}
}

// CreateOrder books [StartDate, EndDate] for the renter. The overlap check and
// the insert share one serializable transaction, retried on serialization failures.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (uint, error) {
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return 0, errors.InvalidInput("start and end dates are required")
	}
	if in.EndDate.Before(in.StartDate) {
		return 0, errors.InvalidInput("start date is after end date")
	}

	var (
		order *models.Order
		owner uint
	)
	err := utils.Retry(ctx, s.retry, repository.IsSerializationFailure, func() error {
		return s.store.Transaction(ctx, repository.Serializable, func(tx repository.Store) error {
			house, err := tx.HouseByID(ctx, in.HouseID)
			if err != nil {
				return storeError(err, "house not found", "query house")
			}
			if house.UserID == in.RenterID {
				return errors.Forbidden("landlord cannot book own house")
			}

			o, err := builders.NewOrderBuilder().
				ForRenter(in.RenterID).
				ForHouse(house).
				Stay(in.StartDate, in.EndDate).
				Build()
			if err != nil {
				return errors.InvalidInput(err.Error())
			}
			if err := commands.NewPlaceOrderCommand(o).Execute(ctx, tx); err != nil {
				return err
			}
			order, owner = o, house.UserID
			return nil
		})
	})

	switch {
	case err == nil:
	case stderrors.Is(err, commands.ErrDatesTaken):
		return 0, errors.Conflict("house is already booked for these dates")
	case repository.IsSerializationFailure(err):
		s.log.Info("order for house %d lost a concurrent booking race: %v", in.HouseID, err)
		return 0, errors.Conflict("house is already booked for these dates")
	case errors.IsAppError(err):
		return 0, err
	default:
		return 0, errors.Infrastructure("create order", err)
	}

	s.log.Info("order %d created for house %d by user %d", order.ID, order.HouseID, order.UserID)
	s.notify(owner, notification.NewMessageBuilder(order).Build(notification.EventOrderCreated))
	return order.ID, nil
}

// Transition lets the landlord accept or reject a waiting order. Missing,
// non-waiting and foreign orders all fail with the same error.
func (s *OrderService) Transition(ctx context.Context, in TransitionInput) error {
	if in.Action != ActionAccept && in.Action != ActionReject {
		return errors.InvalidInput("action must be accept or reject")
	}

	order, err := s.store.OrderInStatus(ctx, in.OrderID, models.OrderStatusWaitAccept)
	if err != nil {
		return invalidOperation(err, "query order")
	}
	house, err := s.store.HouseByID(ctx, order.HouseID)
	if err != nil {
		return invalidOperation(err, "query house")
	}
	if house.UserID != in.ActorID {
		return errors.InvalidOperation()
	}

	from := order.Status
	state := models.GetOrderState(from)
	event := notification.EventOrderAccepted
	if in.Action == ActionAccept {
		err = state.Accept(order)
	} else {
		reason := strings.TrimSpace(in.Reason)
		if reason == "" {
			return errors.InvalidInput("reject reason is required")
		}
		err = state.Reject(order, reason)
		event = notification.EventOrderRejected
	}
	if err != nil {
		return errors.InvalidOperation()
	}

	if err := commands.NewTransitionOrderCommand(order, from).Execute(ctx, s.store); err != nil {
		return invalidOperation(err, "update order")
	}

	s.log.Info("order %d moved %s -> %s by user %d", order.ID, from, order.Status, in.ActorID)
	s.notify(order.UserID, notification.NewMessageBuilder(order).Build(event))
	return nil
}

// Comment completes an accepted order with the renter's review and bumps the
// house's order count in one transaction, then drops the cached detail view.
func (s *OrderService) Comment(ctx context.Context, in CommentInput) error {
	review := strings.TrimSpace(in.Comment)
	if review == "" {
		return errors.InvalidInput("comment is required")
	}

	order, err := s.store.OrderInStatus(ctx, in.OrderID, models.OrderStatusWaitComment)
	if err != nil {
		return invalidOperation(err, "query order")
	}
	if order.UserID != in.RenterID {
		return errors.InvalidOperation()
	}
	if err := models.GetOrderState(order.Status).Complete(order, review); err != nil {
		return errors.InvalidOperation()
	}

	err = s.store.Transaction(ctx, nil, func(tx repository.Store) error {
		return commands.NewCompleteOrderCommand(order).Execute(ctx, tx)
	})
	if err != nil {
		return invalidOperation(err, "complete order")
	}

	cache.Invalidate(ctx, s.cache, s.log, cache.HouseDetailKey(order.HouseID))
	s.log.Info("order %d completed by user %d", order.ID, in.RenterID)

	if house, err := s.store.HouseByID(ctx, order.HouseID); err == nil {
		s.notify(house.UserID, notification.NewMessageBuilder(order).Build(notification.EventOrderCompleted))
	}
	return nil
}

// ListOrders returns orders on the user's houses for role landlord, otherwise
// the orders the user placed. Newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID uint, role string) ([]dto.OrderResponse, error) {
	var (
		orders []models.Order
		err    error
	)
	if role == constants.RoleLandlord {
		orders, err = s.store.OrdersByLandlord(ctx, userID)
	} else {
		orders, err = s.store.OrdersByRenter(ctx, userID)
	}
	if err != nil {
		return nil, errors.Infrastructure("query orders", err)
	}
	return dto.NewOrderResponses(orders, s.imagePrefix), nil
}

func (s *OrderService) notify(userID uint, ev notification.Event) {
	if err := s.notifier.Notify(userID, ev); err != nil {
		s.log.Error("notify user %d of %s on order %d: %v", userID, ev.Type, ev.OrderID, err)
	}
}

// invalidOperation hides whether an order is missing or stale behind the
// generic error. Other failures stay infrastructure errors.
func invalidOperation(err error, op string) error {
	if stderrors.Is(err, repository.ErrNotFound) || stderrors.Is(err, commands.ErrStaleOrder) {
		return errors.InvalidOperation()
	}
	return errors.Infrastructure(op, err)
}
