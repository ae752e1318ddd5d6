package models

import "errors"

var ErrInvalidTransition = errors.New("invalid order transition")

// OrderState is the set of transitions allowed from one order status.
type OrderState interface {
	Accept(order *Order) error
	Reject(order *Order, reason string) error
	Complete(order *Order, review string) error
}

// WaitAcceptState: the landlord has not answered yet.
type WaitAcceptState struct{}

func (s *WaitAcceptState) Accept(order *Order) error {
	order.Status = OrderStatusWaitComment
	return nil
}

func (s *WaitAcceptState) Reject(order *Order, reason string) error {
	order.Status = OrderStatusRejected
	order.Comment = reason
	return nil
}

func (s *WaitAcceptState) Complete(order *Order, review string) error {
	return ErrInvalidTransition
}

// WaitCommentState: accepted, waiting for the renter's review.
type WaitCommentState struct{}

func (s *WaitCommentState) Accept(order *Order) error {
	return ErrInvalidTransition
}

func (s *WaitCommentState) Reject(order *Order, reason string) error {
	return ErrInvalidTransition
}

func (s *WaitCommentState) Complete(order *Order, review string) error {
	order.Status = OrderStatusComplete
	order.Comment = review
	return nil
}

// terminalState covers REJECTED, COMPLETE and anything unknown.
type terminalState struct{}

func (s *terminalState) Accept(order *Order) error {
	return ErrInvalidTransition
}

func (s *terminalState) Reject(order *Order, reason string) error {
	return ErrInvalidTransition
}

func (s *terminalState) Complete(order *Order, review string) error {
	return ErrInvalidTransition
}

// GetOrderState returns the state for status. Unknown statuses are terminal.
func GetOrderState(status OrderStatus) OrderState {
	switch status {
	case OrderStatusWaitAccept:
		return &WaitAcceptState{}
	case OrderStatusWaitComment:
		return &WaitCommentState{}
	default:
		return &terminalState{}
	}
}
