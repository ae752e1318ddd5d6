package notification

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"

	"roomrent/models"
)

// SessionUserKey is the melody session key holding the connected user id.
const SessionUserKey = "user_id"

const (
	EventOrderCreated   = "order_created"
	EventOrderAccepted  = "order_accepted"
	EventOrderRejected  = "order_rejected"
	EventOrderCompleted = "order_completed"
)

type Event struct {
	Type    string `json:"type"`
	OrderID uint   `json:"orderId"`
	HouseID uint   `json:"houseId"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Service pushes an event to every open session of one user.
type Service interface {
	Notify(userID uint, event Event) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) Notify(userID uint, event Event) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.m.BroadcastFilter(payload, func(sess *melody.Session) bool {
		v, ok := sess.Get(SessionUserKey)
		if !ok {
			return false
		}
		id, ok := v.(uint)
		return ok && id == userID
	})
}

// Nop drops every event.
type Nop struct{}

func (Nop) Notify(uint, Event) error { return nil }

// MessageBuilder turns an order into the event of a given type.
type MessageBuilder struct {
	order *models.Order
}

func NewMessageBuilder(order *models.Order) *MessageBuilder {
	return &MessageBuilder{order: order}
}

func (b *MessageBuilder) Build(eventType string) Event {
	ev := Event{
		Type:    eventType,
		OrderID: b.order.ID,
		HouseID: b.order.HouseID,
		Status:  string(b.order.Status),
	}
	switch eventType {
	case EventOrderCreated:
		ev.Message = fmt.Sprintf("New booking %s to %s for house %d", b.order.BeginDate.Format("2006-01-02"), b.order.EndDate.Format("2006-01-02"), b.order.HouseID)
	case EventOrderAccepted:
		ev.Message = fmt.Sprintf("Order %d was accepted", b.order.ID)
	case EventOrderRejected:
		ev.Message = fmt.Sprintf("Order %d was rejected: %s", b.order.ID, b.order.Comment)
	case EventOrderCompleted:
		ev.Message = fmt.Sprintf("Order %d received a review", b.order.ID)
	}
	return ev
}
