package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"feefines/internal/model"
)

// PatronNoticeTopic is the bus subject notice events are published on.
const PatronNoticeTopic = "patron.notice"

// MessageBus publishes raw payloads to a broker subject. The NATS
// transport provides the production implementation.
type MessageBus interface {
	Publish(topic string, data []byte) error
}

// PatronNoticeService hands ledger records to the patron-notice
// channel by publishing them on the message bus. Delivery itself is
// the notice worker's job; publishing is the whole contract here.
type PatronNoticeService struct {
	bus MessageBus
}

func NewPatronNoticeService(bus MessageBus) *PatronNoticeService {
	return &PatronNoticeService{bus: bus}
}

func (s *PatronNoticeService) SendPatronNotice(ctx context.Context, action *model.Feefineaction) error {
	event := model.PatronNoticeEvent{
		Action:    *action,
		CreatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling patron notice event: %w", err)
	}
	if err := s.bus.Publish(PatronNoticeTopic, payload); err != nil {
		return fmt.Errorf("publishing patron notice: %w", err)
	}
	return nil
}
