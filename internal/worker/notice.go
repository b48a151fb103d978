package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"feefines/internal/model"
	"feefines/internal/service"

	"github.com/nats-io/nats.go"
)

// NoticeWorker listens on the patron-notice topic and dispatches each
// event to the patron notice channel. Delivery failures stay on this
// side of the bus; the action pipeline has already returned by the
// time an event arrives here.
type NoticeWorker struct {
	nc *nats.Conn
}

func NewNoticeWorker(nc *nats.Conn) *NoticeWorker {
	return &NoticeWorker{nc: nc}
}

// Start subscribes to the notice topic and blocks until ctx is
// cancelled, then drains the subscription.
func (w *NoticeWorker) Start(ctx context.Context) error {
	// QueueSubscribe so that only one instance delivers each notice.
	sub, err := w.nc.QueueSubscribe(service.PatronNoticeTopic, "notice_group", func(m *nats.Msg) {
		var event model.PatronNoticeEvent
		if err := json.Unmarshal(m.Data, &event); err != nil {
			slog.Error("worker: failed to unmarshal patron notice event", "error", err)
			return
		}
		w.deliver(event)
	})
	if err != nil {
		return fmt.Errorf("worker: failed to subscribe to %s: %w", service.PatronNoticeTopic, err)
	}

	slog.Info("patron notice worker is running")

	<-ctx.Done()
	slog.Info("notice worker received shutdown signal, draining subscription...")
	return sub.Drain()
}

func (w *NoticeWorker) Stop(ctx context.Context) error {
	return nil
}

// deliver hands the notice to the patron messaging channel. The
// channel here is the structured log stream; the event carries
// everything a template needs.
func (w *NoticeWorker) deliver(event model.PatronNoticeEvent) {
	a := event.Action
	slog.Info("patron notice dispatched",
		"action_id", a.ID,
		"account_id", a.AccountID,
		"user_id", a.UserID,
		"type_action", a.TypeAction,
		"balance", a.Balance,
	)
}
