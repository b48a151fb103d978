package nats

import (
	"context"
	"encoding/json"
	"log/slog"

	"feefines/internal/model"
	"feefines/internal/service"

	"github.com/nats-io/nats.go"
)

// Handler subscribes to NATS command topics and delegates to the
// fee/fine service. It exists for callers that drive payments over the
// bus instead of HTTP.
type Handler struct {
	svc  service.FeeFineService
	nc   *nats.Conn
	subs []*nats.Subscription
}

func NewHandler(svc service.FeeFineService, nc *nats.Conn) *Handler {
	return &Handler{svc: svc, nc: nc}
}

type payCommand struct {
	AccountID string              `json:"account_id"`
	Request   model.ActionRequest `json:"request"`
}

// Start subscribes to command topics and blocks until ctx is cancelled.
func (h *Handler) Start(ctx context.Context) error {
	// QueueSubscribe: with several instances running, only one member
	// of the group receives each command.
	sub, err := h.nc.QueueSubscribe("commands.pay", "feefines_group", func(m *nats.Msg) {
		var cmd payCommand
		if err := json.Unmarshal(m.Data, &cmd); err != nil {
			slog.Error("nats: failed to unmarshal pay command", "error", err)
			return
		}
		res, err := h.svc.Pay(ctx, cmd.AccountID, cmd.Request)
		if err != nil {
			slog.Error("nats: pay failed", "account_id", cmd.AccountID, "error", err)
			return
		}
		slog.Info("nats: pay applied",
			"account_id", cmd.AccountID,
			"action_id", res.Action.ID,
			"type_action", res.Action.TypeAction,
		)
	})
	if err != nil {
		return err
	}
	h.subs = append(h.subs, sub)

	slog.Info("NATS command handler is running")

	<-ctx.Done()
	slog.Info("NATS command handler shutting down, draining subscriptions...")

	for _, s := range h.subs {
		_ = s.Drain()
	}
	return nil
}

func (h *Handler) Stop(ctx context.Context) error {
	for _, s := range h.subs {
		_ = s.Unsubscribe()
	}
	return nil
}
