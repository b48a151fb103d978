package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"feefines/internal/service"

	"github.com/nats-io/nats.go"
)

// RegistryTopic is the subject the platform event registry listens on
// for module announcements.
const RegistryTopic = "registry.register"

// ModuleDescriptor announces this module and the event types it
// publishes to the platform event registry.
type ModuleDescriptor struct {
	ModuleID        string   `json:"module_id"`
	PublishedEvents []string `json:"published_events"`
}

// Registrar performs the one-time startup registration with the
// platform event bus. It runs once at boot, outside the request
// pipeline; a failure is fatal to startup.
type Registrar struct {
	nc       *nats.Conn
	moduleID string
}

func NewRegistrar(nc *nats.Conn, moduleID string) *Registrar {
	return &Registrar{nc: nc, moduleID: moduleID}
}

// Register publishes the module descriptor and waits for the broker to
// acknowledge the flush, so a dead broker fails boot instead of
// silently dropping the registration.
func (r *Registrar) Register(ctx context.Context) error {
	descriptor := ModuleDescriptor{
		ModuleID:        r.moduleID,
		PublishedEvents: []string{service.PatronNoticeTopic},
	}
	payload, err := json.Marshal(descriptor)
	if err != nil {
		return fmt.Errorf("marshaling module descriptor: %w", err)
	}

	if err := r.nc.Publish(RegistryTopic, payload); err != nil {
		return fmt.Errorf("publishing module registration: %w", err)
	}
	if err := r.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flushing module registration: %w", err)
	}

	slog.Info("module registered with event registry",
		"module_id", r.moduleID,
		"published_events", descriptor.PublishedEvents,
	)
	return nil
}
