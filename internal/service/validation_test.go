package service

import (
	"context"
	"errors"
	"testing"

	"feefines/internal/model"
)

func TestValidate(t *testing.T) {
	v := NewDefaultActionValidator()
	ctx := context.Background()

	cases := []struct {
		name    string
		acc     *model.Account
		amount  string
		wantErr error
	}{
		{"exact amount", openAccount(t, "10.00"), "10.00", nil},
		{"partial amount", openAccount(t, "10.00"), "4.00", nil},
		{"zero amount", openAccount(t, "10.00"), "0.00", nil},
		{"exceeds remaining", openAccount(t, "10.00"), "15.00", ErrInvalidAmount},
		{"negative amount", openAccount(t, "10.00"), "-1.00", ErrInvalidAmount},
		{"malformed amount", openAccount(t, "10.00"), "ten dollars", ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(ctx, tc.acc, tc.amount)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidate_ClosedAccount(t *testing.T) {
	acc := openAccount(t, "0.00")
	acc.Status = model.FeeStatusClosed

	err := NewDefaultActionValidator().Validate(context.Background(), acc, "1.00")
	if !errors.Is(err, ErrIneligibleAccount) {
		t.Fatalf("err = %v, want ErrIneligibleAccount", err)
	}
}

type mockBus struct {
	topic   string
	payload []byte
	err     error
}

func (m *mockBus) Publish(topic string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.topic = topic
	m.payload = data
	return nil
}

func TestPatronNoticeService_PublishesToNoticeTopic(t *testing.T) {
	bus := &mockBus{}
	svc := NewPatronNoticeService(bus)

	action := &model.Feefineaction{ID: "a-1", AccountID: "acc-1", TypeAction: "Paid fully"}
	if err := svc.SendPatronNotice(context.Background(), action); err != nil {
		t.Fatalf("SendPatronNotice: %v", err)
	}
	if bus.topic != PatronNoticeTopic {
		t.Errorf("topic = %q, want %q", bus.topic, PatronNoticeTopic)
	}
	if len(bus.payload) == 0 {
		t.Error("empty notice payload")
	}
}

func TestPatronNoticeService_PublishFailure(t *testing.T) {
	bus := &mockBus{err: errors.New("no broker")}
	svc := NewPatronNoticeService(bus)

	if err := svc.SendPatronNotice(context.Background(), &model.Feefineaction{ID: "a-1"}); err == nil {
		t.Fatal("expected publish error")
	}
}
