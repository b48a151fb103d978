package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"feefines/internal/model"
	"feefines/internal/money"
	"feefines/internal/service"
)

type mockService struct {
	payResult *service.PayResult
	payErr    error
	account   *model.Account
	actions   []model.Feefineaction
}

func (m *mockService) Pay(ctx context.Context, accountID string, req model.ActionRequest) (*service.PayResult, error) {
	if m.payErr != nil {
		return nil, m.payErr
	}
	return m.payResult, nil
}

func (m *mockService) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	if m.account == nil {
		return nil, model.ErrAccountNotFound
	}
	return m.account, nil
}

func (m *mockService) FindActionsForAccount(ctx context.Context, accountID string) ([]model.Feefineaction, error) {
	return m.actions, nil
}

func newTestMux(svc service.FeeFineService) *http.ServeMux {
	mux := http.NewServeMux()
	NewHandler(svc).Register(mux)
	return mux
}

func TestPayHandler_Created(t *testing.T) {
	rem := money.Zero()
	svc := &mockService{
		payResult: &service.PayResult{
			Account: &model.Account{ID: "acc-1", Status: model.FeeStatusClosed, Remaining: rem},
			Action:  &model.Feefineaction{ID: "act-1", TypeAction: "Paid fully"},
		},
	}
	mux := newTestMux(svc)

	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/pay",
		strings.NewReader(`{"amount":"10.00","notify_patron":true}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var res service.PayResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Action.TypeAction != "Paid fully" {
		t.Errorf("type_action = %q, want %q", res.Action.TypeAction, "Paid fully")
	}
}

func TestPayHandler_InvalidJSON(t *testing.T) {
	mux := newTestMux(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/pay", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPayHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", model.ErrAccountNotFound, http.StatusNotFound},
		{"invalid amount", service.ErrInvalidAmount, http.StatusUnprocessableEntity},
		{"ineligible account", service.ErrIneligibleAccount, http.StatusUnprocessableEntity},
		{"conflict", model.ErrConflict, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mux := newTestMux(&mockService{payErr: tc.err})

			req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/pay",
				strings.NewReader(`{"amount":"10.00"}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestGetAccountHandler(t *testing.T) {
	rem, _ := money.Parse("4.20")
	mux := newTestMux(&mockService{
		account: &model.Account{ID: "acc-1", Status: model.FeeStatusOpen, Remaining: rem},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var acc model.Account
	if err := json.Unmarshal(rec.Body.Bytes(), &acc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if acc.ID != "acc-1" || acc.Status != model.FeeStatusOpen {
		t.Errorf("unexpected account: %+v", acc)
	}
}

func TestGetAccountHandler_NotFound(t *testing.T) {
	mux := newTestMux(&mockService{})

	req := httptest.NewRequest(http.MethodGet, "/accounts/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestListActionsHandler_EmptyList(t *testing.T) {
	mux := newTestMux(&mockService{account: &model.Account{ID: "acc-1"}})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/actions", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"feefineactions":[]`) {
		t.Errorf("expected empty list, got %s", rec.Body.String())
	}
}
