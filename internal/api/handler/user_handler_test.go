package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/blanca/commerce-api/internal/core/domain"
	"github.com/blanca/commerce-api/internal/core/ports"
)

type stubUserService struct {
	findAllFn       func(ctx context.Context) ([]domain.User, error)
	findByIDFn      func(ctx context.Context, id int64) (*domain.User, error)
	createFn        func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	updateFn        func(ctx context.Context, id int64, patch ports.UserPatch) (*domain.User, error)
	deleteFn        func(ctx context.Context, id int64) error
	assignCountryFn func(ctx context.Context, userID int64, countryCode string) (*domain.User, error)
}

func (s *stubUserService) FindAll(ctx context.Context) ([]domain.User, error) {
	return s.findAllFn(ctx)
}

func (s *stubUserService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubUserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) Update(ctx context.Context, id int64, patch ports.UserPatch) (*domain.User, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubUserService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *stubUserService) AssignCountry(ctx context.Context, userID int64, countryCode string) (*domain.User, error) {
	return s.assignCountryFn(ctx, userID, countryCode)
}

func TestUserHandler_Create(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			if input.Email != "carol@example.com" || input.Role != domain.RoleAdmin {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: 3, FullName: input.FullName, Email: input.Email, Role: input.Role, Active: true}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/users",
		`{"full_name":"Carol","email":"carol@example.com","password":"Sup3rSecret","role":"ADMIN"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Create_RoleOptional(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			if input.Role != "" {
				t.Fatalf("expected empty role forwarded for service default, got %q", input.Role)
			}
			return &domain.User{ID: 4, Email: input.Email, Role: domain.RoleUser, Active: true}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/users",
		`{"full_name":"Dave","email":"dave@example.com","password":"Sup3rSecret"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Create_RejectsUnknownRole(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/users",
		`{"full_name":"Eve","email":"eve@example.com","password":"Sup3rSecret","role":"ROOT"}`)

	if err := h.Create(c); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestUserHandler_Update_MapsPatch(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id int64, patch ports.UserPatch) (*domain.User, error) {
			if id != 3 {
				t.Fatalf("unexpected id %d", id)
			}
			if patch.FullName != nil || patch.Email != nil {
				t.Fatalf("unexpected patch fields: %+v", patch)
			}
			if patch.Active == nil || *patch.Active {
				t.Fatalf("expected explicit active=false, got %+v", patch.Active)
			}
			return &domain.User{ID: id, Active: false}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/", `{"active":false}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Get_NotFoundCarriesID(t *testing.T) {
	stub := &stubUserService{
		findByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return nil, fmt.Errorf("user %d: %w", id, domain.ErrUserNotFound)
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	err := h.Get(c)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if got := err.Error(); got != "user 42: user not found" {
		t.Fatalf("expected id in message, got %q", got)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	var deleted int64
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != 3 {
		t.Fatalf("expected delete of 3, got %d", deleted)
	}
}

func TestUserHandler_AssignCountry(t *testing.T) {
	stub := &stubUserService{
		assignCountryFn: func(ctx context.Context, userID int64, countryCode string) (*domain.User, error) {
			if userID != 3 || countryCode != "ES" {
				t.Fatalf("unexpected args: %d %s", userID, countryCode)
			}
			return &domain.User{ID: userID, Country: &domain.Country{Code: "ES", Name: "Spain"}, Active: true}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/", `{"country_code":"ES"}`)
	c.Set("role", "USER")
	c.Set("user_id", int64(3))
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.AssignCountry(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	country, ok := resp["country"].(map[string]any)
	if !ok || country["code"] != "ES" {
		t.Fatalf("expected country in payload: %+v", resp)
	}
}

func TestUserHandler_AssignCountry_UserCannotTouchOtherAccount(t *testing.T) {
	stub := &stubUserService{
		assignCountryFn: func(ctx context.Context, userID int64, countryCode string) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPatch, "/", `{"country_code":"ES"}`)
	c.Set("role", "USER")
	c.Set("user_id", int64(7))
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := h.AssignCountry(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserHandler_AssignCountry_AdminSetsAnyAccount(t *testing.T) {
	stub := &stubUserService{
		assignCountryFn: func(ctx context.Context, userID int64, countryCode string) (*domain.User, error) {
			if userID != 3 {
				t.Fatalf("unexpected user id %d", userID)
			}
			return &domain.User{ID: userID, Country: &domain.Country{Code: "FR", Name: "France"}, Active: true}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/", `{"country_code":"FR"}`)
	c.Set("role", "ADMIN")
	c.Set("user_id", int64(1))
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.AssignCountry(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
