package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
)

func TestListUsersStripsCredentials(t *testing.T) {
	users := &mockUserRepo{
		ListFn: func(ctx context.Context) ([]model.Record, error) {
			return []model.Record{
				{model.AttrUserID: "u1", "username": "alice", model.AttrPasswordHash: "hash"},
				{model.AttrUserID: "u2", "username": "bob", model.AttrPassword: "legacy-plaintext"},
			}, nil
		},
	}
	svc := NewUserService(users, &mockProfileRepo{})

	result, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, user := range result {
		if _, ok := user[model.AttrPasswordHash]; ok {
			t.Errorf("passwordHash leaked for %s", user.String(model.AttrUserID))
		}
		if _, ok := user[model.AttrPassword]; ok {
			t.Errorf("password leaked for %s", user.String(model.AttrUserID))
		}
	}
}

func TestGetUserReturnsProfile(t *testing.T) {
	profiles := &mockProfileRepo{
		GetFn: func(ctx context.Context, userID string) (model.Record, error) {
			return model.Record{model.AttrUserID: userID, "bio": "hello", model.AttrPasswordHash: "hash"}, nil
		},
	}
	svc := NewUserService(&mockUserRepo{}, profiles)

	rec, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.String("bio") != "hello" {
		t.Errorf("expected the profile record, got %v", rec)
	}
	if _, ok := rec[model.AttrPasswordHash]; ok {
		t.Error("passwordHash leaked")
	}
}

func TestGetUserMissing(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, &mockProfileRepo{})

	_, err := svc.Get(context.Background(), "ghost")
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUserGuardsFields(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, &mockProfileRepo{})

	tests := []struct {
		name   string
		fields model.Record
	}{
		{"userId", model.Record{model.AttrUserID: "other"}},
		{"password", model.Record{model.AttrPassword: "new"}},
		{"passwordHash", model.Record{model.AttrPasswordHash: "new"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), "u1", tt.fields)
			var verr *model.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error for %s, got %v", tt.name, err)
			}
		})
	}
}

func TestUpdateUserMissing(t *testing.T) {
	users := &mockUserRepo{
		UpdateFn: func(ctx context.Context, userID string, fields model.Record) (model.Record, error) {
			return nil, model.ErrUserNotFound
		},
	}
	svc := NewUserService(users, &mockProfileRepo{})

	_, err := svc.Update(context.Background(), "ghost", model.Record{"name": "X"})
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUserMissing(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, &mockProfileRepo{})

	_, err := svc.Delete(context.Background(), "ghost")
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUserChecksExistenceFirst(t *testing.T) {
	var deleted bool
	users := &mockUserRepo{
		GetFn: func(ctx context.Context, userID string) (model.Record, error) {
			return model.Record{model.AttrUserID: userID}, nil
		},
		DeleteFn: func(ctx context.Context, userID string) error {
			deleted = true
			return nil
		},
	}
	svc := NewUserService(users, &mockProfileRepo{})

	result, err := svc.Delete(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected the repository delete to run")
	}
	if result.ID != "u1" {
		t.Errorf("result ID = %q, want u1", result.ID)
	}
}

func TestUpdateProfileGuardsUserID(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, &mockProfileRepo{})

	_, err := svc.UpdateProfile(context.Background(), "u1", model.Record{model.AttrUserID: "other"})
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
