package service

import (
	"context"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/repository"
)

// UserService covers the user and profile CRUD surface. Credentials never
// leave this layer: password hashes are stripped from every returned record
// and rejected on update.
type UserService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

func NewUserService(users repository.UserRepository, profiles repository.ProfileRepository) *UserService {
	return &UserService{users: users, profiles: profiles}
}

func (s *UserService) List(ctx context.Context) ([]model.Record, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		stripCredentials(user)
	}
	return users, nil
}

// Get returns the user's profile record. Fetching a user by ID has always
// answered with the profile, so both /users/{id} and /profile/{id} read the
// same row.
func (s *UserService) Get(ctx context.Context, userID string) (model.Record, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	stripCredentials(profile)
	return profile, nil
}

func (s *UserService) Update(ctx context.Context, userID string, fields model.Record) (*model.UpdateResult, error) {
	if _, ok := fields[model.AttrUserID]; ok {
		return nil, model.Validation("userId cannot be changed")
	}
	if _, ok := fields[model.AttrPassword]; ok {
		return nil, model.Validation("password cannot be changed here, use forgot-password")
	}
	if _, ok := fields[model.AttrPasswordHash]; ok {
		return nil, model.Validation("password cannot be changed here, use forgot-password")
	}

	updated, err := s.users.Update(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	stripCredentials(updated)
	return &model.UpdateResult{Message: "User updated successfully", Updated: updated}, nil
}

func (s *UserService) Delete(ctx context.Context, userID string) (*model.DeleteResult, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return nil, err
	}
	return &model.DeleteResult{Message: "User deleted successfully", ID: userID}, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (model.Record, error) {
	return s.profiles.Get(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, fields model.Record) (*model.UpdateResult, error) {
	if _, ok := fields[model.AttrUserID]; ok {
		return nil, model.Validation("userId cannot be changed")
	}
	updated, err := s.profiles.Update(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	return &model.UpdateResult{Message: "Profile updated successfully", Updated: updated}, nil
}

func stripCredentials(user model.Record) {
	delete(user, model.AttrPassword)
	delete(user, model.AttrPasswordHash)
}
