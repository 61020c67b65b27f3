package store

import (
	"context"
	"errors"
	"testing"

	"github.com/amaralimoveis/vitrine/internal/db"
	"github.com/amaralimoveis/vitrine/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, " corretor ", "hash123", model.RoleManager)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Username != "corretor" {
		t.Errorf("expected trimmed username 'corretor', got %q", user.Username)
	}

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Role != model.RoleManager {
		t.Errorf("expected role manager, got %q", got.Role)
	}
}

func TestGetUserByUsernameIgnoresCase(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "Admin", "hash", model.RoleAdmin)

	user, err := GetUserByUsername(ctx, database, "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if user == nil || user.Username != "Admin" {
		t.Fatalf("expected Admin, got %+v", user)
	}

	missing, err := GetUserByUsername(ctx, database, "bob")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing user")
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "ana", "hash", model.RoleUser)
	_, err := CreateUser(ctx, database, "ANA", "hash", model.RoleUser)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestDeleteUserKeepsLastAdmin(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	admin, _ := CreateUser(ctx, database, "admin", "hash", model.RoleAdmin)
	user, _ := CreateUser(ctx, database, "ana", "hash", model.RoleUser)

	if err := DeleteUser(ctx, database, admin.ID); !errors.Is(err, ErrLastAdmin) {
		t.Errorf("expected ErrLastAdmin, got %v", err)
	}

	if err := DeleteUser(ctx, database, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	users, _ := ListUsers(ctx, database)
	if len(users) != 1 || users[0].Username != "admin" {
		t.Errorf("expected only admin left, got %+v", users)
	}

	// The username of a deleted user can be reused.
	if _, err := CreateUser(ctx, database, "ana", "hash", model.RoleUser); err != nil {
		t.Errorf("expected username reuse after delete, got %v", err)
	}
}

func TestUpdateUserPassword(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "pwuser", "oldhash", model.RoleUser)
	if err := UpdateUserPassword(ctx, database, user.ID, "newhash"); err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}

	got, _ := GetUser(ctx, database, user.ID)
	if got.PasswordHash != "newhash" {
		t.Errorf("expected password hash 'newhash', got %q", got.PasswordHash)
	}
}
