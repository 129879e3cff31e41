package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/mkarlin/project-tracker-api/internal/models"
	"github.com/mkarlin/project-tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_ListUsers_AdminOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	admin := createUser(t, db, "admin", models.RoleAdmin)
	manager := createUser(t, db, "manager1", models.RoleManager)
	user := createUser(t, db, "user1", models.RoleUser)

	users, total, err := svc.ListUsers(admin, ListUsersInput{})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, users, 3)

	_, _, err = svc.ListUsers(manager, ListUsersInput{})
	require.ErrorIs(t, err, ErrAccessDenied)
	_, _, err = svc.ListUsers(user, ListUsersInput{})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestUserService_ListUsers_RoleFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	admin := createUser(t, db, "admin", models.RoleAdmin)
	createUser(t, db, "manager1", models.RoleManager)
	createUser(t, db, "manager2", models.RoleManager)
	createUser(t, db, "user1", models.RoleUser)

	role := models.RoleManager
	users, total, err := svc.ListUsers(admin, ListUsersInput{Role: &role})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	for _, u := range users {
		require.Equal(t, models.RoleManager, u.Role)
	}
}

func TestUserService_CreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	admin := createUser(t, db, "admin", models.RoleAdmin)

	created, err := svc.CreateUser(admin, CreateUserInput{
		Username:  "newmanager",
		Password:  "longenough",
		Email:     "newmanager@example.com",
		FirstName: "New",
		LastName:  "Manager",
		Role:      models.RoleManager,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, models.RoleManager, created.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("longenough")))
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	admin := createUser(t, db, "admin", models.RoleAdmin)
	manager := createUser(t, db, "manager1", models.RoleManager)

	_, err := svc.CreateUser(manager, CreateUserInput{
		Username: "x", Password: "longenough", Role: models.RoleUser,
	})
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.CreateUser(admin, CreateUserInput{
		Username: "  ", Password: "longenough", Role: models.RoleUser,
	})
	require.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.CreateUser(admin, CreateUserInput{
		Username: "short", Password: "tiny", Role: models.RoleUser,
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.CreateUser(admin, CreateUserInput{
		Username: "badrole", Password: "longenough", Role: models.Role("owner"),
	})
	require.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.CreateUser(admin, CreateUserInput{
		Username: "manager1", Password: "longenough", Role: models.RoleManager,
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}
