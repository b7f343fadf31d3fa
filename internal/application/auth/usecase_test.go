package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "estoque-test"})
}

func TestCreateUserYLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)

	created, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: " Bodega@Example.com ", Password: "secreto123", Role: entity.RoleBodeguero})
	require.NoError(t, err)
	assert.Equal(t, "bodega@example.com", created.Email)
	assert.Equal(t, "bodega@example.com", created.Name)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "BODEGA@example.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, 1800, resp.ExpiresIn)

	userID, role, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleBodeguero, role)
}

func TestCreateUser_Errores(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)

	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "a@b.co", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "A@B.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "c@b.co", Password: "secreto123", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Errores(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "a@b.co", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@b.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
