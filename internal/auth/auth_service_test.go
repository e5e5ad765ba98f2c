package auth_test

import (
	"context"
	"testing"

	"go-trainreg/internal/auth"
	autherrors "go-trainreg/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn     func(ctx context.Context, user *auth.User) error
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeRepo) Create(ctx context.Context, user *auth.User) error {
	return f.createFn(ctx, user)
}
func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return f.getByEmailFn(ctx, email)
}
func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return f.getByIDFn(ctx, id)
}

func adminUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &auth.User{
		ID:       uuid.New(),
		Name:     "Administrator",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     "admin",
		IsActive: true,
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("success issues token carrying user_id and role", func(t *testing.T) {
		user := adminUser(t, "password")
		repo := &fakeRepo{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}

		svc := auth.NewService(repo)

		access, refresh, resp, err := svc.Login(ctx, "admin@example.com", "password")
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, user.ID.String(), resp.ID)
		assert.Equal(t, "admin", resp.Role)

		token, err := jwt.Parse(access, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, user.ID.String(), claims["user_id"])
		assert.Equal(t, "admin", claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		user := adminUser(t, "password")
		repo := &fakeRepo{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}

		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "admin@example.com", "wrong")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := &fakeRepo{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "nobody@example.com", "password")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("valid refresh token issues a new pair", func(t *testing.T) {
		user := adminUser(t, "password")
		repo := &fakeRepo{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				assert.Equal(t, user.ID, id)
				return user, nil
			},
		}

		svc := auth.NewService(repo)

		_, refresh, _, err := svc.Login(ctx, "admin@example.com", "password")
		require.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		svc := auth.NewService(&fakeRepo{})

		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		svc := auth.NewService(&fakeRepo{})

		_, err := svc.GetMe(ctx, "abc")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("missing user", func(t *testing.T) {
		repo := &fakeRepo{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := auth.NewService(repo)

		_, err := svc.GetMe(ctx, uuid.NewString())
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and stores an admin", func(t *testing.T) {
		var created *auth.User
		repo := &fakeRepo{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
			createFn: func(ctx context.Context, user *auth.User) error {
				created = user
				return nil
			},
		}

		svc := auth.NewService(repo)

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Email:    "second@example.com",
			Name:     "Second Admin",
			Password: "supersecret",
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "admin", created.Role)
		assert.NotEqual(t, "supersecret", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("supersecret")))
		assert.Equal(t, "admin", resp.Role)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		repo := &fakeRepo{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return adminUser(t, "password"), nil
			},
		}

		svc := auth.NewService(repo)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			Email:    "admin@example.com",
			Name:     "Duplicate",
			Password: "supersecret",
		})
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}
