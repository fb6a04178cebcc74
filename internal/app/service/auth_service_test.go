package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablehost/sop-backend/config"
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/internal/app/repository"
	"github.com/tablehost/sop-backend/internal/db"
	"github.com/tablehost/sop-backend/pkg/util"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	jwtCfg := config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
	}
	return NewAuthService(userRepo, jwtCfg), testDB
}

func seedUser(t *testing.T, testDB *gorm.DB, email, password string, active bool) *model.User {
	t.Helper()
	hash, err := util.HashPassword(password)
	require.NoError(t, err)

	user := &model.User{
		RestaurantID: 1,
		Email:        email,
		PasswordHash: hash,
		Name:         "Test Staff",
		Role:         model.RoleStaff,
		IsActive:     active,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func TestAuthService_Login(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)
	seedUser(t, testDB, "staff@bistro.example", "correct-horse", true)
	seedUser(t, testDB, "gone@bistro.example", "whatever", false)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"Valid credentials", "staff@bistro.example", "correct-horse", nil},
		{"Wrong password", "staff@bistro.example", "wrong", ErrInvalidCredentials},
		{"Unknown email", "nobody@bistro.example", "correct-horse", ErrInvalidCredentials},
		{"Inactive account", "gone@bistro.example", "whatever", ErrUserInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, user, err := authService.Login(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tokens)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, tokens)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
			assert.Equal(t, tt.email, user.Email)

			claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)
			assert.Equal(t, uint(1), claims.RestaurantID)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)
	seedUser(t, testDB, "staff@bistro.example", "correct-horse", true)

	tokens, _, err := authService.Login("staff@bistro.example", "correct-horse")
	require.NoError(t, err)

	refreshed, err := authService.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = authService.Refresh("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
