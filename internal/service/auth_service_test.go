package service

import (
	"testing"
	"time"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	nextID  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Update(user *models.User) error { return nil }

func (f *fakeUserRepo) Search(query string, limit int) ([]models.User, error) { return nil, nil }

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	user, err := svc.Register(&models.RegisterRequest{
		Username:  "alice",
		FirstName: "Alice",
		Email:     "alice@example.com",
		Password:  "hunter22",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "hunter22", user.Password, "password must be stored hashed")

	resp, err := svc.Login(&models.LoginRequest{Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	// The token must carry the user_id claim the resolvers read
	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(user.ID), claims["user_id"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	_, err := svc.Register(&models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Register(&models.RegisterRequest{Username: "alice2", Email: "alice@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	_, err := svc.Register(&models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Login(&models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&models.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
