package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diabcar/internal/db"
	"diabcar/internal/service"
)

type memUserStore struct {
	byEmail map[string]*db.User
}

func (m *memUserStore) Create(ctx context.Context, user *db.User) error {
	user.ID = len(m.byEmail) + 1
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUserStore) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	return m.byEmail[email], nil
}

func TestRegisterIgnoresClientRole(t *testing.T) {
	store := &memUserStore{byEmail: make(map[string]*db.User)}
	handler := NewAuthHandler(service.NewAuthService(store, "test-secret"))

	body := `{
		"name": "Mallory",
		"email": "mallory@example.com",
		"phone_number": "+15551234567",
		"password": "secret1",
		"role": "admin"
	}`
	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		User struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, db.RoleCustomer, resp.User.Role)
	assert.Equal(t, db.RoleCustomer, store.byEmail["mallory@example.com"].Role)
}
