package client_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/client"
	"backoffice/internal/domain"
	"backoffice/internal/gateway"
	"backoffice/internal/platform/logger"
	"backoffice/internal/session"
	"backoffice/pkg/sentinel"
	"backoffice/pkg/testutil"
)

// loggedIn builds a gateway over the fake backend with a live session for the
// seeded account.
func loggedIn(t *testing.T, backend *testutil.Backend) *gateway.Client {
	t.Helper()
	store := session.NewMemoryStore()
	gw := gateway.New(backend.URL(), 5*time.Second, session.NewTokenSource(store), logger.Discard())

	result, err := client.NewAuth(gw).Login(context.Background(), domain.LoginRequest{
		Email:    "ana@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), session.Credentials{Token: result.Token}))
	return gw
}

func newBackend(t *testing.T) *testutil.Backend {
	backend := testutil.NewBackend(t)
	backend.AddAccount(testutil.Account{
		ID:       42,
		Email:    "ana@example.com",
		Password: "secret",
		Name:     "Ana Admin",
		Role:     "administrator",
	})
	return backend
}

func TestLoginReturnsSessionMaterial(t *testing.T) {
	backend := newBackend(t)
	gw := gateway.New(backend.URL(), 5*time.Second,
		session.NewTokenSource(session.NewMemoryStore()), logger.Discard())

	result, err := client.NewAuth(gw).Login(context.Background(), domain.LoginRequest{
		Email:    "ana@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "42", result.UserIdentifier)
	assert.Equal(t, "Ana Admin", result.Name)
	assert.Equal(t, testutil.TokenFor("ana@example.com"), result.Token)
	assert.Positive(t, result.ExpireIn)
}

func TestLoginWithBadPasswordIsUnauthorized(t *testing.T) {
	backend := newBackend(t)
	gw := gateway.New(backend.URL(), 5*time.Second,
		session.NewTokenSource(session.NewMemoryStore()), logger.Discard())

	_, err := client.NewAuth(gw).Login(context.Background(), domain.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel.ErrUnauthorized))
}

func TestProductListPaginatesAndFilters(t *testing.T) {
	backend := newBackend(t)
	for i := 1; i <= 12; i++ {
		name := "Coffee"
		if i%2 == 0 {
			name = "Tea"
		}
		backend.AddProduct(domain.Product{ID: i, Name: name, Code: "SKU", Price: 10})
	}
	gw := loggedIn(t, backend)
	products := client.NewProducts(gw)
	ctx := context.Background()

	page, err := products.List(ctx, domain.ProductSearchParams{
		PageParams: domain.PageParams{PageNumber: 1, PageSize: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, 12, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 5)

	filtered, err := products.List(ctx, domain.ProductSearchParams{
		PageParams: domain.PageParams{PageNumber: 1, PageSize: 10},
		NamePrefix: "Tea",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, filtered.TotalCount)
	for _, p := range filtered.Items {
		assert.Equal(t, "Tea", p.Name)
	}
}

func TestImageUploadCarriesFormFieldsAndFile(t *testing.T) {
	backend := newBackend(t)
	gw := loggedIn(t, backend)
	images := client.NewImages(gw)

	image, err := images.Upload(context.Background(), client.UploadRequest{
		FileName:   "avatar.png",
		Body:       strings.NewReader("png-bytes"),
		EntityType: domain.EntityUser,
		EntityID:   42,
		ImageType:  domain.ImageAvatar,
		SetAsMain:  true,
	})
	require.NoError(t, err)
	require.NotNil(t, image)
	assert.Equal(t, "avatar.png", image.FileName)
	assert.True(t, image.IsMain)
	assert.Equal(t, []string{"avatar.png"}, backend.Uploads())
}

func TestMainImageAbsentComesBackNil(t *testing.T) {
	backend := newBackend(t)
	gw := loggedIn(t, backend)

	image, err := client.NewImages(gw).MainImage(context.Background(), domain.EntityUser, 42)
	require.NoError(t, err)
	assert.Nil(t, image)
}
