package gateway_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/domain"
	"backoffice/internal/gateway"
	"backoffice/pkg/sentinel"
)

func TestAPIErrorMessageIncludesNotifications(t *testing.T) {
	err := &gateway.APIError{
		Status: http.StatusUnprocessableEntity,
		Notifications: []domain.Notification{
			{Key: "quantity", Value: "insufficient stock"},
			{Key: "product", Value: "discontinued"},
		},
	}
	assert.Equal(t, "api: status 422 (quantity: insufficient stock; product: discontinued)", err.Error())

	bare := &gateway.APIError{Status: http.StatusInternalServerError}
	assert.Equal(t, "api: status 500", bare.Error())
}

func TestAPIErrorSentinelEquivalence(t *testing.T) {
	assert.True(t, errors.Is(&gateway.APIError{Status: 401}, sentinel.ErrUnauthorized))
	assert.True(t, errors.Is(&gateway.APIError{Status: 403}, sentinel.ErrForbidden))
	assert.True(t, errors.Is(&gateway.APIError{Status: 404}, sentinel.ErrNotFound))
	assert.False(t, errors.Is(&gateway.APIError{Status: 422}, sentinel.ErrUnauthorized))
}
