package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegbarsukov/fitness-helper/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "process", r.URL.Query().Get("action"))
		assert.Equal(t, "banana", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "true", r.URL.Query().Get("json"))
		w.Write([]byte(`{"products": [
			{"product_name": "Banana", "nutriments": {"energy-kcal_100g": 89}},
			{"product_name": "Banana chips", "nutriments": {"energy-kcal_100g": 519}}
		]}`))
	}))
	defer server.Close()

	client := NewFoodClient(server.Client()).WithBaseURL(server.URL)

	product, err := client.FindProduct(context.Background(), "banana")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Banana", product.Name)
	assert.Equal(t, 89.0, product.CaloriesPer100g)
}

func TestFindProductFieldDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products": [{}]}`))
	}))
	defer server.Close()

	client := NewFoodClient(server.Client()).WithBaseURL(server.URL)

	product, err := client.FindProduct(context.Background(), "mystery")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "unknown", product.Name)
	assert.Equal(t, 0.0, product.CaloriesPer100g)
}

func TestFindProductNotFound(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "empty product list", status: http.StatusOK, body: `{"products": []}`},
		{name: "error status", status: http.StatusBadGateway, body: ``},
		{name: "malformed body", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewFoodClient(server.Client()).WithBaseURL(server.URL)

			product, err := client.FindProduct(context.Background(), "nothing")
			assert.NoError(t, err)
			assert.Nil(t, product)
		})
	}
}

func TestFindProductConnectivityFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewFoodClient(nil).WithBaseURL(server.URL)

	product, err := client.FindProduct(context.Background(), "banana")
	assert.Nil(t, product)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConnectivity)
}
