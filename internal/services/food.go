package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/olegbarsukov/fitness-helper/internal/apperrors"
	"github.com/olegbarsukov/fitness-helper/internal/domain"
	"github.com/olegbarsukov/fitness-helper/internal/logger"
)

const defaultFoodBaseURL = "https://world.openfoodfacts.org/cgi/search.pl"

// FoodClient searches OpenFoodFacts for products by name.
type FoodClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewFoodClient(httpClient *http.Client) *FoodClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &FoodClient{
		baseURL:    defaultFoodBaseURL,
		httpClient: httpClient,
	}
}

// WithBaseURL overrides the upstream endpoint, used by tests.
func (c *FoodClient) WithBaseURL(baseURL string) *FoodClient {
	c.baseURL = baseURL
	return c
}

type foodSearchResponse struct {
	Products []struct {
		ProductName string `json:"product_name"`
		Nutriments  struct {
			EnergyKcal100g float64 `json:"energy-kcal_100g"`
		} `json:"nutriments"`
	} `json:"products"`
}

// FindProduct returns the first product matching the search terms, or nil if
// nothing matched, the upstream answered with an error status, or the body
// failed to parse. Only transport failures produce a non-nil error.
func (c *FoodClient) FindProduct(ctx context.Context, name string) (*domain.Product, error) {
	query := url.Values{}
	query.Set("action", "process")
	query.Set("search_terms", name)
	query.Set("json", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build food request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewConnectivityError(err, "food")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Food search failed", "product", name, "status", resp.StatusCode)
		return nil, nil
	}

	var body foodSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Warn("Failed to parse food response", "product", name, "error", err)
		return nil, nil
	}

	if len(body.Products) == 0 {
		return nil, nil
	}

	first := body.Products[0]
	productName := first.ProductName
	if productName == "" {
		productName = "unknown"
	}

	return &domain.Product{
		Name:            productName,
		CaloriesPer100g: first.Nutriments.EnergyKcal100g,
	}, nil
}
