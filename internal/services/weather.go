package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/olegbarsukov/fitness-helper/internal/apperrors"
	"github.com/olegbarsukov/fitness-helper/internal/logger"
)

const defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// WeatherClient queries OpenWeatherMap for the current temperature by city.
type WeatherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewWeatherClient(apiKey string, httpClient *http.Client) *WeatherClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &WeatherClient{
		apiKey:     apiKey,
		baseURL:    defaultWeatherBaseURL,
		httpClient: httpClient,
	}
}

// WithBaseURL overrides the upstream endpoint, used by tests.
func (c *WeatherClient) WithBaseURL(baseURL string) *WeatherClient {
	c.baseURL = baseURL
	return c
}

type weatherResponse struct {
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Message string `json:"message"`
}

// CurrentTemperature returns the temperature in Celsius. ok is false when the
// upstream answered without a usable temperature; a 401 surfaces as a
// distinguished auth error and transport failures as connectivity errors.
func (c *WeatherClient) CurrentTemperature(ctx context.Context, city string) (float64, bool, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, false, apperrors.NewConnectivityError(err, "weather")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body weatherResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			logger.Warn("Failed to parse weather response", "city", city, "error", err)
			return 0, false, nil
		}
		if body.Main.Temp == nil {
			logger.Warn("Weather response has no temperature", "city", city)
			return 0, false, nil
		}
		return *body.Main.Temp - 273.15, true, nil
	case http.StatusUnauthorized:
		var body weatherResponse
		// Best effort: the body may not decode, the status alone is enough.
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return 0, false, apperrors.NewAuthError("weather", body.Message)
	default:
		logger.Warn("Weather request failed", "city", city, "status", resp.StatusCode)
		return 0, false, nil
	}
}
