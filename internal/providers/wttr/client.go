// Package wttr fetches current conditions from wttr.in's JSON ("j1") format.
package wttr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/providers"
)

const (
	defaultBaseURL   = "https://wttr.in"
	defaultUserAgent = "WeatherDashboard/1.0"
	defaultTimeout   = 15 * time.Second
)

// Client talks to wttr.in
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient builds a wttr.in client. Empty values fall back to the public service defaults.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:   strings.TrimRight(base, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// Name implements providers.Provider
func (c *Client) Name() string {
	return "wttr"
}

// Current fetches the current conditions for city.
// Missing or non-numeric upstream values are returned as NaN.
func (c *Client) Current(ctx context.Context, city string) (*models.RawReading, error) {
	city = strings.TrimSpace(city)
	endpoint := fmt.Sprintf("%s/%s?format=j1", c.baseURL, url.PathEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build wttr request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &providers.ProviderError{
			Kind:    providers.KindCityNotFound,
			Message: fmt.Sprintf("City \"%s\" not found. Please check the spelling.", city),
		}
	case resp.StatusCode != http.StatusOK:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &providers.ProviderError{
			Kind:    providers.KindUnavailable,
			Message: "Weather service temporarily unavailable",
			Err:     fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(payload))),
		}
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &providers.ProviderError{
			Kind:    providers.KindUnavailable,
			Message: "Weather service returned an unreadable response",
			Err:     err,
		}
	}

	if len(payload.CurrentCondition) == 0 {
		return nil, &providers.ProviderError{
			Kind:    providers.KindNoData,
			Message: "Weather data not available for this location",
		}
	}

	return c.toRawReading(city, payload.CurrentCondition[0]), nil
}

type apiResponse struct {
	CurrentCondition []currentCondition `json:"current_condition"`
}

type currentCondition struct {
	TempC         string      `json:"temp_C"`
	FeelsLikeC    string      `json:"FeelsLikeC"`
	Humidity      string      `json:"humidity"`
	WindspeedKmph string      `json:"windspeedKmph"`
	Pressure      string      `json:"pressure"`
	Visibility    string      `json:"visibility"`
	UVIndex       string      `json:"uvIndex"`
	WeatherDesc   []valueItem `json:"weatherDesc"`
}

type valueItem struct {
	Value string `json:"value"`
}

func (c *Client) toRawReading(city string, cur currentCondition) *models.RawReading {
	description := "Unknown"
	if len(cur.WeatherDesc) > 0 && strings.TrimSpace(cur.WeatherDesc[0].Value) != "" {
		description = strings.TrimSpace(cur.WeatherDesc[0].Value)
	}

	return &models.RawReading{
		City:        titleCase(city),
		Temperature: parseMeasure(cur.TempC),
		Description: description,
		FeelsLike:   parseMeasure(cur.FeelsLikeC),
		Humidity:    parseMeasure(cur.Humidity),
		WindSpeed:   parseMeasure(cur.WindspeedKmph),
		UVIndex:     parseMeasure(cur.UVIndex),
		Pressure:    parseOptional(cur.Pressure),
		Visibility:  parseOptional(cur.Visibility),
		ObservedAt:  models.Timestamp{Time: c.now().UTC()},
	}
}

func parseMeasure(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseOptional(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func titleCase(city string) string {
	return cases.Title(language.Und).String(city)
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &providers.ProviderError{
			Kind:    providers.KindTimeout,
			Message: "Request timeout. Please try again.",
			Err:     err,
		}
	}
	return &providers.ProviderError{
		Kind:    providers.KindUnavailable,
		Message: "Unable to connect to weather service",
		Err:     err,
	}
}
