package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"statusboard/internal/config"
	"statusboard/internal/models"
)

const (
	weatherBaseURL = "https://api.open-meteo.com"
	weatherSource  = "Weather"
)

type openMeteoResponse struct {
	Timezone       string `json:"timezone"`
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
	Hourly struct {
		Humidity            []*float64 `json:"relative_humidity_2m"`
		ApparentTemperature []*float64 `json:"apparent_temperature"`
	} `json:"hourly"`
}

// WeatherService fetches current conditions from Open-Meteo.
type WeatherService struct {
	baseURL string
	coords  config.Weather
	timeout time.Duration
	client  *http.Client
	log     *slog.Logger
}

// NewWeatherService creates a WeatherService from the loaded configuration.
func NewWeatherService(cfg config.Config, log *slog.Logger) *WeatherService {
	return &WeatherService{
		baseURL: weatherBaseURL,
		coords:  cfg.Weather,
		timeout: cfg.SourceTimeout,
		client:  &http.Client{},
		log:     log,
	}
}

// Configured reports whether coordinates are set.
func (s *WeatherService) Configured() bool {
	return s.coords.Set
}

// Current returns the current conditions for the configured coordinates.
//
// Humidity and apparent temperature are the first hourly values, which
// approximate the current reading.
func (s *WeatherService) Current(ctx context.Context) models.Result[models.Weather] {
	if !s.coords.Set {
		serr := models.ConfigError("Weather location not configured", "Set WEATHER_LATITUDE and WEATHER_LONGITUDE")
		logFailure(s.log, "weather", serr)
		return models.Fail[models.Weather](serr)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(s.coords.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(s.coords.Longitude, 'f', -1, 64))
	q.Set("current_weather", "true")
	q.Set("hourly", "relative_humidity_2m,apparent_temperature")
	q.Set("timezone", "auto")
	endpoint := s.baseURL + "/v1/forecast?" + q.Encode()

	var resp openMeteoResponse
	if serr := getJSON(ctx, s.client, weatherSource, endpoint, nil, &resp); serr != nil {
		logFailure(s.log, "weather", serr)
		return models.Fail[models.Weather](serr)
	}

	if resp.CurrentWeather == nil {
		err := errors.New("response has no current_weather block")
		serr := &models.SourceError{
			Kind:    models.KindRemoteAPI,
			Message: "Weather API returned malformed JSON",
			Details: err.Error(),
			Status:  http.StatusOK,
			Err:     err,
		}
		logFailure(s.log, "weather", serr)
		return models.Fail[models.Weather](serr)
	}

	cw := resp.CurrentWeather
	return models.Ok(models.Weather{
		Temperature:         cw.Temperature,
		WindSpeed:           cw.WindSpeed,
		WeatherCode:         cw.WeatherCode,
		Time:                cw.Time,
		Timezone:            resp.Timezone,
		ApparentTemperature: first(resp.Hourly.ApparentTemperature),
		Humidity:            first(resp.Hourly.Humidity),
	})
}

func first(series []*float64) *float64 {
	if len(series) == 0 {
		return nil
	}
	return series[0]
}
