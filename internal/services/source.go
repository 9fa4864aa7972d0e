package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"

	"statusboard/internal/models"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 1 << 20

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// logFailure records an expected source degradation.
func logFailure(log *slog.Logger, source string, err *models.SourceError) {
	log.Warn("source unavailable",
		"source", source,
		"kind", string(err.Kind),
		"error", err.Error(),
	)
}

// contextFailure maps a finished or cancelled context to a TimeoutError.
// It returns nil while ctx is still live.
func contextFailure(ctx context.Context, source string) *models.SourceError {
	if err := ctx.Err(); err != nil {
		return models.TimeoutError(source, err)
	}
	return nil
}

// getJSON performs a GET, decoding a 2xx body into out. Every failure is
// returned as a SourceError for source.
func getJSON(ctx context.Context, client *http.Client, source, url string, header http.Header, out any) *models.SourceError {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.InternalError(source, fmt.Errorf("failed to create request: %w", err))
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		if serr := contextFailure(ctx, source); serr != nil {
			return serr
		}
		return &models.SourceError{
			Kind:    models.KindRemoteAPI,
			Message: source + " API unreachable",
			Details: err.Error(),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if serr := contextFailure(ctx, source); serr != nil {
			return serr
		}
		return &models.SourceError{
			Kind:    models.KindRemoteAPI,
			Message: "Failed to read " + source + " API response",
			Details: err.Error(),
			Status:  resp.StatusCode,
			Err:     err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.RemoteAPIError(source, resp.StatusCode, string(body))
	}

	if len(body) == 0 {
		err = errEmptyBody
	} else {
		err = json.Unmarshal(body, out)
	}
	if err != nil {
		return &models.SourceError{
			Kind:    models.KindRemoteAPI,
			Message: source + " API returned malformed JSON",
			Details: err.Error(),
			Status:  resp.StatusCode,
			Err:     err,
		}
	}
	return nil
}

var errEmptyBody = errors.New("empty response body")
