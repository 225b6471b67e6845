// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"readwell-api/core/errors"

	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors.
// Fetch and extraction failures are handled outcomes (the article already
// carries the failed status), so they map to 400 with the short reason.
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsUnauthorized(err) {
		return huma.Error401Unauthorized(err.Error())
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsFetch(err) || errors.IsExtraction(err) {
		return huma.Error400BadRequest(err.Error())
	}

	return huma.Error500InternalServerError("internal error", err)
}
