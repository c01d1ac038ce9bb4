// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
)

func TestWithCause(t *testing.T) {
	template := apperr.ConstraintViolation("Tag name already exists", "name")
	cause := errors.New("duplicate key")

	clone := template.WithCause(cause)

	assert.NotSame(t, template, clone)
	assert.Nil(t, template.Cause)
	assert.ErrorIs(t, clone, cause)
	assert.ErrorIs(t, fmt.Errorf("service: %w", clone), template)
	assert.Equal(t, http.StatusUnprocessableEntity, clone.HTTPStatus)
}

func TestIs_DistinguishesMessages(t *testing.T) {
	assert.NotErrorIs(t, apperr.NotFound("Tag"), apperr.NotFound("Locale"))
	assert.ErrorIs(t, apperr.NotFound("Tag"), apperr.NotFound("Tag"))
	assert.NotErrorIs(t, apperr.ValidationError("x"), apperr.ConstraintViolation("x", ""))
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("repo: %w", apperr.ReferenceNotFound("Tag", "tag_ids"))

	assert.True(t, apperr.HasCode(wrapped, apperr.CodeReferenceNotFound))
	assert.False(t, apperr.HasCode(wrapped, apperr.CodeNotFound))
	assert.False(t, apperr.HasCode(errors.New("plain"), apperr.CodeInternal))
	assert.Nil(t, apperr.As(errors.New("plain")))
}

func TestRateLimited(t *testing.T) {
	err := apperr.RateLimited(3)
	assert.Equal(t, http.StatusTooManyRequests, err.HTTPStatus)
	assert.Contains(t, err.Message, "3s")
}
