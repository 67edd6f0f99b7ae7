package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAppError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewConflict("Order already assigned"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "Order already assigned", UserMessage(err))

	raw := errors.New("disk on fire")
	assert.Equal(t, KindPersistence, KindOf(raw))
	assert.Equal(t, GenericFailure, UserMessage(raw))

	p := NewPersistence(raw)
	assert.ErrorIs(t, p, raw)
	assert.Equal(t, GenericFailure, UserMessage(p))
}

func TestAsAppError(t *testing.T) {
	assert.NoError(t, asAppError(nil, "x"))
	assert.Equal(t, KindNotFound, KindOf(asAppError(gorm.ErrRecordNotFound, "Order not found")))
	assert.Equal(t, KindPersistence, KindOf(asAppError(gorm.ErrRecordNotFound, "")))
	v := NewValidation("bad")
	assert.Same(t, v, asAppError(v, "x"))
}
