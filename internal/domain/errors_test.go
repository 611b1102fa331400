package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessingError(t *testing.T) {
	err := fmt.Errorf("compile: %w", &ProcessingError{Detail: "index out of range [3] with length 2"})

	assert.True(t, errors.Is(err, ErrInternalProcessing))
	assert.Equal(t, "compile: internal processing failure: index out of range [3] with length 2", err.Error())

	var perr *ProcessingError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "index out of range [3] with length 2", perr.Detail)
}
