package perrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := New(CodeInvalidStagger, "start row must not be %d", 1)
	assert.Equal(t, "INVALID_STAGGER: start row must not be 1", err.Error())
	assert.Equal(t, CodeInvalidStagger, GetCode(err))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("parse failure")
	err := Wrap(CodeInvalidInput, cause, "column %q", "Plot")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "INVALID_INPUT")
	assert.Contains(t, err.Error(), "parse failure")
}

func TestIsMatchesWrappedCode(t *testing.T) {
	err := fmt.Errorf("outer context: %w", New(CodeMissingColumns, "Row column absent"))

	assert.True(t, Is(err, CodeMissingColumns))
	assert.False(t, Is(err, CodeInvalidSubset))
	assert.False(t, Is(errors.New("plain"), CodeMissingColumns))
}

func TestGetCodeOnPlainError(t *testing.T) {
	assert.Equal(t, Code(""), GetCode(errors.New("plain")))
}

func TestWarningString(t *testing.T) {
	w := Warnf(CodePlotCountMismatch, "have %d records, expected %d", 7, 8)
	assert.Equal(t, "PLOT_COUNT_MISMATCH: have 7 records, expected 8", w.String())
}
