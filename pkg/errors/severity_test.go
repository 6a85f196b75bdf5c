package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "fatal", SeverityFatal.String())
	assert.Equal(t, "unknown", Severity(42).String())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *PipelineError
		code     string
		contains string
	}{
		{
			name:     "price not found",
			err:      NewPriceNotFoundError("span.price-current", "ask seller"),
			code:     ErrCodePriceNotFound,
			contains: `"ask seller"`,
		},
		{
			name:     "element not found",
			err:      NewElementNotFoundError(".shipping-value"),
			code:     ErrCodeElementNotFound,
			contains: ".shipping-value",
		},
		{
			name:     "parse failed",
			err:      NewParseFailedError("span.price-current", "12..5"),
			code:     ErrCodeParseFailed,
			contains: `"12..5"`,
		},
		{
			name:     "bad quantity",
			err:      NewBadQuantityError("lots"),
			code:     ErrCodeBadQuantity,
			contains: `"lots"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, SeverityWarning, tt.err.Severity)
			assert.True(t, tt.err.Recoverable)
			assert.Contains(t, tt.err.Error(), tt.code)
			assert.Contains(t, tt.err.Error(), tt.contains)
		})
	}
}

func TestErrorOmitsEmptySelector(t *testing.T) {
	err := NewBadQuantityError("-1")
	assert.NotContains(t, err.Error(), "selector")
}
