package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string  `json:"name" validate:"required"`
	Count  int     `json:"count" validate:"gte=0"`
	Format string  `yaml:"format" validate:"oneof=png svg"`
	Ratio  float64 `validate:"lte=1"`
}

func TestStructValidator_Struct(t *testing.T) {
	v := NewStructValidator()

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Struct(sample{Name: "a", Count: 1, Format: "png", Ratio: 0.5}))
	})

	t.Run("reports every failed field by tag name", func(t *testing.T) {
		err := v.Struct(sample{Count: -1, Format: "gif", Ratio: 2})
		require.Error(t, err)

		msg := err.Error()
		assert.Contains(t, msg, "name is required")
		assert.Contains(t, msg, "count must be greater than or equal to 0")
		assert.Contains(t, msg, "format must be one of: png, svg")
		assert.Contains(t, msg, "Ratio must be less than or equal to 1")
	})
}
