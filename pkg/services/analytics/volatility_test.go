package analytics

import (
	"testing"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestVolatility(t *testing.T) {
	t.Run("constant series is Low", func(t *testing.T) {
		s := Volatility([]float64{100, 100, 100})
		assert.Equal(t, 0.0, s.CV)
		assert.Equal(t, domain.VolatilityLow, s.Rating)
	})

	t.Run("dispersed series is High", func(t *testing.T) {
		// mean 100, sample std 50 -> cv 50
		s := Volatility([]float64{50, 100, 150})
		assert.Equal(t, 100.0, s.Mean)
		assert.Equal(t, 50.0, s.CV)
		assert.Equal(t, domain.VolatilityHigh, s.Rating)
	})

	t.Run("medium band", func(t *testing.T) {
		s := Volatility([]float64{90, 100, 110})
		assert.GreaterOrEqual(t, s.CV, 10.0)
		assert.Less(t, s.CV, 20.0)
		assert.Equal(t, domain.VolatilityMedium, s.Rating)
	})

	t.Run("empty series", func(t *testing.T) {
		s := Volatility(nil)
		assert.Equal(t, 0.0, s.Mean)
		assert.Equal(t, 0.0, s.CV)
		assert.Equal(t, domain.VolatilityLow, s.Rating)
	})
}
