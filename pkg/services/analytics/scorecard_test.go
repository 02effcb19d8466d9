package analytics

import (
	"testing"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name      string
		actual    float64
		benchmark float64
		target    float64
		direction domain.KpiDirection
		want      string
	}{
		{"higher meets target", 55, 30, 50, domain.DirectionHigher, domain.StatusExcellent},
		{"higher meets benchmark", 35, 30, 50, domain.DirectionHigher, domain.StatusGood},
		{"higher below benchmark", 10, 30, 50, domain.DirectionHigher, domain.StatusNeedsImprovement},
		{"higher exactly on target", 50, 30, 50, domain.DirectionHigher, domain.StatusExcellent},
		{"lower meets target", 8, 24, 12, domain.DirectionLower, domain.StatusExcellent},
		{"lower meets benchmark", 20, 24, 12, domain.DirectionLower, domain.StatusGood},
		{"lower above benchmark", 30, 24, 12, domain.DirectionLower, domain.StatusNeedsImprovement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.actual, tt.benchmark, tt.target, tt.direction))
		})
	}
}
