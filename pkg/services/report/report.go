// Package report assembles analysis results into presentation-neutral
// report documents. Rendering to a concrete output lives behind the
// export renderers.
package report

import (
	"fmt"

	"github.com/de-tools/customs-atlas/pkg/services/kpi"
)

// Assembler builds report documents from calculator output.
type Assembler struct {
	calc *kpi.Calculator
}

func NewAssembler(calc *kpi.Calculator) (*Assembler, error) {
	if calc == nil {
		return nil, fmt.Errorf("calculator is nil")
	}
	return &Assembler{calc: calc}, nil
}
