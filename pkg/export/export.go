// Package export defines the rendering boundary for assembled reports.
package export

import (
	"context"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
)

// Renderer turns an assembled report into a concrete output. The
// destination (file path, writer) is fixed at construction.
type Renderer interface {
	Render(ctx context.Context, report *domain.Report) error
}
