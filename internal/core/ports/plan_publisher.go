package ports

import (
	"context"

	"routing/internal/core/domain/model/plan"
)

// PlanPublisher hands a built plan to downstream consumers, typically a solver.
type PlanPublisher interface {
	// Publish serializes p and delivers it. Implementations must be safe for
	// concurrent use.
	Publish(ctx context.Context, p *plan.RoutingPlan) error
}
