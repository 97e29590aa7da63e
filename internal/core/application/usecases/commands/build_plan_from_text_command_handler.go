package commands

import (
	"context"
	"fmt"
	"strings"

	"routing/internal/core/domain/model/plan"
	"routing/internal/core/ports"
)

// BuildPlanFromTextCommandHandler builds unsolved plans from in-memory instance text.
type BuildPlanFromTextCommandHandler struct {
	builder instanceBuilder
}

func NewBuildPlanFromTextCommandHandler(
	reader ports.InstanceReader,
	matrices MatrixBuilder,
) BuildPlanFromTextCommandHandler {
	return BuildPlanFromTextCommandHandler{builder: instanceBuilder{reader: reader, matrices: matrices}}
}

func (h BuildPlanFromTextCommandHandler) Handle(ctx context.Context, cmd BuildPlanFromTextCommand) (*plan.RoutingPlan, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := h.builder.build(ctx, strings.NewReader(cmd.Text()))
	if err != nil {
		return nil, fmt.Errorf("build plan from text: %w", err)
	}
	return p, nil
}
