package commands

import (
	"context"
	"fmt"
	"os"

	"routing/internal/core/domain/model/plan"
	"routing/internal/core/ports"
)

// BuildPlanFromFileCommandHandler builds unsolved plans from instance files.
//
// When the instance supplies an explicit matrix, trip metrics use those
// distances; otherwise the matrix is computed from coordinates and metrics use
// straight-line distances.
//
// Example:
//
//	handler := NewBuildPlanFromFileCommandHandler(tsplib.NewReader(), services.NewMatrixBuilder())
//	cmd, _ := NewBuildPlanFromFileCommand("A-n32-k5.vrp")
//	p, err := handler.Handle(ctx, cmd)
type BuildPlanFromFileCommandHandler struct {
	builder instanceBuilder
}

func NewBuildPlanFromFileCommandHandler(
	reader ports.InstanceReader,
	matrices MatrixBuilder,
) BuildPlanFromFileCommandHandler {
	return BuildPlanFromFileCommandHandler{builder: instanceBuilder{reader: reader, matrices: matrices}}
}

// Handle opens the file, builds the plan and closes the file on every path.
func (h BuildPlanFromFileCommandHandler) Handle(ctx context.Context, cmd BuildPlanFromFileCommand) (*plan.RoutingPlan, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(cmd.Path())
	if err != nil {
		return nil, fmt.Errorf("build plan from file: %w", err)
	}
	defer f.Close()

	p, err := h.builder.build(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("build plan from file: %s: %w", cmd.Path(), err)
	}
	return p, nil
}
