package commands

import (
	"errors"

	"routing/internal/core/application/payload"
	"routing/internal/pkg/guard"
)

var ErrBuildPlanFromPayloadCommandIsNotConstructed = errors.New(
	"BuildPlanFromPayloadCommand must be created via NewBuildPlanFromPayloadCommand constructor",
)

// BuildPlanFromPayloadCommand requests a plan decoded from a structured payload,
// usually a solved plan delivered by the solver.
//
// Example:
//
//	body, _ := payload.Decode(message)
//	cmd := NewBuildPlanFromPayloadCommand(body)
//	p, err := handler.Handle(ctx, cmd)
type BuildPlanFromPayloadCommand struct {
	payload payload.Plan

	guard guard.ConstructorGuard
}

func NewBuildPlanFromPayloadCommand(p payload.Plan) BuildPlanFromPayloadCommand {
	return BuildPlanFromPayloadCommand{payload: p, guard: guard.NewConstructorGuard()}
}

func (c BuildPlanFromPayloadCommand) Validate() error {
	return c.guard.Validate(ErrBuildPlanFromPayloadCommandIsNotConstructed)
}

func (c BuildPlanFromPayloadCommand) Payload() payload.Plan {
	return c.payload
}
