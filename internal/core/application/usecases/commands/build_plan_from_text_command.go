package commands

import (
	"errors"
	"strings"

	"routing/internal/pkg/errs"
	"routing/internal/pkg/guard"
)

var (
	ErrBuildPlanFromTextCommandIsNotConstructed = errors.New(
		"BuildPlanFromTextCommand must be created via NewBuildPlanFromTextCommand constructor",
	)
	ErrInstanceTextIsRequired = errs.NewValueIsRequiredError("instance text")
)

// BuildPlanFromTextCommand requests a plan built from instance text received
// in memory, for example in an HTTP request body.
type BuildPlanFromTextCommand struct {
	text string

	guard guard.ConstructorGuard
}

func NewBuildPlanFromTextCommand(text string) (BuildPlanFromTextCommand, error) {
	if strings.TrimSpace(text) == "" {
		return BuildPlanFromTextCommand{}, ErrInstanceTextIsRequired
	}
	return BuildPlanFromTextCommand{text: text, guard: guard.NewConstructorGuard()}, nil
}

func (c BuildPlanFromTextCommand) Validate() error {
	return c.guard.Validate(ErrBuildPlanFromTextCommandIsNotConstructed)
}

func (c BuildPlanFromTextCommand) Text() string {
	return c.text
}
