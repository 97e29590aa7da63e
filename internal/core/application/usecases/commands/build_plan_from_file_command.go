package commands

import (
	"errors"
	"strings"

	"routing/internal/pkg/errs"
	"routing/internal/pkg/guard"
)

var (
	ErrBuildPlanFromFileCommandIsNotConstructed = errors.New(
		"BuildPlanFromFileCommand must be created via NewBuildPlanFromFileCommand constructor",
	)
	ErrPathIsRequired = errs.NewValueIsRequiredError("path")
)

// BuildPlanFromFileCommand requests a plan built from an instance file.
//
// Example:
//
//	cmd, err := NewBuildPlanFromFileCommand("data/A-n32-k5.vrp")
//	if err != nil {
//	    return err
//	}
//	p, err := handler.Handle(ctx, cmd)
type BuildPlanFromFileCommand struct {
	path string

	guard guard.ConstructorGuard
}

func NewBuildPlanFromFileCommand(path string) (BuildPlanFromFileCommand, error) {
	cmd := BuildPlanFromFileCommand{guard: guard.NewConstructorGuard()}

	if err := cmd.setPath(path); err != nil {
		return BuildPlanFromFileCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BuildPlanFromFileCommand) Validate() error {
	return c.guard.Validate(ErrBuildPlanFromFileCommandIsNotConstructed)
}

// Path returns the instance file location.
func (c BuildPlanFromFileCommand) Path() string {
	return c.path
}

func (c *BuildPlanFromFileCommand) setPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrPathIsRequired
	}
	c.path = path
	return nil
}
