package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

// Command is an external program run inside WorkDir. Env is added to the environment of the tool.
type Command struct {
	WorkDir    string
	Executable string
	Args       []string
	Env        []string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Executable + " " + strings.Join(c.Args, " "))
}

type Runner interface {
	// Execute returns the standard output of the command.
	Execute(ctx context.Context, command Command) (string, error)
}

func NewCommandRunner(logger applogger.Logger) Runner {
	return &runner{
		logger: logger,
	}
}

type runner struct {
	logger applogger.Logger
}

func (r runner) Execute(ctx context.Context, command Command) (string, error) {
	if command.Executable == "" {
		return "", errors.New("command executable can not be empty")
	}
	// nolint:gosec
	cmd := exec.CommandContext(ctx, command.Executable, command.Args...)
	cmd.Dir = command.WorkDir
	if len(command.Env) != 0 {
		cmd.Env = append(os.Environ(), command.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug(fmt.Sprintf("running %v in %v", command, command.WorkDir))
	if err := cmd.Run(); err != nil {
		if message := strings.TrimSpace(stderr.String()); message != "" {
			return stdout.String(), errors.Wrapf(err, "%v: %v", command, message)
		}
		return stdout.String(), errors.Wrapf(err, "%v", command)
	}
	return stdout.String(), nil
}
