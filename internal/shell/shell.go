package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// DefaultTimeout bounds escaped commands so a hung child cannot wedge the
// interface.
const DefaultTimeout = 10 * time.Second

// Runner executes command lines through the platform shell and captures
// their combined output.
type Runner struct {
	timeout time.Duration
}

// New constructs a runner with the default timeout.
func New() Runner {
	return Runner{timeout: DefaultTimeout}
}

// NewWithTimeout constructs a runner with an explicit timeout.
func NewWithTimeout(timeout time.Duration) Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Runner{timeout: timeout}
}

// Run executes one command line and returns its combined output. A nonzero
// exit reports an error alongside whatever output was produced.
func (r Runner) Run(command string) (string, error) {
	if strings.TrimSpace(command) == "" {
		return "", errors.New("empty command")
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	if ctx.Err() != nil {
		return out.String(), fmt.Errorf("command timed out after %s", r.timeout)
	}
	if err != nil {
		return out.String(), fmt.Errorf("run %q: %w", command, err)
	}
	return out.String(), nil
}
