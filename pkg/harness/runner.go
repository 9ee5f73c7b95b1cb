package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// RunCommand executes argv[0] with the remaining arguments, inheriting
// the harness's standard streams, and returns the command's exit code.
// This is how the driver runs a client test binary against the mock
// services: start the Set, run the command to completion, tear down,
// exit with the command's code.
//
// A command that cannot be started at all returns -1 and the start
// error; a command that ran and exited nonzero returns its code with a
// nil error.
func RunCommand(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("no command given")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("run %s: %w", argv[0], err)
	}
	return 0, nil
}
