// Package secret resolves connection passwords from non-interactive sources.
package secret

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// PasswordEnv is the environment variable consulted after password_command.
const PasswordEnv = "SQLCREDS_PASSWORD"

// CommandTimeout bounds how long a password command may run.
var CommandTimeout = 5 * time.Second

// ResolvePassword retrieves a password using the following precedence:
// 1. Execute passwordCommand if configured
// 2. Use SQLCREDS_PASSWORD environment variable if set (even if empty)
//
// found is false when neither source applies and the caller should prompt.
func ResolvePassword(ctx context.Context, passwordCommand string) (password string, found bool, err error) {
	if passwordCommand != "" {
		pw, cmdErr := executePasswordCommand(ctx, passwordCommand)
		if cmdErr != nil {
			return "", false, fmt.Errorf("password command failed: %w", cmdErr)
		}
		return pw, true, nil
	}

	if value, exists := os.LookupEnv(PasswordEnv); exists {
		return value, true, nil
	}

	return "", false, nil
}

// executePasswordCommand runs command with CommandTimeout and returns its
// trimmed stdout.
func executePasswordCommand(ctx context.Context, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	// Parse command - split on spaces (no shell quoting)
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return "", errors.New("empty password command")
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("command timed out after %s", CommandTimeout)
		}
		return "", fmt.Errorf("command failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	password := strings.TrimSpace(stdout.String())
	if password == "" {
		return "", errors.New("command returned empty password")
	}

	return password, nil
}
