// Package linttool shells out to optional external linters (pylint, pmd) and
// normalizes their findings. Linters run only when their binary is on PATH;
// missing tools are never an error.
package linttool

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/schema"
)

// ForLanguage returns the linter for the given language, or nil when the
// language has no external lint integration.
func ForLanguage(lang schema.Language) contract.Linter {
	switch lang {
	case schema.PythonLang:
		return &PylintLinter{}
	case schema.JavaLang:
		return &PMDLinter{}
	default:
		return nil
	}
}

// writeTempFile materializes remote file content on disk so the lint binary
// can read it. The caller removes the directory via the returned cleanup.
func writeTempFile(path string, content []byte) (string, func(), error) {
	dir, err := os.MkdirTemp("", "autocodex-lint-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	tmpPath := filepath.Join(dir, filepath.Base(path))
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		cleanup()
		return "", nil, err
	}
	return tmpPath, cleanup, nil
}

// runCommand executes the lint binary and returns stdout. Lint tools signal
// findings through non-zero exit codes, so an exit error with output is not
// treated as a failure.
func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok && len(out) > 0 {
			return out, nil
		}
		return nil, fmt.Errorf("run %s: %w", name, err)
	}
	return out, nil
}
