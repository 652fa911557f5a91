package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidRepo indicates a missing or non-directory repo path.
	ErrInvalidRepo = errors.New("invalid repo")

	// ErrNoStartFiles indicates an empty files list.
	ErrNoStartFiles = errors.New("no start files")

	// ErrMissingStartFile indicates a start file that does not exist.
	ErrMissingStartFile = errors.New("missing start file")
)

// Validate checks that the configuration names a real repository and that
// every start file exists beneath it.
func Validate(cfg *JSDeps) error {
	var errs []error

	if strings.TrimSpace(cfg.Repo) == "" {
		errs = append(errs, fmt.Errorf("%w: repo is required", ErrInvalidRepo))
	} else if info, err := os.Stat(cfg.Repo); err != nil || !info.IsDir() {
		errs = append(errs, fmt.Errorf("%w: not a directory: %s", ErrInvalidRepo, cfg.Repo))
	}

	if len(cfg.Files) == 0 {
		errs = append(errs, fmt.Errorf("%w: files list is empty or not provided", ErrNoStartFiles))
	} else if strings.TrimSpace(cfg.Repo) != "" {
		for _, f := range cfg.Files {
			full := filepath.Join(cfg.Repo, filepath.FromSlash(f))
			if info, err := os.Stat(full); err != nil || info.IsDir() {
				errs = append(errs, fmt.Errorf("%w: %s", ErrMissingStartFile, f))
			}
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
