package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultCommand is the templating tool shipped with online-judge-tools
const DefaultCommand = "oj-prepare"

// OjPrepare generates templates by running oj-prepare in a scratch directory
type OjPrepare struct {
	Command   string
	Templates []string
	// Timeout bounds one invocation; zero means no limit
	Timeout time.Duration
}

// NewOjPrepare creates a generator requesting DefaultTemplates
func NewOjPrepare(command string, timeout time.Duration) *OjPrepare {
	if command == "" {
		command = DefaultCommand
	}
	return &OjPrepare{
		Command:   command,
		Templates: DefaultTemplates,
		Timeout:   timeout,
	}
}

// toolConfig is the subset of oj-prepare's config.toml we write
type toolConfig struct {
	Templates map[string]string `toml:"templates"`
}

func (o *OjPrepare) Generate(ctx context.Context, url string) (map[string]string, error) {
	dir, err := os.MkdirTemp("", "oj-prepare-*")
	if err != nil {
		return nil, &GenerationError{URL: url, Err: fmt.Errorf("failed to create temp dir: %w", err)}
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "config.toml")
	if err := writeConfig(configPath, o.Templates); err != nil {
		return nil, &GenerationError{URL: url, Err: err}
	}

	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, o.Command, "--config-file", configPath, url)
	cmd.Dir = dir
	cmd.Stderr = &stderr
	cmd.WaitDelay = 5 * time.Second
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", o.Timeout, err)
		}
		return nil, &GenerationError{
			URL: url,
			Err: fmt.Errorf("%s failed: %s: %w", o.Command, strings.TrimSpace(stderr.String()), err),
		}
	}

	result := make(map[string]string, len(o.Templates))
	for _, name := range o.Templates {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, &GenerationError{URL: url, Err: fmt.Errorf("failed to read %s: %w", name, err)}
		}
		result[name] = string(content)
	}
	return result, nil
}

// writeConfig writes a config.toml mapping each template file to itself
func writeConfig(path string, templates []string) error {
	cfg := toolConfig{Templates: make(map[string]string, len(templates))}
	for _, name := range templates {
		cfg.Templates[name] = name
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal tool config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write tool config: %w", err)
	}
	return nil
}
