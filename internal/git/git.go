package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ShallowClone clones the tip of repo into dir.
// dir must be empty or not exist.
func ShallowClone(ctx context.Context, repo, dir string) error {
	cmd := exec.CommandContext(ctx, "git", "clone", "--quiet", "--depth=1", repo, dir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to clone %s: %s: %w", repo, strings.TrimSpace(string(output)), err)
	}
	return nil
}
