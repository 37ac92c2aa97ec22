package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// hookCandidates are the build script files looked for in the project
// root, in preference order, each with the interpreter that runs it.
var hookCandidates = []struct {
	script      string
	interpreter string
}{
	{"build.sh", "sh"},
	{"build.py", "python3"},
}

// A HookNotFoundError means the manifest asked for a build script but no
// candidate file exists in the project root.
type HookNotFoundError struct {
	Candidates []string
}

func (e *HookNotFoundError) Error() string {
	return fmt.Sprintf("no build script found (checked %s)", strings.Join(e.Candidates, ", "))
}

// runHook executes the first build script candidate present on disk. Its
// exit status is subject to the same fail-fast rule as the compiler.
func (b *Builder) runHook(ctx context.Context) error {
	for _, c := range hookCandidates {
		if _, err := os.Stat(filepath.Join(b.dir(), c.script)); err == nil {
			b.log().Debugf("running build script %s via %s", c.script, c.interpreter)
			return b.run(ctx, c.interpreter, c.script)
		}
	}

	names := make([]string, len(hookCandidates))
	for i, c := range hookCandidates {
		names[i] = c.script
	}
	return &HookNotFoundError{Candidates: names}
}
