package fetch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LockFilename is the dependency record kept next to the manifest.
const LockFilename = "kiln.lock"

// Dep is one installed repository.
type Dep struct {
	Source      string    `json:"source"`
	Ref         string    `json:"ref,omitempty"`
	Files       int       `json:"files"`
	InstalledAt time.Time `json:"installed_at"`
}

// Lock lists everything installed into a project.
type Lock struct {
	Deps []Dep `json:"deps"`
}

// ReadLock loads the lockfile in dir. A missing file is an empty lock,
// not an error.
func ReadLock(dir string) (Lock, error) {
	data, err := os.ReadFile(filepath.Join(dir, LockFilename))
	if os.IsNotExist(err) {
		return Lock{}, nil
	}
	if err != nil {
		return Lock{}, err
	}

	var l Lock
	if err := json.Unmarshal(data, &l); err != nil {
		return Lock{}, fmt.Errorf("parse %s: %w", LockFilename, err)
	}
	return l, nil
}

// appendLock records dep, replacing any earlier entry for the same source.
func appendLock(dir string, dep Dep) error {
	l, err := ReadLock(dir)
	if err != nil {
		return err
	}

	replaced := false
	for i, d := range l.Deps {
		if d.Source == dep.Source {
			l.Deps[i] = dep
			replaced = true
			break
		}
	}
	if !replaced {
		l.Deps = append(l.Deps, dep)
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, LockFilename), append(data, '\n'), 0o644)
}
