package builder

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kilnbuild/kiln/pkg/manifest"
)

// settle coalesces bursty editor and atomic-write events into one rebuild.
const settle = 250 * time.Millisecond

// Watch builds once, then rebuilds whenever the manifest or anything
// under the source tree changes. The manifest is re-read before every
// rebuild, so edits to it take effect on the next build. Build failures
// are logged and watching continues; Watch returns only when ctx is done
// or the watcher breaks.
func (b *Builder) Watch(ctx context.Context, release bool) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(b.dir()); err != nil {
		return fmt.Errorf("watch %s: %w", b.dir(), err)
	}
	if err := b.watchSourceTree(w); err != nil {
		return err
	}

	b.rebuild(ctx, release)

	var timer *time.Timer
	var timerCh <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(settle)
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(settle)
		}
		timerCh = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !b.relevant(ev) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := w.Add(ev.Name); err != nil {
						b.log().WithError(err).Warnf("cannot watch %s", ev.Name)
					}
				}
			}
			schedule()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			b.log().WithError(err).Warn("watch error")
		case <-timerCh:
			timerCh = nil
			b.rebuild(ctx, release)
		}
	}
}

// relevant reports whether an event should trigger a rebuild: a change to
// the manifest, or any change under the source tree. Artifacts written in
// the project root by the build itself never match, so a rebuild cannot
// retrigger the watcher.
func (b *Builder) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	if filepath.Base(ev.Name) == manifest.Filename {
		return true
	}
	rel, err := filepath.Rel(filepath.Join(b.dir(), SourceDir), ev.Name)
	return err == nil && !strings.HasPrefix(rel, "..")
}

// watchSourceTree registers every directory under the source root.
func (b *Builder) watchSourceTree(w *fsnotify.Watcher) error {
	root := filepath.Join(b.dir(), SourceDir)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (b *Builder) rebuild(ctx context.Context, release bool) {
	p, err := manifest.Load(filepath.Join(b.dir(), manifest.Filename))
	if err != nil {
		b.log().WithError(err).Error("manifest error, waiting for next change")
		return
	}
	if err := b.Run(ctx, p, release); err != nil {
		b.log().WithError(err).Error("build failed, waiting for next change")
	}
}
