package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last write before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// Change reports that the files behind a pattern were written, created or removed.
type Change struct {
	Path string
	Time time.Time
}

func (c Change) String() string {
	return fmt.Sprintf("CHANGE %s at %s", c.Path, c.Time.Format(time.RFC3339))
}

// Watch reports changes to the files pattern resolves to, debounced so that an editor
// save burst yields one Change. The directories holding the files are watched rather than
// the files themselves, because editors often replace a file instead of writing it.
// The channel is closed when ctx is done or the watcher fails.
func (l *Loader) Watch(ctx context.Context, pattern string, debounce time.Duration) (<-chan Change, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	dirs, err := l.watchDirs(pattern)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			_ = watcher.Close()
			return nil, &OpenError{Path: d, Err: err}
		}
	}

	out := make(chan Change)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer watcher.Close()
		return l.watchLoop(ctx, watcher, pattern, debounce, out)
	}, lifecycle.WithErrorHandler(func(err error) {
		l.logger.Error("dictionary watcher stopped", "error", err)
	}))
	return out, nil
}

func (l *Loader) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, pattern string, debounce time.Duration, out chan<- Change) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	var pending string
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !l.matches(pattern, event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			l.logger.Debug("dictionary event", "name", event.Name, "op", event.Op.String())
			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case out <- Change{Path: pending, Time: time.Now()}:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			l.logger.Error("fsnotify error", "error", err)
		}
	}
}

// watchDirs returns the directories to subscribe to for pattern.
func (l *Loader) watchDirs(pattern string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		if d == "" {
			d = "."
		}
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	if !hasMeta(pattern) {
		add(filepath.Dir(pattern))
		return dirs, nil
	}

	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	add(filepath.FromSlash(base))
	paths, err := l.Resolve(pattern)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		add(filepath.Dir(p))
	}
	return dirs, nil
}

func (l *Loader) matches(pattern, name string) bool {
	if !hasMeta(pattern) {
		return filepath.Clean(pattern) == filepath.Clean(name)
	}
	ok, err := doublestar.PathMatch(pattern, name)
	return err == nil && ok
}
