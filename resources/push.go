package resources

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/theckman/yacspin"

	"github.com/bdube/infinitime/dfu"
)

// Push uploads every resource in m to the watch through sess, rooted at
// root on the local filesystem. Parent directories are created before any
// file beneath them is written; a failed CreateDir, including one the
// watch reports for a directory that already exists, aborts the push.
// Obsolete files are logged, never deleted: Push has no way to tell
// whether the user repurposed that path for something else.
func Push(ctx context.Context, sess *dfu.Session, m Manifest, root string, log *logrus.Logger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}

	for _, obs := range m.ObsoleteFiles {
		log.WithFields(logrus.Fields{"path": obs.Path, "since": obs.Since}).
			Info("resources: manifest marks path obsolete, leaving it in place")
	}

	for _, dir := range parentDirs(m.Resources) {
		if err := sess.CreateDir(ctx, dir, dfu.Now()); err != nil {
			return fmt.Errorf("resources: creating %s: %w", dir, err)
		}
	}

	spinner, err := newSpinner(len(m.Resources))
	if err != nil {
		return fmt.Errorf("resources: starting progress spinner: %w", err)
	}
	if err := spinner.Start(); err != nil {
		return fmt.Errorf("resources: starting progress spinner: %w", err)
	}
	defer spinner.Stop()

	for i, r := range m.Resources {
		local := path.Join(root, r.Filename)
		spinner.Message(fmt.Sprintf("(%d/%d) %s -> %s", i+1, len(m.Resources), r.Filename, r.Path))

		data, err := os.ReadFile(local)
		if err != nil {
			return fmt.Errorf("resources: reading %s: %w", local, err)
		}
		if err := sess.WriteFile(ctx, r.Path, data, dfu.Now()); err != nil {
			return fmt.Errorf("resources: writing %s: %w", r.Path, err)
		}
	}

	spinner.StopMessage(fmt.Sprintf("pushed %d resources", len(m.Resources)))
	return nil
}

func newSpinner(total int) (*yacspin.Spinner, error) {
	cfg := yacspin.Config{
		Frequency:       100 * time.Millisecond,
		CharSet:         yacspin.CharSets[9],
		Suffix:          " pushing resources",
		SuffixAutoColon: true,
		StopCharacter:   "✓",
		StopColors:      []string{"fgGreen"},
	}
	if total == 0 {
		cfg.Suffix = " no resources to push"
	}
	return yacspin.New(cfg)
}
