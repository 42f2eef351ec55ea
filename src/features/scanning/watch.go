package scanning

import (
	"context"
	"log/slog"

	"github.com/contre95/lyricfetch/src/infra/watcher"
)

// Watch keeps the process alive after the initial scan, rescanning root
// whenever new audio files land in it. Rescans are idempotent: tracks with a
// synced sidecar are skipped without any network call.
func (s *Service) Watch(ctx context.Context, root string) error {
	events := make(chan watcher.FileEvent, 8)
	w, err := watcher.NewWatcher(events, s.config.Get().Scan.Extensions)
	if err != nil {
		return err
	}
	if err := w.Start(ctx, root); err != nil {
		return err
	}
	defer w.Stop()

	slog.Info("Watching for new audio files", "root", root)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-events:
			slog.Info("Rescanning after new files", "root", event.Path)
			if _, err := s.Scan(ctx, root); err != nil && ctx.Err() == nil {
				slog.Error("Rescan failed", "root", root, "error", err.Error())
			}
		}
	}
}
