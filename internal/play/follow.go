package play

import (
	"context"
	"os"
	"strings"

	"github.com/zjrosen/vimotion/internal/log"
	"github.com/zjrosen/vimotion/internal/pubsub"
	"github.com/zjrosen/vimotion/internal/watcher"
)

// ReadFile reads a document the way the playground shows it: without the
// final newline.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-chosen input file
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// Follow publishes path's contents to pub each time the file changes, until
// ctx is done.
func Follow(ctx context.Context, path string, pub pubsub.Publisher[string]) error {
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return err
	}

	go func() {
		defer func() { _ = w.Stop() }()
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				publishFile(path, pub)
			}
		}
	}()
	return nil
}

func publishFile(path string, pub pubsub.Publisher[string]) {
	text, err := ReadFile(path)
	if err != nil {
		log.ErrorErr(log.CatCLI, "Reading changed document failed", err, "path", path)
		pub.Publish(pubsub.FailedEvent, err.Error())
		return
	}
	log.Debug(log.CatCLI, "Publishing changed document", "path", path, "bytes", len(text))
	pub.Publish(pubsub.ChangedEvent, text)
}
