package crontab_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reugn/go-cronparser/cronparser"
	"github.com/reugn/go-cronparser/crontab"
	"github.com/reugn/go-cronparser/internal/assert"
)

func TestWatch(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "crontab")
	assert.IsNil(t, os.WriteFile(path, []byte("0 * * * * first\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loaded := make(chan *crontab.Crontab, 8)
	done := make(chan error, 1)
	go func() {
		done <- crontab.Watch(ctx, path, func(tab *crontab.Crontab) {
			loaded <- tab
		}, cronparser.WithUTC())
	}()

	receive := func() *crontab.Crontab {
		t.Helper()
		select {
		case tab := <-loaded:
			return tab
		case <-time.After(5 * time.Second):
			t.Fatal("crontab was not loaded")
		}
		return nil
	}

	tab := receive()
	assert.Equal(t, tab.Entries[0].Command, "first")

	// wait for the watcher to settle before changing the file
	time.Sleep(200 * time.Millisecond)
	assert.IsNil(t, os.WriteFile(path, []byte("0 * * * * first\n*/5 * * * * second\n"), 0o600))
	tab = receive()
	assert.Equal(t, len(tab.Entries), 2)
	assert.Equal(t, tab.Entries[1].Command, "second")

	cancel()
	select {
	case err := <-done:
		assert.IsNil(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "missing", "crontab")
	err := crontab.Watch(context.Background(), path, func(*crontab.Crontab) {})
	assert.NotNil(t, err)
}
