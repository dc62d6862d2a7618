package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nethmalgunawardhana/spiriter-ai-chat/internal/test"
)

func TestWatcherNotifiesOnDatasetWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "players.csv")

	changed := make(chan struct{}, 1)
	w, err := New(path, test.DummyLogger(io.Discard).Sugar(), func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("Name\n"), 0o600))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a dataset change notification")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "players.csv")

	changed := make(chan struct{}, 1)
	w, err := New(path, test.DummyLogger(io.Discard).Sugar(), func() {
		changed <- struct{}{}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x\n"), 0o600))

	select {
	case <-changed:
		t.Fatal("unexpected notification for an unrelated file")
	case <-time.After(time.Second):
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing", "players.csv"),
		test.DummyLogger(io.Discard).Sugar(), func() {})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	err = w.Start(context.Background())
	assert.ErrorContains(t, err, "unable to watch dataset directory")
}
