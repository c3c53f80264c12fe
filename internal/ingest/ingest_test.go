package ingest

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitReports(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{
			name: "telegram form",
			data: "AAXX 01004 88889 12782 61506=\nAAXX 01004 11111 12782 61506=\n",
			want: []string{"AAXX 01004 88889 12782 61506", "AAXX 01004 11111 12782 61506"},
		},
		{
			name: "one per line",
			data: "AAXX 01004 88889 12782 61506\n\nAAXX 01004 11111 12782 61506\n",
			want: []string{"AAXX 01004 88889 12782 61506", "AAXX 01004 11111 12782 61506"},
		},
		{
			name: "comments skipped",
			data: "# coastal stations\nAAXX 01004 88889 12782 61506\n",
			want: []string{"AAXX 01004 88889 12782 61506"},
		},
		{
			name: "multiline telegram",
			data: "AAXX 01004 88889 12782\n61506=",
			want: []string{"AAXX 01004 88889 12782\n61506"},
		},
		{
			name: "comment before telegram form",
			data: "# coastal stations\nAAXX 01004 88889 12782 61506=\nAAXX 01004 11111 12782 61506=\n",
			want: []string{"AAXX 01004 88889 12782 61506", "AAXX 01004 11111 12782 61506"},
		},
		{
			name: "comment between telegrams",
			data: "AAXX 01004 88889 12782 61506=\n# second block\nAAXX 01004 11111 12782 61506=\n",
			want: []string{"AAXX 01004 88889 12782 61506", "AAXX 01004 11111 12782 61506"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitReports(tt.data))
		})
	}
}

func TestWatcherDeliversSettledFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(50*time.Millisecond, nil)
	require.NoError(t, err)

	events := 0
	w.OnEvent = func() { events++ }

	delivered := make(chan string, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, dir, func(path string) {
			delivered <- path
			cancel()
		})
	}()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(dir, "obs.synop")
	require.NoError(t, os.WriteFile(path, []byte("AAXX 01004 88889 12782 61506=\n"), 0o644))

	select {
	case got := <-delivered:
		assert.Equal(t, path, got)
	case <-ctx.Done():
		t.Fatal("no delivery before timeout")
	}
	require.NoError(t, <-done)
	assert.GreaterOrEqual(t, events, 1)
}

func TestScheduleAbandonsDeliveryAfterWatchReturns(t *testing.T) {
	w, err := NewWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)

	deliveries := make(chan string)
	done := make(chan struct{})
	close(done) // Watch already returned, nobody will receive

	before := runtime.NumGoroutine()
	w.schedule(filepath.Join(t.TempDir(), "obs.synop"), deliveries, done)

	// The fired timer must disarm itself and exit instead of blocking
	// on the unbuffered channel.
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return len(w.timers) == 0
	}, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(30*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
	defer cancel()

	delivered := make(chan string, 1)
	go func() {
		_ = w.Watch(ctx, dir, func(path string) { delivered <- path })
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644))

	select {
	case path := <-delivered:
		t.Fatalf("unexpected delivery for %s", path)
	case <-ctx.Done():
	}
}
