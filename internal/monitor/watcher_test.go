package monitor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aleister1102/outboundwatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFolderWatcher_LogsCreatedFiles(t *testing.T) {
	dir := t.TempDir()
	var logs syncBuffer
	fw := NewFolderWatcher([]config.NamedFolder{{Role: "drop", Path: dir}}, zerolog.New(&logs))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fw.Run(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "Folder watchers started")
	}, 5*time.Second, 10*time.Millisecond)

	path := filepath.Join(dir, "ACME_20260309.x12")
	require.NoError(t, os.WriteFile(path, []byte("ISA*00"), 0644))

	assert.Eventually(t, func() bool {
		out := logs.String()
		return strings.Contains(out, "File created event") && strings.Contains(out, "ACME_20260309.x12")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestFolderWatcher_NoWatchableFolders(t *testing.T) {
	var logs syncBuffer
	fw := NewFolderWatcher([]config.NamedFolder{{Role: "hold", Path: filepath.Join(t.TempDir(), "missing")}}, zerolog.New(&logs))

	assert.NoError(t, fw.Run(context.Background()))
	assert.Contains(t, logs.String(), "Cannot watch folder")
}
