package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/shortname/pkg/shortname"
)

func TestReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.csv")
	require.NoError(t, os.WriteFile(path, []byte("bottle,BTL\n"), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := shortname.New(shortname.Options{Logger: logger})
	require.NoError(t, engine.LoadDictionary(path))
	require.Equal(t, 1, engine.DictionaryEntryCount())

	w := New(path, engine)
	w.Logger = logger
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-w.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not start")
	}

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x,y\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("bottle,BTL\nbox,BX\nvial,VL\n"), 0o644))

	assert.Eventually(t, func() bool {
		return engine.DictionaryEntryCount() == 3
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

type failingReloader struct{ calls int }

func (f *failingReloader) LoadDictionary(string) error {
	f.calls++
	return os.ErrNotExist
}

func TestMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope", "dict.csv"), &failingReloader{})
	err := w.Run(context.Background())
	assert.Error(t, err)
}

func TestReloadFailureIsReported(t *testing.T) {
	f := &failingReloader{}
	w := New("dict.csv", f)
	w.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	var got error
	w.OnReload = func(err error) { got = err }
	w.reload()

	assert.Equal(t, 1, f.calls)
	assert.ErrorIs(t, got, os.ErrNotExist)
}
