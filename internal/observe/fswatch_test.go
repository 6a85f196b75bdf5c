package observe

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func expectMutation(t *testing.T, w *FileWatcher) {
	t.Helper()
	select {
	case m := <-w.Events():
		assert.Equal(t, RegionDocument, m.Region)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a mutation event")
	}
}

func expectSilence(t *testing.T, w *FileWatcher, d time.Duration) {
	t.Helper()
	select {
	case m := <-w.Events():
		t.Fatalf("unexpected mutation: %v", m)
	case <-time.After(d):
	}
}

func TestFileWatcherEmitsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	writePage(t, path, "<html></html>")

	w := NewFileWatcher(path, RegionDocument, nil)
	require.NoError(t, w.Connect())
	defer w.Close()

	writePage(t, path, "<html><body>changed</body></html>")
	expectMutation(t, w)
}

func TestFileWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	writePage(t, path, "<html></html>")

	w := NewFileWatcher(path, RegionDocument, nil)
	require.NoError(t, w.Connect())
	defer w.Close()

	writePage(t, filepath.Join(dir, "other.html"), "<html></html>")
	expectSilence(t, w, 400*time.Millisecond)
}

func TestFileWatcherBurstYieldsTrailingMutation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	writePage(t, path, "<html></html>")

	w := NewFileWatcher(path, RegionDocument, nil)
	require.NoError(t, w.Connect())
	defer w.Close()

	// Editors save in bursts; both writes land well inside the debounce
	// window. The burst must still produce a mutation, delivered after the
	// final write so a reload sees the finished content.
	writePage(t, path, "<html>draft</html>")
	time.Sleep(50 * time.Millisecond)
	writePage(t, path, "<html>final</html>")

	expectMutation(t, w)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>final</html>", string(got))

	// The burst coalesces into a single mutation.
	expectSilence(t, w, 400*time.Millisecond)
}

func TestFileWatcherDisconnectDropsEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	writePage(t, path, "<html></html>")

	w := NewFileWatcher(path, RegionDocument, nil)
	require.NoError(t, w.Connect())
	defer w.Close()

	w.Disconnect()
	writePage(t, path, "<html>1</html>")
	expectSilence(t, w, 400*time.Millisecond)

	// Reconnect is a flag flip; the next write is observed again.
	require.NoError(t, w.Connect())
	writePage(t, path, "<html>2</html>")
	expectMutation(t, w)
}
