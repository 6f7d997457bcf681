package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFileAt(t *testing.T, dir, name string, mod time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
	return path
}

func TestSelectLatest_EmptyDirectory_ReturnsErrNoArtifact(t *testing.T) {
	dir := t.TempDir()

	_, err := SelectLatest(dir, ".nupkg")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoArtifact))
}

func TestSelectLatest_NoMatchingExtension_ReturnsErrNoArtifact(t *testing.T) {
	dir := t.TempDir()
	writeFileAt(t, dir, "pkg-1.0.0.zip", time.Now())
	writeFileAt(t, dir, "readme.txt", time.Now())

	_, err := SelectLatest(dir, ".nupkg")
	require.True(t, errors.Is(err, ErrNoArtifact))
}

func TestSelectLatest_MissingDirectory_ReturnsError(t *testing.T) {
	_, err := SelectLatest(filepath.Join(t.TempDir(), "absent"), ".nupkg")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNoArtifact))
}

func TestSelectLatest_MultipleArtifacts_ReturnsNewest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	writeFileAt(t, dir, "pkg-1.0.0.nupkg", base)
	newest := writeFileAt(t, dir, "pkg-1.1.0.nupkg", base.Add(10*time.Minute))
	writeFileAt(t, dir, "pkg-1.0.1.nupkg", base.Add(5*time.Minute))

	got, err := SelectLatest(dir, ".nupkg")
	require.NoError(t, err)
	require.Equal(t, newest, got)
}

func TestSelectLatest_EqualTimestamps_BreaksTieLexicographically(t *testing.T) {
	dir := t.TempDir()
	mod := time.Now().Truncate(time.Second)
	writeFileAt(t, dir, "pkg-1.0.9.nupkg", mod)
	writeFileAt(t, dir, "pkg-1.0.10.nupkg", mod)

	got, err := SelectLatest(dir, ".nupkg")
	require.NoError(t, err)
	// Plain string comparison: "9" sorts above "10".
	require.Equal(t, filepath.Join(dir, "pkg-1.0.9.nupkg"), got)
}

func TestSelectLatest_SubdirectoriesAndNestedFiles_AreIgnored(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested.nupkg")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFileAt(t, sub, "pkg-9.9.9.nupkg", time.Now())
	want := writeFileAt(t, dir, "pkg-1.0.0.nupkg", time.Now().Add(-time.Hour))

	got, err := SelectLatest(dir, ".nupkg")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSelectLatest_SingleArtifact_ReturnsIt(t *testing.T) {
	dir := t.TempDir()
	want := writeFileAt(t, dir, "pkg-1.0.0.nupkg", time.Now())

	got, err := SelectLatest(dir, ".nupkg")
	require.NoError(t, err)
	require.Equal(t, want, got)
}
