package localdisk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, err := New(t.TempDir())
	require.NoError(t, err)

	_, ok, err := st.Load(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Save(ctx, "cart", `[{"id":"p1"}]`))

	v, ok, err := st.Load(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"p1"}]`, v)

	require.NoError(t, st.Save(ctx, "cart", "[]"))
	v, _, _ = st.Load(ctx, "cart")
	assert.Equal(t, "[]", v)
}

func TestKeySanitization(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, st.Save(ctx, "recently-viewed", "[]"))
	require.NoError(t, st.Save(ctx, "../escape", "x"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), "..")
	}

	v, ok, err := st.Load(ctx, "../escape")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, st.Save(ctx, "cart", "[]"))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestContextCancellation(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, st.Save(ctx, "cart", "[]"))
	_, _, err = st.Load(ctx, "cart")
	assert.Error(t, err)
}
