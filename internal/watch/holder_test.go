package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hustcer/crowbook/internal/loader"
	"github.com/hustcer/crowbook/pkg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileBuilder(path string) BuildFunc {
	return func() (*options.Store, error) {
		s := options.New()
		if err := loader.Apply(s, path); err != nil {
			return nil, err
		}
		return s, nil
	}
}

func author(t *testing.T, s *options.Store) string {
	t.Helper()
	a, err := s.GetStr("author")
	require.NoError(t, err)
	return a
}

func TestHolderReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte("author: First\n"), 0o644))

	h, err := NewHolder(fileBuilder(path), path)
	require.NoError(t, err)
	first := h.Current()
	assert.Equal(t, "First", author(t, first))

	updates := make(chan *options.Store, 1)
	h.Subscribe(updates)

	require.NoError(t, os.WriteFile(path, []byte("author: Second\n"), 0o644))
	require.NoError(t, h.Reload(context.Background()))
	assert.Equal(t, "Second", author(t, h.Current()))
	assert.Equal(t, "First", author(t, first), "published store must not change")

	select {
	case s := <-updates:
		assert.Same(t, h.Current(), s)
	default:
		t.Fatal("expected reload notification")
	}

	t.Run("invalid file keeps previous store", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("numbering: lots\n"), 0o644))
		err := h.Reload(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, options.ErrParseInt)
		assert.Equal(t, "Second", author(t, h.Current()))
	})
}

func TestNewHolderFailsOnBadInitialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte("autor: typo\n"), 0o644))

	_, err := NewHolder(fileBuilder(path), path)
	assert.ErrorIs(t, err, options.ErrUnrecognizedKey)
}

func TestHolderWatchesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte("author: Before\n"), 0o644))

	h, err := NewHolder(fileBuilder(path), path)
	require.NoError(t, err)
	h.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, h.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("author: After\n"), 0o644))

	require.Eventually(t, func() bool {
		a, err := h.Current().GetStr("author")
		return err == nil && a == "After"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestStartWithoutPathIsNoop(t *testing.T) {
	h, err := NewHolder(func() (*options.Store, error) { return options.New(), nil }, "")
	require.NoError(t, err)
	assert.NoError(t, h.Start(context.Background()))
	h.Stop()
}
