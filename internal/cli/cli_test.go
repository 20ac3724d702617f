package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hustcer/crowbook/internal/watch"
	"github.com/hustcer/crowbook/pkg/options"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBook(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildStore(t *testing.T) {
	path := writeBook(t, "book.yaml", "author: Joan Doe\ncover: img/c.png\nnumbering: 2\n")

	t.Run("root defaults to the option file directory", func(t *testing.T) {
		store, err := BuildStore(StoreOptions{Config: path})
		require.NoError(t, err)

		assert.Equal(t, filepath.Dir(path), store.Root())
		cover, err := store.GetPath("cover")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(filepath.Dir(path), "img/c.png"), cover)
	})

	t.Run("overrides win over the file", func(t *testing.T) {
		store, err := BuildStore(StoreOptions{
			Root:   "/books/mybook",
			Config: path,
			Sets:   []string{"numbering=3", "lang=fr"},
		})
		require.NoError(t, err)

		assert.Equal(t, "/books/mybook", store.Root())
		n, err := store.GetI32("numbering")
		require.NoError(t, err)
		assert.Equal(t, int32(3), n)
		lang, err := store.GetStr("lang")
		require.NoError(t, err)
		assert.Equal(t, "fr", lang)
	})

	t.Run("bad override", func(t *testing.T) {
		_, err := BuildStore(StoreOptions{Sets: []string{"numbering=many"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, options.ErrParseInt)
	})

	t.Run("malformed assignment", func(t *testing.T) {
		_, err := BuildStore(StoreOptions{Sets: []string{"numbering"}})
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := BuildStore(StoreOptions{Config: filepath.Join(t.TempDir(), "nope.yaml")})
		assert.Error(t, err)
	})
}

func TestDescribe(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Describe(&buf, DescribeOptions{}))
		assert.Equal(t, options.Description(false), buf.String())
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Describe(&buf, DescribeOptions{Markdown: true}))
		assert.Equal(t, options.Description(true), buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Describe(&buf, DescribeOptions{JSON: true}))

		var keys []options.KeyInfo
		require.NoError(t, json.Unmarshal(buf.Bytes(), &keys))
		assert.Equal(t, options.DescribeKeys(), keys)
	})

	t.Run("conflicting formats", func(t *testing.T) {
		assert.Error(t, Describe(&bytes.Buffer{}, DescribeOptions{Markdown: true, JSON: true}))
	})
}

func TestCheck(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeBook(t, "book.toml", "author = \"Joan Doe\"\nnumbering = 2\n")

		var buf bytes.Buffer
		require.NoError(t, Check(&buf, StoreOptions{Config: path}))
		assert.Contains(t, buf.String(), "✅ All 2 options are valid!")
	})

	t.Run("reports every rejected option", func(t *testing.T) {
		path := writeBook(t, "book.yaml", "autor: Joan Doe\nnumbering: many\nnb_char: ab\ntitle: Ok\n")

		var buf bytes.Buffer
		err := Check(&buf, StoreOptions{Config: path})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCheckFailed)

		out := buf.String()
		assert.Contains(t, out, "❌ Unknown option: autor")
		assert.Contains(t, out, `❌ Invalid value for numbering: "many" (could not parse int)`)
		assert.Contains(t, out, `❌ Invalid value for nb_char: "ab" (could not parse char)`)
		assert.Contains(t, out, "3 of 4 options rejected")
	})

	t.Run("overrides only", func(t *testing.T) {
		var buf bytes.Buffer
		err := Check(&buf, StoreOptions{Sets: []string{"display_toc=yes"}})
		require.Error(t, err)
		assert.Contains(t, buf.String(), "could not parse bool")
	})

	t.Run("unparsable file", func(t *testing.T) {
		path := writeBook(t, "book.yaml", "author: [unterminated\n")

		var buf bytes.Buffer
		err := Check(&buf, StoreOptions{Config: path})
		assert.ErrorIs(t, err, ErrCheckFailed)
	})

	t.Run("nothing to check", func(t *testing.T) {
		assert.Error(t, Check(&bytes.Buffer{}, StoreOptions{}))
	})
}

func TestShow(t *testing.T) {
	path := writeBook(t, "book.yaml", "author: Joan Doe\ncover: img/c.png\nnb_char: \"'~'\"\n")
	dir := filepath.Dir(path)

	var buf bytes.Buffer
	require.NoError(t, Show(&buf, StoreOptions{Config: path}))

	out := buf.String()
	assert.Contains(t, out, "Book root: "+dir)
	assert.Contains(t, out, "author = Joan Doe\n")
	assert.Contains(t, out, "cover = "+filepath.Join(dir, "img/c.png")+"\n")
	assert.Contains(t, out, "nb_char = '~'\n")
	assert.NotContains(t, out, "subject =")

	// catalog order: author is declared before cover
	assert.Less(t, strings.Index(out, "author ="), strings.Index(out, "cover ="))
}

func TestShowVerbose(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Show(&buf, StoreOptions{Sets: []string{"numbering=4"}, Verbose: true}))
	assert.Contains(t, buf.String(), "numbering (integer) = 4\n")
}

func TestGet(t *testing.T) {
	opts := StoreOptions{Root: "/books/mybook", Sets: []string{"cover=img/c.png"}}

	var buf bytes.Buffer
	require.NoError(t, Get(&buf, "cover", opts))
	assert.Equal(t, filepath.Join("/books/mybook", "img/c.png")+"\n", buf.String())

	buf.Reset()
	require.NoError(t, Get(&buf, "author", opts))
	assert.Equal(t, "Anonymous\n", buf.String())

	err := Get(&buf, "subject", opts)
	assert.ErrorIs(t, err, options.ErrNotPresent)

	err = Get(&buf, "autor", opts)
	assert.ErrorIs(t, err, options.ErrUnrecognizedKey)
}

func TestBuilder(t *testing.T) {
	path := writeBook(t, "book.yaml", "author: First\n")

	build, err := Builder(StoreOptions{Config: path, Sets: []string{"lang=fr"}})
	require.NoError(t, err)

	first, err := build()
	require.NoError(t, err)
	author, err := first.GetStr("author")
	require.NoError(t, err)
	assert.Equal(t, "First", author)
	assert.Equal(t, filepath.Dir(path), first.Root())

	require.NoError(t, os.WriteFile(path, []byte("author: Second\n"), 0o644))
	second, err := build()
	require.NoError(t, err)
	author, err = second.GetStr("author")
	require.NoError(t, err)
	assert.Equal(t, "Second", author)

	// each build starts from a fresh copy of the defaults
	require.NoError(t, second.Set("title", "Changed"))
	third, err := build()
	require.NoError(t, err)
	title, err := third.GetStr("title")
	require.NoError(t, err)
	assert.Equal(t, "Untitled", title)

	lang, err := second.GetStr("lang")
	require.NoError(t, err)
	assert.Equal(t, "fr", lang)

	require.NoError(t, os.WriteFile(path, []byte("numbering: many\n"), 0o644))
	_, err = build()
	assert.ErrorIs(t, err, options.ErrParseInt)
}

// lockedBuffer is a bytes.Buffer safe for a logger goroutine and a reader.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestReportReloads(t *testing.T) {
	path := writeBook(t, "book.yaml", "author: First\n")
	build, err := Builder(StoreOptions{Config: path})
	require.NoError(t, err)

	holder, err := watch.NewHolder(build, path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out lockedBuffer
	reportReloads(ctx, holder, zerolog.New(&out))

	require.NoError(t, holder.Reload(ctx))

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "serving reloaded options")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), `"root":"`+filepath.Dir(path)+`"`)
}
