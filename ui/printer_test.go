package ui

import (
	"bytes"
	"os"
	"slices"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/jamesbehr/symlinker/errors"
	"github.com/jamesbehr/symlinker/filesystem"
	"github.com/jamesbehr/symlinker/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Link(pkg.LinkEntry{Path: "/home/user/.vimrc", Destination: "dotfiles/vimrc"})
	assert.Equal(t, "/home/user/.vimrc -> dotfiles/vimrc\n", buf.String())
}

func TestLinkWithType(t *testing.T) {
	dir := t.TempDir()
	root := filesystem.Path(dir)
	require.NoError(t, os.Mkdir(root.Join("dir").String(), 0755))
	require.NoError(t, os.WriteFile(root.Join("file").String(), nil, 0644))
	require.NoError(t, os.Symlink("dir", root.Join("d").String()))
	require.NoError(t, os.Symlink("file", root.Join("f").String()))
	require.NoError(t, os.Symlink("gone", root.Join("b").String()))

	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.ShowType = true

	// IsDirectory is stale on purpose: the tag reflects the link right now.
	p.Link(pkg.LinkEntry{Path: root.Join("b"), Destination: "gone", IsDirectory: true})
	p.Link(pkg.LinkEntry{Path: root.Join("d"), Destination: "dir"})
	p.Link(pkg.LinkEntry{Path: root.Join("f"), Destination: "file"})

	assert.Equal(t,
		"b "+root.Join("b").String()+" -> gone\n"+
			"d "+root.Join("d").String()+" -> dir\n"+
			"f "+root.Join("f").String()+" -> file\n",
		buf.String())
}

func TestLinksStreams(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	n := p.Links(slices.Values([]pkg.LinkEntry{
		{Path: "a", Destination: "1"},
		{Path: "b", Destination: "2"},
	}))

	assert.Equal(t, 2, n)
	assert.Equal(t, "a -> 1\nb -> 2\n", buf.String())
}

func TestFailureAndRewrite(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Rewrite(pkg.Result{
		Entry:  pkg.LinkEntry{Path: "a", Destination: "/foo/1"},
		Stored: "/baz/1",
	}, false)
	p.Rewrite(pkg.Result{
		Entry:  pkg.LinkEntry{Path: "c", Destination: "/foo/3"},
		Stored: "/baz/3",
	}, true)
	p.Rewrite(pkg.Result{
		Entry: pkg.LinkEntry{Path: "b", Destination: "/foo/2"},
		Err:   errors.New(errors.DestinationUnavailable, "/baz/2", "destination /baz/2 doesn't exist or isn't accessible"),
	}, false)
	p.Done(pkg.Report{
		Processed: 3,
		Rewritten: 2,
		Errors:    multierror.Append(nil, errors.New(errors.DestinationUnavailable, "/baz/2", "destination /baz/2 doesn't exist or isn't accessible")),
	})

	assert.Equal(t,
		"a -> /foo/1 => /baz/1\n"+
			"would rewrite c -> /foo/3 => /baz/3\n"+
			"destination /baz/2 doesn't exist or isn't accessible\n"+
			"done: 3 link(s) processed, 1 failed\n",
		buf.String())
}

func TestColorEnabled(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, ColorEnabled(ColorAlways, f))
	assert.False(t, ColorEnabled(ColorNever, f))
	assert.False(t, ColorEnabled(ColorAuto, f), "a regular file is not a terminal")
}

func TestColorOutputKeepsText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.Link(pkg.LinkEntry{Path: "a", Destination: "1"})
	assert.Contains(t, buf.String(), "a ")
	assert.Contains(t, buf.String(), " 1\n")
	assert.Contains(t, buf.String(), "->")
}
