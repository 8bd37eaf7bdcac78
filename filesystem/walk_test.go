package filesystem

import (
	"os"
	"slices"
	"testing"

	"github.com/jamesbehr/symlinker/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relative(t *testing.T, root Path, paths []Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = string(p)[len(root)+1:]
	}
	return out
}

func TestClassify(t *testing.T) {
	root := tmpDir(t, []string{"dir/", "file"})
	createLinks(t, root, Links{
		"to-dir":  "dir",
		"to-file": "file",
		"broken":  "missing",
	})

	assert.Equal(t, Directory, root.Join("to-dir").Classify())
	assert.Equal(t, File, root.Join("to-file").Classify())
	assert.Equal(t, Broken, root.Join("broken").Classify())

	assert.Equal(t, "d", Directory.Tag())
	assert.Equal(t, "f", File.Tag())
	assert.Equal(t, "b", Broken.Tag())

	assert.True(t, root.Join("broken").IsSymlink())
	assert.False(t, root.Join("broken").Resolves())
	assert.False(t, root.Join("broken").PointsToDirectory())
	assert.False(t, root.Join("file").IsSymlink())
	assert.False(t, root.Join("nothing").IsSymlink())
	assert.True(t, root.Join("to-dir").PointsToDirectory())
}

func TestWalkNonRecursive(t *testing.T) {
	root := tmpDir(t, []string{"b/inner", "A", "c/"})

	seq, err := root.Walk(WalkOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "b", "c"}, relative(t, root, slices.Collect(seq)))
}

func TestWalkRecursiveOrder(t *testing.T) {
	root := tmpDir(t, []string{"Zeta", "apple/x", "apple/Y/z", "Banana"})

	seq, err := root.Walk(WalkOptions{Recursive: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"apple",
		"apple/x",
		"apple/Y",
		"apple/Y/z",
		"Banana",
		"Zeta",
	}, relative(t, root, slices.Collect(seq)))
}

func TestWalkDoesNotFollowLinksByDefault(t *testing.T) {
	root := tmpDir(t, []string{"dir/file"})
	createLinks(t, root, Links{"dir/loop": ".."})

	seq, err := root.Walk(WalkOptions{Recursive: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"dir", "dir/file", "dir/loop"}, relative(t, root, slices.Collect(seq)))
}

func TestWalkFollowBreaksCycles(t *testing.T) {
	root := tmpDir(t, []string{"dir/file", "other/thing"})
	createLinks(t, root, Links{
		"dir/loop":  "..",
		"dir/other": "../other",
	})

	seq, err := root.Walk(WalkOptions{Recursive: true, FollowSymlinks: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"dir",
		"dir/file",
		"dir/loop",
		"dir/other",
		"dir/other/thing",
		"other",
	}, relative(t, root, slices.Collect(seq)))
}

func TestWalkStopsEarly(t *testing.T) {
	root := tmpDir(t, []string{"a", "b", "c"})

	seq, err := root.Walk(WalkOptions{})
	require.NoError(t, err)

	var seen []Path
	for p := range seq {
		seen = append(seen, p)
		if len(seen) == 2 {
			break
		}
	}

	assert.Len(t, seen, 2)
}

func TestWalkMissingRoot(t *testing.T) {
	root := tmpDir(t, nil)

	_, err := root.Join("nope").Walk(WalkOptions{Recursive: true})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.PathUnavailable))

	_, err = tmpDir(t, []string{"file"}).Join("file").Walk(WalkOptions{})
	assert.True(t, errors.IsKind(err, errors.PathUnavailable))
}

func TestWalkUnreadableRoot(t *testing.T) {
	skipIfRoot(t)

	root := tmpDir(t, []string{"locked/"})
	require.NoError(t, os.Chmod(root.Join("locked").String(), 0300))
	defer os.Chmod(root.Join("locked").String(), 0755)

	_, err := root.Join("locked").Walk(WalkOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.PathUnavailable))
	assert.Contains(t, err.Error(), "permission")
}

func TestWalkSkipsUnreadableSubdirectory(t *testing.T) {
	skipIfRoot(t)

	root := tmpDir(t, []string{"locked/inner", "open/inner"})
	require.NoError(t, os.Chmod(root.Join("locked").String(), 0))
	defer os.Chmod(root.Join("locked").String(), 0755)

	seq, err := root.Walk(WalkOptions{Recursive: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"locked", "open", "open/inner"}, relative(t, root, slices.Collect(seq)))
}

func TestCompareFold(t *testing.T) {
	names := []string{"Zeta", "apple", "Banana", "banana"}
	slices.SortFunc(names, CompareFold)
	assert.Equal(t, []string{"apple", "Banana", "banana", "Zeta"}, names)
}
