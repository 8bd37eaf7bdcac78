package errors

import (
	"fmt"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := New(SymlinkMissing, "/tmp/a", "symlink /tmp/a doesn't exist")
	assert.Equal(t, "symlink /tmp/a doesn't exist", err.Error())

	wrapped := Wrap(os.ErrPermission, PermissionDenied, "/tmp/a", "can't modify /tmp/a")
	assert.Equal(t, "can't modify /tmp/a: permission denied", wrapped.Error())
	assert.ErrorIs(t, wrapped, os.ErrPermission)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, OSFailure, "x", "y"))
	assert.Nil(t, Wrapf(nil, OSFailure, "x", "y %d", 1))
}

func TestKindMatching(t *testing.T) {
	err := fmt.Errorf("batch: %w", Newf(NotASymlink, "/a", "%s is not a symbolic link", "/a"))

	assert.Equal(t, NotASymlink, KindOf(err))
	assert.True(t, IsKind(err, NotASymlink))
	assert.False(t, IsKind(err, SymlinkMissing))
	assert.ErrorIs(t, err, New(NotASymlink, "", ""))
	assert.Equal(t, Unknown, KindOf(os.ErrNotExist))
}

func TestErrno(t *testing.T) {
	err := Wrap(&os.LinkError{Op: "link", Old: "a", New: "b", Err: syscall.EXDEV}, OSFailure, "b", "link failed")

	errno, ok := Errno(err)
	require.True(t, ok)
	assert.Equal(t, syscall.EXDEV, errno)

	_, ok = Errno(New(OSFailure, "b", "no errno"))
	assert.False(t, ok)
}

func TestMessage(t *testing.T) {
	err := Wrap(os.ErrPermission, PermissionDenied, "/a", "you don't have permission to modify symlink /a")
	assert.Equal(t, "you don't have permission to modify symlink /a", Message(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, "plain", Message(fmt.Errorf("plain")))
}
