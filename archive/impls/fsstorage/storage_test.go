// nolint
package fsstorage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sgostarter/libeasygo/pathutils"
	"github.com/sgostarter/librecorder/archive"
	"github.com/sgostarter/librecorder/archive/storagetest"
	"github.com/sgostarter/librecorder/recorder"
	"github.com/stretchr/testify/assert"
)

const (
	utRoot = "ut-data"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	code := m.Run()

	_ = os.RemoveAll(utRoot)

	os.Exit(code)
}

func TestFSStorage(t *testing.T) {
	storagetest.Run(t, NewFSStorage(filepath.Join(utRoot, "plain")))
}

func TestFSStorageCompressed(t *testing.T) {
	storagetest.Run(t, NewFSStorage(filepath.Join(utRoot, "zstd"), archive.WithCompression(archive.CompressionZSTD)))
}

func TestFSStorageMixedFiles(t *testing.T) {
	root := filepath.Join(utRoot, "mixed")

	ss := []recorder.Sample{{X: 1, Y: 2}}

	assert.Nil(t, NewFSStorage(root, archive.WithFormat(archive.FormatYAML)).Save("y", ss))

	s := NewFSStorage(root, archive.WithCompression(archive.CompressionLZ4))
	assert.Nil(t, s.Save("l", ss))
	assert.Nil(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0600))

	keys, err := s.Keys()
	assert.Nil(t, err)
	assert.ElementsMatch(t, []string{"y", "l"}, keys)

	loaded, err := s.Load("y")
	assert.Nil(t, err)
	assert.Equal(t, ss, loaded)

	assert.Equal(t, archive.ErrBadKey, s.Save("../escape", ss))
}

func TestFSStorageMissingRoot(t *testing.T) {
	keys, err := NewFSStorage(filepath.Join(utRoot, "none")).Keys()
	assert.Nil(t, err)
	assert.Empty(t, keys)
}

func TestFSStorageRootIsFile(t *testing.T) {
	root := filepath.Join(utRoot, "file-root")
	assert.Nil(t, os.WriteFile(root, []byte("x"), 0600))

	err := NewFSStorage(root).Save("a", []recorder.Sample{{X: 1, Y: 2}})

	var pathErr *os.PathError
	if assert.True(t, errors.As(err, &pathErr)) {
		assert.Equal(t, "mkdir", pathErr.Op)
	}
}
