// nolint
package mfstorage

import (
	"os"
	"testing"

	"github.com/sgostarter/libeasygo/pathutils"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
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

func TestMFStorage(t *testing.T) {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	storagetest.Run(t, NewMFStorage("", rawfs.NewFSStorage(utRoot)))
}

func TestMFStorageReload(t *testing.T) {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	ss := []recorder.Sample{{X: -1, Y: 0.125, W: 1}, {X: 2, Y: 3}}

	s := NewMFStorage("", rawfs.NewFSStorage(utRoot))
	assert.Nil(t, s.Save("r1", ss))
	assert.Nil(t, s.Save("r2", nil))

	s = NewMFStorage("", rawfs.NewFSStorage(utRoot))

	loaded, err := s.Load("r1")
	assert.Nil(t, err)
	assert.Equal(t, ss, loaded)

	keys, err := s.Keys()
	assert.Nil(t, err)
	assert.ElementsMatch(t, []string{"r1", "r2"}, keys)
}
