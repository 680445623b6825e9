package fsstorage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/librecorder/archive"
	"github.com/sgostarter/librecorder/recorder"
)

const fileExt = ".rec"

// NewFSStorage keeps one encoded file per key under root. options select the
// format and compression of newly written files; any stored file can be read
// back regardless.
func NewFSStorage(root string, options ...archive.Option) archive.Storage {
	return &fsStorageImpl{
		root:    root,
		options: options,
	}
}

type fsStorageImpl struct {
	root    string
	options []archive.Option
}

func (impl *fsStorageImpl) fileNameByKey(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", archive.ErrBadKey
	}

	return filepath.Join(impl.root, key+fileExt), nil
}

func (impl *fsStorageImpl) Load(key string) (ss []recorder.Sample, err error) {
	fileName, err := impl.fileNameByKey(key)
	if err != nil {
		return
	}

	d, err := os.ReadFile(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = commerr.ErrNotFound
		}

		return
	}

	ss, err = archive.DecodeSamples(d)

	return
}

func (impl *fsStorageImpl) Save(key string, ss []recorder.Sample) (err error) {
	fileName, err := impl.fileNameByKey(key)
	if err != nil {
		return
	}

	if err = os.MkdirAll(impl.root, 0700); err != nil {
		return
	}

	d, err := archive.EncodeSamples(ss, impl.options...)
	if err != nil {
		return
	}

	tmpFileName := fileName + ".tmp"

	if err = os.WriteFile(tmpFileName, d, 0600); err != nil {
		return
	}

	err = os.Rename(tmpFileName, fileName)

	return
}

func (impl *fsStorageImpl) Remove(key string) (err error) {
	fileName, err := impl.fileNameByKey(key)
	if err != nil {
		return
	}

	err = os.Remove(fileName)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
	}

	return
}

func (impl *fsStorageImpl) Keys() (keys []string, err error) {
	entries, err := os.ReadDir(impl.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = nil
		}

		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}

		keys = append(keys, strings.TrimSuffix(entry.Name(), fileExt))
	}

	return
}
