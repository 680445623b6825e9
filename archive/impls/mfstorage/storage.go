package mfstorage

import (
	"path/filepath"
	"sync"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/mwf"
	"github.com/sgostarter/librecorder/archive"
	"github.com/sgostarter/librecorder/recorder"
)

const fileName = "recorders.json"

// NewMFStorage keeps every document in memory and mirrors the whole set into
// root/recorders.json on each change. Meant for a modest number of recorders.
func NewMFStorage(root string, storage stg.FileStorage) archive.Storage {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &mfStorageImpl{
		docs: mwf.NewMemWithFile[map[string]*archive.Document, mwf.Serial, mwf.Lock](
			make(map[string]*archive.Document), &mwf.JSONSerial{}, &sync.RWMutex{}, filepath.Join(root, fileName), storage),
	}
}

type mfStorageImpl struct {
	docs *mwf.MemWithFile[map[string]*archive.Document, mwf.Serial, mwf.Lock]
}

func copySamples(ss []recorder.Sample) []recorder.Sample {
	if ss == nil {
		return nil
	}

	return append(make([]recorder.Sample, 0, len(ss)), ss...)
}

func (impl *mfStorageImpl) Load(key string) (ss []recorder.Sample, err error) {
	impl.docs.Read(func(m map[string]*archive.Document) {
		doc, ok := m[key]
		if !ok {
			err = commerr.ErrNotFound

			return
		}

		ss = copySamples(doc.Samples)
	})

	return
}

func (impl *mfStorageImpl) Save(key string, ss []recorder.Sample) error {
	if key == "" {
		return archive.ErrBadKey
	}

	return impl.docs.Change(func(oldM map[string]*archive.Document) (newM map[string]*archive.Document, err error) {
		newM = oldM
		if len(newM) == 0 {
			newM = make(map[string]*archive.Document)
		}

		newM[key] = archive.NewDocument(copySamples(ss))

		return
	})
}

func (impl *mfStorageImpl) Remove(key string) error {
	return impl.docs.Change(func(oldM map[string]*archive.Document) (newM map[string]*archive.Document, err error) {
		newM = oldM

		delete(newM, key)

		return
	})
}

func (impl *mfStorageImpl) Keys() (keys []string, err error) {
	impl.docs.Read(func(m map[string]*archive.Document) {
		for key := range m {
			keys = append(keys, key)
		}
	})

	return
}
