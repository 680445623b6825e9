package archive

import "github.com/sgostarter/librecorder/recorder"

// Storage keeps recorder samples by key. Load returns commerr.ErrNotFound for
// an unknown key.
type Storage interface {
	Load(key string) (ss []recorder.Sample, err error)
	Save(key string, ss []recorder.Sample) error
	Remove(key string) error
	Keys() ([]string, error)
}
