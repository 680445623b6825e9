// Package storagetest checks an archive.Storage implementation against the
// behaviour every backend shares.
package storagetest

import (
	"sort"
	"testing"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/librecorder/archive"
	"github.com/sgostarter/librecorder/recorder"
	"github.com/stretchr/testify/assert"
)

// Run expects s to be empty.
func Run(t *testing.T, s archive.Storage) {
	keys, err := s.Keys()
	assert.Nil(t, err)
	assert.Empty(t, keys)

	_, err = s.Load("missing")
	assert.Equal(t, commerr.ErrNotFound, err)

	ss := []recorder.Sample{{X: 0, Y: 1, W: 0.5}, {X: 0.1, Y: -2.25}, {X: 3, Y: 1e-9, W: 2}}

	assert.Nil(t, s.Save("a", ss))
	assert.Nil(t, s.Save("b@20260101", ss[:1]))

	loaded, err := s.Load("a")
	assert.Nil(t, err)
	assert.Equal(t, ss, loaded)

	loaded[0].Y = 100

	loaded, err = s.Load("a")
	assert.Nil(t, err)
	assert.Equal(t, ss, loaded)

	assert.Nil(t, s.Save("a", ss[1:]))

	loaded, err = s.Load("a")
	assert.Nil(t, err)
	assert.Equal(t, ss[1:], loaded)

	keys, err = s.Keys()
	assert.Nil(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b@20260101"}, keys)

	assert.Nil(t, s.Remove("a"))
	assert.Nil(t, s.Remove("a"))

	_, err = s.Load("a")
	assert.Equal(t, commerr.ErrNotFound, err)

	keys, err = s.Keys()
	assert.Nil(t, err)
	assert.Equal(t, []string{"b@20260101"}, keys)

	assert.NotNil(t, s.Save("", ss))
}
