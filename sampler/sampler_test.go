// nolint
package sampler

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/pathutils"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/librecorder/archive"
	"github.com/sgostarter/librecorder/archive/impls/mfstorage"
	"github.com/sgostarter/librecorder/bank"
	"github.com/sgostarter/librecorder/recorder"
	"github.com/stretchr/testify/assert"
)

const (
	utRoot = "ut-data"
)

var utOrigin = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	code := m.Run()

	_ = os.RemoveAll(utRoot)

	os.Exit(code)
}

func utBankWithStorage(t *testing.T) (*bank.Bank, archive.Storage) {
	root := utRoot + "/" + t.Name()
	_ = pathutils.MustDirExists(root)

	storage := mfstorage.NewMFStorage("", rawfs.NewFSStorage(root))

	return bank.NewBank(bank.Config{}, storage, l.NewConsoleLoggerWrapper()), storage
}

func utBank(t *testing.T) *bank.Bank {
	b, _ := utBankWithStorage(t)

	return b
}

func utLinearSource(at time.Time) (float64, error) {
	return 2 * at.Sub(utOrigin).Seconds(), nil
}

func utMetricValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	mfs, err := registry.Gather()
	assert.Nil(t, err)

	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}

		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}

			if g := m.GetGauge(); g != nil {
				return g.GetValue()
			}
		}
	}

	return 0
}

func utSamples(t *testing.T, b *bank.Bank, name string) (ss []recorder.Sample) {
	assert.Nil(t, b.View(name, func(r *recorder.Recorder) error {
		ss = r.Samples()

		return nil
	}))

	return
}

func TestStep(t *testing.T) {
	b := utBank(t)
	registry := prometheus.NewRegistry()

	s, err := NewSampler(Config{Name: "s", Origin: utOrigin}, b, utLinearSource, NewMetrics(registry), nil)
	assert.Nil(t, err)
	assert.NotEmpty(t, s.SessionID())

	for i := 0; i < 10; i++ {
		assert.Nil(t, s.Step(utOrigin.Add(time.Duration(i)*time.Second)))
	}

	assert.Nil(t, b.View("s", func(r *recorder.Recorder) error {
		assert.Equal(t, 10, r.Len())
		assert.InDelta(t, 9.0, r.Y(4.5), 1e-12)
		assert.InDelta(t, 2.0, r.YDx(4.5), 1e-12)

		return nil
	}))

	assert.EqualValues(t, 10, utMetricValue(t, registry, "recorder_samples_recorded_total"))
	assert.EqualValues(t, 10, utMetricValue(t, registry, "recorder_samples"))
	assert.EqualValues(t, 0, utMetricValue(t, registry, "recorder_snapshots_saved_total"))
}

func TestSourceError(t *testing.T) {
	b := utBank(t)
	registry := prometheus.NewRegistry()

	errSource := errors.New("source down")
	calls := 0

	s, err := NewSampler(Config{Name: "s", Origin: utOrigin}, b, func(at time.Time) (float64, error) {
		calls++
		if calls%2 == 0 {
			return 0, errSource
		}

		return 1, nil
	}, NewMetrics(registry), nil)
	assert.Nil(t, err)

	for i := 0; i < 6; i++ {
		err = s.Step(utOrigin.Add(time.Duration(i) * time.Second))
		if i%2 == 1 {
			assert.True(t, errors.Is(err, errSource))
		} else {
			assert.Nil(t, err)
		}
	}

	assert.Len(t, utSamples(t, b, "s"), 3)
	assert.EqualValues(t, 3, utMetricValue(t, registry, "recorder_source_errors_total"))
}

func TestCleanWindow(t *testing.T) {
	b := utBank(t)

	s, err := NewSampler(Config{Name: "s", Origin: utOrigin, CleanWindow: 2.5}, b, utLinearSource, nil, nil)
	assert.Nil(t, err)

	for i := 0; i < 10; i++ {
		assert.Nil(t, s.Step(utOrigin.Add(time.Duration(i)*time.Second)))
	}

	assert.Nil(t, s.Step(utOrigin.Add(3*time.Second)))

	var xs []float64
	for _, smp := range utSamples(t, b, "s") {
		xs = append(xs, smp.X)
	}

	assert.Equal(t, []float64{0, 1, 2, 3, 6, 7, 8, 9}, xs)
}

func TestSnapshot(t *testing.T) {
	b, storage := utBankWithStorage(t)
	registry := prometheus.NewRegistry()

	s, err := NewSampler(Config{Name: "s", Origin: utOrigin, SnapshotSpan: time.Minute}, b, utLinearSource,
		NewMetrics(registry), nil)
	assert.Nil(t, err)

	assert.Nil(t, s.Step(utOrigin))
	assert.Nil(t, s.Step(utOrigin.Add(30*time.Second)))
	assert.Nil(t, s.Step(utOrigin.Add(61*time.Second)))

	names, err := b.Names()
	assert.Nil(t, err)

	var snapshots []string

	for _, name := range names {
		if strings.HasPrefix(name, "s@") {
			snapshots = append(snapshots, name)
		}
	}

	assert.Len(t, snapshots, 1)

	ss, err := storage.Load(snapshots[0])
	assert.Nil(t, err)
	assert.Equal(t, []recorder.Sample{{X: 0, Y: 0}, {X: 30, Y: 60}}, ss)

	assert.Len(t, utSamples(t, b, "s"), 3)
	assert.EqualValues(t, 1, utMetricValue(t, registry, "recorder_snapshots_saved_total"))
}

var errUTSnapshot = errors.New("snapshot storage down")

type utSnapshotFailStorage struct {
	archive.Storage
}

func (s utSnapshotFailStorage) Save(key string, ss []recorder.Sample) error {
	if strings.Contains(key, "@") {
		return errUTSnapshot
	}

	return s.Storage.Save(key, ss)
}

func TestSnapshotAndSourceFailure(t *testing.T) {
	root := utRoot + "/" + t.Name()
	_ = pathutils.MustDirExists(root)

	b := bank.NewBank(bank.Config{}, utSnapshotFailStorage{mfstorage.NewMFStorage("", rawfs.NewFSStorage(root))}, nil)

	errSource := errors.New("source down")
	fail := false

	s, err := NewSampler(Config{Name: "s", Origin: utOrigin, SnapshotSpan: time.Minute}, b,
		func(at time.Time) (float64, error) {
			if fail {
				return 0, errSource
			}

			return 1, nil
		}, nil, nil)
	assert.Nil(t, err)

	assert.Nil(t, s.Step(utOrigin))

	fail = true
	err = s.Step(utOrigin.Add(61 * time.Second))
	assert.True(t, errors.Is(err, errSource))
	assert.True(t, errors.Is(err, errUTSnapshot))

	fail = false
	err = s.Step(utOrigin.Add(62 * time.Second))
	assert.Equal(t, errUTSnapshot, err)
	assert.Len(t, utSamples(t, b, "s"), 2)
}

func TestFunctionSource(t *testing.T) {
	f := recorder.NewRecorder()
	f.AddPoint(0, 0, 0)
	f.AddPoint(10, 100, 0)

	source := FunctionSource(f, utOrigin)

	y, err := source(utOrigin.Add(2500 * time.Millisecond))
	assert.Nil(t, err)
	assert.InDelta(t, 25.0, y, 1e-12)

	y, err = source(utOrigin.Add(-time.Second))
	assert.Nil(t, err)
	assert.EqualValues(t, 0, y)
}

func TestExistingRecorder(t *testing.T) {
	b := utBank(t)

	_, err := b.Create("s")
	assert.Nil(t, err)

	assert.Nil(t, b.Do("s", func(r *recorder.Recorder) error {
		r.AddPoint(-1, 5, 0)

		return nil
	}))

	s, err := NewSampler(Config{Name: "s", Origin: utOrigin}, b, utLinearSource, nil, nil)
	assert.Nil(t, err)
	assert.Nil(t, s.Step(utOrigin))

	assert.Equal(t, []recorder.Sample{{X: -1, Y: 5}, {X: 0, Y: 0}}, utSamples(t, b, "s"))
}

func TestNoName(t *testing.T) {
	_, err := NewSampler(Config{}, utBank(t), utLinearSource, nil, nil)
	assert.Equal(t, ErrNoName, err)
}

func TestStartStop(t *testing.T) {
	b := utBank(t)

	s, err := NewSampler(Config{Name: "s", Interval: 5 * time.Millisecond}, b, func(time.Time) (float64, error) {
		return 1, nil
	}, nil, l.NewConsoleLoggerWrapper())
	assert.Nil(t, err)

	s.Start()

	assert.Eventually(t, func() bool {
		return len(utSamples(t, b, "s")) >= 3
	}, 2*time.Second, 5*time.Millisecond)

	s.TriggerStop()
	s.Wait()

	n := len(utSamples(t, b, "s"))

	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, n, len(utSamples(t, b, "s")))
}
