package sampler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/routineman"
	"github.com/sgostarter/libeasygo/timespan"
	"github.com/sgostarter/librecorder/bank"
	"github.com/sgostarter/librecorder/recorder"
)

const DefaultInterval = time.Second

var ErrNoName = errors.New("no recorder name")

type Config struct {
	Name     string        `yaml:"Name" json:"name"`
	Interval time.Duration `yaml:"Interval" json:"interval"`
	// CleanWindow drops recorded samples within this many seconds after a new
	// one, see recorder.AddPointClean. 0 keeps everything.
	CleanWindow float64 `yaml:"CleanWindow" json:"clean_window"`
	// SnapshotSpan, when set, saves a copy of the recorder as <Name>@<unix
	// start of period> every time a period of this length ends.
	SnapshotSpan time.Duration `yaml:"SnapshotSpan" json:"snapshot_span"`
	// Origin is x = 0. Zero means the time NewSampler was called.
	Origin time.Time `yaml:"Origin" json:"origin"`
}

// Sampler polls a Source and records its values into a bank recorder, x being
// seconds since Config.Origin.
type Sampler struct {
	cfg       Config
	logger    l.Wrapper
	bank      *bank.Bank
	source    Source
	metrics   *Metrics
	sessionID string

	snapshotSpan *timespan.TimeSpan
	lastLabel    string

	routineMan routineman.RoutineMan
}

// NewSampler creates the named recorder in b unless it exists already. metrics
// may be nil.
func NewSampler(cfg Config, b *bank.Bank, source Source, metrics *Metrics, logger l.Wrapper) (*Sampler, error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	if b == nil || source == nil {
		logger.Fatal("no dependency objects")
	}

	if cfg.Name == "" {
		return nil, ErrNoName
	}

	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}

	if cfg.Origin.IsZero() {
		cfg.Origin = time.Now()
	}

	if _, err := b.Create(cfg.Name); err != nil && !errors.Is(err, commerr.ErrAlreadyExists) {
		return nil, err
	}

	sessionID := uuid.New().String()

	logger = logger.WithFields(l.StringField(l.ClsKey, "Sampler"), l.StringField("name", cfg.Name),
		l.StringField("session", sessionID))

	s := &Sampler{
		cfg:        cfg,
		logger:     logger,
		bank:       b,
		source:     source,
		metrics:    metrics,
		sessionID:  sessionID,
		routineMan: routineman.NewRoutineMan(context.Background(), logger),
	}

	if cfg.SnapshotSpan > 0 {
		s.snapshotSpan = timespan.NewTimeSpan(cfg.SnapshotSpan)
	}

	return s, nil
}

func (s *Sampler) SessionID() string {
	return s.sessionID
}

func (s *Sampler) snapshotKey(label string) string {
	t, _ := s.snapshotSpan.Label2Time(label)

	return fmt.Sprintf("%s@%d", s.cfg.Name, t.Unix())
}

func (s *Sampler) rotate(now time.Time) (err error) {
	if s.snapshotSpan == nil {
		return
	}

	label := s.snapshotSpan.GetLabel(now)

	if s.lastLabel == "" || s.lastLabel == label {
		s.lastLabel = label

		return
	}

	var ss []recorder.Sample

	err = s.bank.View(s.cfg.Name, func(r *recorder.Recorder) error {
		ss = r.Samples()

		return nil
	})
	if err != nil {
		return
	}

	key := s.snapshotKey(s.lastLabel)

	if err = s.bank.Save(key, ss); err != nil {
		s.logger.WithFields(l.StringField("key", key), l.ErrorField(err)).Error("save snapshot failed")

		return
	}

	s.lastLabel = label
	s.metrics.snapshotSaved(s.cfg.Name)

	s.logger.WithFields(l.StringField("key", key), l.IntField("samples", len(ss))).Debug("snapshot saved")

	return
}

// Step samples the source once at now. A failed snapshot does not stop the
// sample from being recorded; its error is returned afterwards and the
// snapshot is retried on the next step. Both errors are returned joined when
// the sample fails too. Steps must not run concurrently; Start
// runs them from a single routine.
func (s *Sampler) Step(now time.Time) error {
	rotateErr := s.rotate(now)

	y, err := s.source(now)
	if err != nil {
		s.metrics.sourceError(s.cfg.Name)
		s.logger.WithFields(l.ErrorField(err)).Error("read source failed")

		return errors.Join(err, rotateErr)
	}

	x := now.Sub(s.cfg.Origin).Seconds()

	var count int

	err = s.bank.Do(s.cfg.Name, func(r *recorder.Recorder) error {
		r.AddPointClean(x, y, s.cfg.CleanWindow)
		count = r.Len()

		return nil
	})
	if err != nil {
		return errors.Join(err, rotateErr)
	}

	s.metrics.recorded(s.cfg.Name, count)

	return rotateErr
}

func (s *Sampler) Start() {
	s.routineMan.StartRoutine(s.sampleRoutine, "sampleRoutine")
}

func (s *Sampler) TriggerStop() {
	s.routineMan.TriggerStop()
}

func (s *Sampler) Wait() {
	s.routineMan.Wait()
}

func (s *Sampler) sampleRoutine(ctx context.Context, _ func() bool) {
	s.logger.Debug("sampling started")

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	loop := true

	for loop {
		select {
		case <-ctx.Done():
			loop = false

			continue
		case now := <-ticker.C:
			_ = s.Step(now)
		}
	}

	s.logger.Debug("sampling stopped")
}
