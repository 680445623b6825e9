package bank

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/godruoyi/go-snowflake"
	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/librecorder/archive"
	"github.com/sgostarter/librecorder/recorder"
	"golang.org/x/sync/errgroup"
)

type entry struct {
	r     *recorder.Recorder
	dirty bool
}

// Bank holds named recorders backed by an archive.Storage. Recorders are
// loaded on first use, saved back when they have been idle for
// Config.IdleExpiration, and on Flush.
//
// A Recorder is not safe for concurrent use, not even for evaluation, so the
// bank only hands them out inside Do and View while holding its lock.
type Bank struct {
	cfg       Config
	logger    l.Wrapper
	storage   archive.Storage
	rOptions  []recorder.Option
	idleCache *cache.Cache

	lock sync.Mutex
	live map[string]*entry
}

func NewBank(cfg Config, storage archive.Storage, logger l.Wrapper, options ...recorder.Option) *Bank {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "Bank"))

	if storage == nil {
		logger.Fatal("no storage")
	}

	cfg.normalize()

	b := &Bank{
		cfg:       cfg,
		logger:    logger,
		storage:   storage,
		rOptions:  append([]recorder.Option{recorder.WithLogger(logger)}, options...),
		idleCache: cache.New(cfg.IdleExpiration, cfg.CleanupInterval),
		live:      make(map[string]*entry),
	}

	b.idleCache.OnEvicted(b.onEvicted)

	return b
}

// onEvicted runs without the cache lock held, so it may take the bank lock.
// Nothing may delete from idleCache while holding b.lock.
func (b *Bank) onEvicted(name string, v interface{}) {
	e, _ := v.(*entry)

	b.lock.Lock()
	defer b.lock.Unlock()

	if b.live[name] != e {
		return
	}

	if _, ok := b.idleCache.Get(name); ok {
		return
	}

	if e.dirty {
		if err := b.storage.Save(name, e.r.Samples()); err != nil {
			b.logger.WithFields(l.StringField("name", name), l.ErrorField(err)).Error("save on eviction failed")

			b.idleCache.SetDefault(name, e)

			return
		}
	}

	delete(b.live, name)

	b.logger.WithFields(l.StringField("name", name)).Debug("evicted")
}

func (b *Bank) touch(name string, e *entry) {
	b.idleCache.SetDefault(name, e)
}

func (b *Bank) getLocked(name string) (e *entry, err error) {
	if e = b.live[name]; e != nil {
		return
	}

	ss, err := b.storage.Load(name)
	if err != nil {
		return
	}

	r := recorder.NewRecorder(append([]recorder.Option{recorder.WithCapacity(len(ss))}, b.rOptions...)...)
	r.Replace(ss)

	e = &entry{r: r}
	b.live[name] = e

	return
}

// Create adds an empty recorder. An empty name gets a generated one, which is
// returned.
func (b *Bank) Create(name string) (string, error) {
	if name == "" {
		name = strconv.FormatUint(snowflake.ID(), 10)
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	e, err := b.getLocked(name)
	if err == nil {
		b.touch(name, e)

		return name, commerr.ErrAlreadyExists
	}

	if !errors.Is(err, commerr.ErrNotFound) {
		return name, err
	}

	e = &entry{r: recorder.NewRecorder(b.rOptions...), dirty: true}
	b.live[name] = e
	b.touch(name, e)

	return name, nil
}

// Do runs fn on the named recorder under the bank lock and marks it for
// saving. It returns commerr.ErrNotFound for an unknown name.
func (b *Bank) Do(name string, fn func(r *recorder.Recorder) error) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	e, err := b.getLocked(name)
	if err != nil {
		return err
	}

	b.touch(name, e)
	e.dirty = true

	return fn(e.r)
}

// View is Do without marking the recorder for saving. Evaluation still moves
// the recorder's cursor.
func (b *Bank) View(name string, fn func(r *recorder.Recorder) error) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	e, err := b.getLocked(name)
	if err != nil {
		return err
	}

	b.touch(name, e)

	return fn(e.r)
}

// Drop forgets the named recorder in memory and in storage.
func (b *Bank) Drop(name string) error {
	b.lock.Lock()
	delete(b.live, name)
	err := b.storage.Remove(name)
	b.lock.Unlock()

	b.idleCache.Delete(name)

	return err
}

// Names lists every recorder, loaded or only stored, sorted.
func (b *Bank) Names() (names []string, err error) {
	stored, err := b.storage.Keys()
	if err != nil {
		return
	}

	set := make(map[string]struct{}, len(stored))
	for _, name := range stored {
		set[name] = struct{}{}
	}

	b.lock.Lock()
	for name := range b.live {
		set[name] = struct{}{}
	}
	b.lock.Unlock()

	names = make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}

	sort.Strings(names)

	return
}

// Loaded reports how many recorders are held in memory.
func (b *Bank) Loaded() int {
	b.lock.Lock()
	defer b.lock.Unlock()

	return len(b.live)
}

// Save stores a copy of ss under name without touching the loaded recorders.
// Snapshots use it.
func (b *Bank) Save(name string, ss []recorder.Sample) error {
	return b.storage.Save(name, ss)
}

// Flush saves every modified recorder, Config.FlushConcurrency at a time. The
// samples are copied under the lock and written outside it.
func (b *Bank) Flush(ctx context.Context) error {
	type job struct {
		name string
		e    *entry
		ss   []recorder.Sample
	}

	b.lock.Lock()

	jobs := make([]job, 0, len(b.live))

	for name, e := range b.live {
		if !e.dirty {
			continue
		}

		e.dirty = false
		jobs = append(jobs, job{name: name, e: e, ss: e.r.Samples()})
	}

	b.lock.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.FlushConcurrency)

	for _, j := range jobs {
		j := j

		g.Go(func() error {
			err := ctx.Err()
			if err == nil {
				err = b.storage.Save(j.name, j.ss)
			}

			if err != nil {
				b.lock.Lock()
				j.e.dirty = true
				b.lock.Unlock()

				b.logger.WithFields(l.StringField("name", j.name), l.ErrorField(err)).Error("flush failed")
			}

			return err
		})
	}

	return g.Wait()
}

// Close flushes and drops everything from memory. Callers stop using the bank
// before closing it.
func (b *Bank) Close(ctx context.Context) error {
	if err := b.Flush(ctx); err != nil {
		return err
	}

	b.lock.Lock()
	b.live = make(map[string]*entry)
	b.lock.Unlock()

	b.idleCache.Flush()

	return nil
}
