package notesync

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hupe1980/notesync/codec"
	"github.com/hupe1980/notesync/transport"
)

// saveJob is one PUT and the mutations waiting on it.
type saveJob struct {
	waiters []*Result
}

func (j *saveJob) settle(err error) {
	for _, r := range j.waiters {
		r.settle(err)
	}
}

type saveOutcome struct {
	job     *saveJob
	bytes   int
	elapsed time.Duration
	err     error
}

// trigger attaches r to the save that will persist the current state.
//
//	Idle         + dirty -> start S            -> Saving
//	Saving       + dirty -> queue follow-up F  -> SavingQueued
//	SavingQueued + dirty -> join F             -> SavingQueued
//	any          + clean -> join S, or settle with the last outcome when idle
func (s *Store) trigger(r *Result) {
	if !s.dirty {
		if s.inflight != nil {
			s.inflight.waiters = append(s.inflight.waiters, r)
			return
		}
		r.settle(s.lastSaveErr)
		return
	}

	switch s.State() {
	case Idle:
		s.startSave(&saveJob{waiters: []*Result{r}})
	case Saving:
		s.queued = &saveJob{waiters: []*Result{r}}
		s.setState(SavingQueued)
	case SavingQueued:
		s.queued.waiters = append(s.queued.waiters, r)
		s.opts.metricsCollector.RecordCoalesced()
	}
}

// startSave clears the dirty flag, encodes the whole collection and issues
// the PUT asynchronously. Mutations applied after this point re-dirty the
// store and are picked up by the next save.
func (s *Store) startSave(job *saveJob) {
	s.dirty = false
	s.inflight = job
	s.setState(Saving)

	s.mu.RLock()
	pages := s.notes.Pages()
	s.mu.RUnlock()

	data, encErr := codec.Encode(s.opts.codec, pages)

	go func() {
		out := saveOutcome{job: job, bytes: len(data)}
		start := time.Now()

		if encErr != nil {
			out.err = &SaveError{Err: fmt.Errorf("encode: %w", encErr)}
		} else {
			resp, err := s.transport.Do(s.ctx, &transport.Request{
				Method:      http.MethodPut,
				URL:         s.url,
				Body:        data,
				ContentType: transport.ContentTypeJSON,
				Timeout:     s.opts.saveTimeout,
			})
			if err = s.responseError(resp, err); err != nil {
				out.err = &SaveError{Err: err}
			}
		}

		out.elapsed = time.Since(start)
		s.saveDone <- out
	}()
}

// finishSave settles the completed save and promotes the queued follow-up.
// While closing, the follow-up is left for shutdown to settle.
func (s *Store) finishSave(out saveOutcome) {
	s.record(out)

	s.lastSaveErr = out.err
	s.inflight = nil

	switch {
	case s.queued != nil && s.ctx.Err() == nil:
		next := s.queued
		s.queued = nil
		s.startSave(next)
	case s.queued == nil:
		s.setState(Idle)
	}

	out.job.settle(out.err)
}

func (s *Store) record(out saveOutcome) {
	s.logger.LogSave(s.ctx, out.bytes, out.elapsed, out.err)
	s.opts.metricsCollector.RecordSave(out.elapsed, out.bytes, out.err)
}
