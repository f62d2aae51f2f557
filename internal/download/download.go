// Package download runs a chapter download job end to end: it resumes
// from the archive, drives the site adapter through a browser session
// according to the site's session policy, and persists each chapter.
package download

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"novelgrab/internal/archive"
	"novelgrab/internal/browser"
	"novelgrab/internal/catalog"
	"novelgrab/internal/sites"
	"novelgrab/internal/ui"
)

const (
	// MaxChaptersPerRun caps one job to keep sessions short-lived.
	MaxChaptersPerRun = 50

	maxConsecutiveFailures = 3
)

// Event reports per-chapter progress to the observer.
type Event struct {
	Operation string
	Current   int
	Requested int
	LastTitle string
	Success   bool
	Remaining time.Duration
}

type Observer func(Event)

type Job struct {
	Entry catalog.Entry
	Count int
}

type Summary struct {
	Downloaded int
	Requested  int
	// Exhausted is set when the site ran out of chapters before the
	// requested count was reached.
	Exhausted bool
}

// sessions is the slice of browser.Manager the orchestrator needs.
type sessions interface {
	Acquire() (browser.Page, error)
	Recycle() (browser.Page, error)
	Release()
	Close()
}

type Orchestrator struct {
	Sessions sessions
	Store    *archive.Store
	Log      *ui.Logger
	Observe  Observer

	MinDelay time.Duration
	MaxDelay time.Duration

	sleep   func(ctx context.Context, d time.Duration) error
	delay   func() time.Duration
	now     func() time.Time
	forSite func(site catalog.Site) (sites.Adapter, error)
}

func NewOrchestrator(manager *browser.Manager, store *archive.Store, log *ui.Logger) *Orchestrator {
	o := &Orchestrator{
		Sessions: manager,
		Store:    store,
		Log:      log,
		MinDelay: 10 * time.Second,
		MaxDelay: 20 * time.Second,
		sleep:    sleepContext,
		now:      time.Now,
		forSite:  sites.ForSite,
	}
	o.delay = o.randomDelay
	return o
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (o *Orchestrator) randomDelay() time.Duration {
	if o.MaxDelay <= o.MinDelay {
		return o.MinDelay
	}
	return o.MinDelay + time.Duration(rand.Int63n(int64(o.MaxDelay-o.MinDelay)))
}

// Run downloads up to job.Count chapters, continuing from the highest
// unbroken chapter already on disk. The browser session is always torn
// down before returning.
func (o *Orchestrator) Run(ctx context.Context, job Job) (Summary, error) {
	summary := Summary{Requested: job.Count}
	if job.Count < 1 || job.Count > MaxChaptersPerRun {
		return summary, fmt.Errorf("chapter count %d out of range 1-%d", job.Count, MaxChaptersPerRun)
	}
	if o.Log == nil {
		o.Log = ui.NewLogger(false)
	}

	adapter, err := o.forSite(job.Entry.Site)
	if err != nil {
		return summary, err
	}
	start, err := o.Store.Latest(job.Entry.Slug)
	if err != nil {
		return summary, fmt.Errorf("scan archive: %w", err)
	}
	start++
	o.Log.Infof("%s: resuming at chapter %d (%s session)", job.Entry.Title, start, adapter.Policy())

	defer o.Sessions.Close()

	switch adapter.Policy() {
	case sites.PolicyFresh:
		err = o.runFresh(ctx, adapter, job, start, &summary)
	default:
		err = o.runPersistent(ctx, adapter, job, start, &summary)
	}
	return summary, err
}

func (o *Orchestrator) runPersistent(ctx context.Context, adapter sites.Adapter, job Job, start int, summary *Summary) error {
	page, err := o.Sessions.Acquire()
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	if err := adapter.Open(ctx, page, job.Entry.URL); err != nil {
		return fmt.Errorf("open %s: %w", job.Entry.Title, err)
	}

	est := newEstimator(o.now)
	for i := 0; i < job.Count; i++ {
		n := start + i
		ch, err := o.fetchPersistent(ctx, adapter, &page, job.Entry.URL, n)
		if errors.Is(err, sites.ErrNotFound) {
			o.Log.Infof("%s: no chapter %d yet, all caught up", job.Entry.Title, n)
			summary.Exhausted = true
			o.observe(job, i, "", true, 0)
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			o.Log.Warnf("chapter %d skipped: %v", n, err)
			o.observe(job, i+1, "", false, est.remaining(job.Count-i-1))
			continue
		}
		if err := o.save(job.Entry.Slug, ch); err != nil {
			return err
		}
		summary.Downloaded++
		est.record()
		o.observe(job, i+1, ch.Title, true, est.remaining(job.Count-i-1))
	}
	return nil
}

// fetchPersistent retries a transient failure once on the same session.
// A structural failure means the session state is no longer trustworthy,
// so the session is recycled and the series reopened before one retry.
func (o *Orchestrator) fetchPersistent(ctx context.Context, adapter sites.Adapter, page *browser.Page, entryURL string, n int) (sites.Chapter, error) {
	ch, err := adapter.ChapterAt(ctx, *page, n)
	if err == nil || errors.Is(err, sites.ErrNotFound) {
		return ch, err
	}

	var structural *sites.StructuralError
	if errors.As(err, &structural) {
		o.Log.Warnf("chapter %d: %v, recycling session", n, err)
		fresh, rerr := o.Sessions.Recycle()
		if rerr != nil {
			return sites.Chapter{}, fmt.Errorf("recycle session: %w", rerr)
		}
		*page = fresh
		if rerr := adapter.Open(ctx, fresh, entryURL); rerr != nil {
			return sites.Chapter{}, rerr
		}
		return adapter.ChapterAt(ctx, fresh, n)
	}

	o.Log.Debugf("chapter %d: retrying after %v", n, err)
	return adapter.ChapterAt(ctx, *page, n)
}

func (o *Orchestrator) runFresh(ctx context.Context, adapter sites.Adapter, job Job, start int, summary *Summary) error {
	est := newEstimator(o.now)
	failures := 0
	for i := 0; i < job.Count; i++ {
		n := start + i
		if i > 0 {
			d := o.delay()
			o.Log.Debugf("waiting %s before chapter %d", d.Round(time.Second), n)
			if err := o.sleep(ctx, d); err != nil {
				return err
			}
		}

		ch, err := o.fetchFresh(ctx, adapter, job.Entry.URL, n)
		if errors.Is(err, sites.ErrNotFound) {
			o.Log.Infof("%s: no chapter %d yet, all caught up", job.Entry.Title, n)
			summary.Exhausted = true
			o.observe(job, i, "", true, 0)
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failures++
			o.Log.Warnf("chapter %d skipped: %v", n, err)
			o.observe(job, i+1, "", false, est.remaining(job.Count-i-1))
			if failures >= maxConsecutiveFailures {
				return fmt.Errorf("stopping after %d consecutive failures", failures)
			}
			continue
		}
		failures = 0
		if err := o.save(job.Entry.Slug, ch); err != nil {
			return err
		}
		summary.Downloaded++
		est.record()
		o.observe(job, i+1, ch.Title, true, est.remaining(job.Count-i-1))
	}
	return nil
}

// fetchFresh uses one brand-new session per attempt. A transient failure
// gets a single retry on another fresh session.
func (o *Orchestrator) fetchFresh(ctx context.Context, adapter sites.Adapter, entryURL string, n int) (sites.Chapter, error) {
	ch, err := o.fetchFreshOnce(ctx, adapter, entryURL, n)
	var transient *sites.TransientError
	if errors.As(err, &transient) {
		o.Log.Debugf("chapter %d: retrying after %v", n, err)
		return o.fetchFreshOnce(ctx, adapter, entryURL, n)
	}
	return ch, err
}

func (o *Orchestrator) fetchFreshOnce(ctx context.Context, adapter sites.Adapter, entryURL string, n int) (sites.Chapter, error) {
	page, err := o.Sessions.Recycle()
	if err != nil {
		return sites.Chapter{}, fmt.Errorf("open session: %w", err)
	}
	if err := adapter.Open(ctx, page, entryURL); err != nil {
		return sites.Chapter{}, err
	}
	return adapter.ChapterAt(ctx, page, n)
}

func (o *Orchestrator) save(slug string, ch sites.Chapter) error {
	path, err := o.Store.Save(slug, ch)
	if err != nil {
		return fmt.Errorf("save chapter %d: %w", ch.Number, err)
	}
	o.Log.Debugf("saved %s", path)
	return nil
}

func (o *Orchestrator) observe(job Job, current int, title string, success bool, remaining time.Duration) {
	if o.Observe == nil {
		return
	}
	o.Observe(Event{
		Operation: "Downloading " + job.Entry.Title,
		Current:   current,
		Requested: job.Count,
		LastTitle: title,
		Success:   success,
		Remaining: remaining,
	})
}

// estimator keeps a running average of per-chapter wall time so the
// progress line can show a time-left guess.
type estimator struct {
	now   func() time.Time
	last  time.Time
	total time.Duration
	n     int
}

func newEstimator(now func() time.Time) *estimator {
	return &estimator{now: now, last: now()}
}

func (e *estimator) record() {
	t := e.now()
	e.total += t.Sub(e.last)
	e.last = t
	e.n++
}

func (e *estimator) remaining(left int) time.Duration {
	if e.n == 0 || left <= 0 {
		return 0
	}
	return time.Duration(left) * (e.total / time.Duration(e.n))
}
