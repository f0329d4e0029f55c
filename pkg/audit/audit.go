package audit

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Skyxo/killer/pkg/game"
	"github.com/go-co-op/gocron/v2"
)

const DefaultInterval = 5 * time.Minute

type Source interface {
	Snapshot() *game.Snapshot
	Reload(ctx context.Context) error
}

type Report struct {
	At         time.Time `json:"at"`
	Departures int       `json:"departures"`
	GameOver   bool      `json:"gameOver"`
	Violations []string  `json:"violations"`
	// ReloadError is set when the state could not be refreshed from the database before auditing
	ReloadError string `json:"reloadError,omitempty"`
}

func (r *Report) OK() bool {
	return len(r.Violations) == 0 && r.ReloadError == ""
}

// Auditor periodically checks the assignment graph and the scoreboard bookkeeping of the live game
type Auditor struct {
	source Source
	reload bool
	now    func() time.Time

	lock sync.RWMutex
	last *Report

	sched gocron.Scheduler
}

func NewAuditor(source Source, reload bool) *Auditor {
	return &Auditor{
		source: source,
		reload: reload,
		now:    time.Now,
	}
}

func (a *Auditor) Run(ctx context.Context) *Report {
	report := &Report{At: a.now(), Violations: []string{}}
	if a.reload {
		if err := a.source.Reload(ctx); err != nil {
			log.Printf("[Audit] reload failed, auditing the state in memory: %v\n", err)
			report.ReloadError = err.Error()
		}
	}
	snap := a.source.Snapshot()
	report.Departures = snap.Departures
	report.GameOver = snap.GameOver
	for _, v := range game.Audit(snap) {
		log.Printf("[Audit] %v\n", v)
		report.Violations = append(report.Violations, v.Error())
	}
	if len(report.Violations) == 0 {
		log.Printf("[Audit] state consistent after %d departures\n", report.Departures)
	}

	a.lock.Lock()
	a.last = report
	a.lock.Unlock()
	return report
}

// Last returns the most recent report, or nil before the first run
func (a *Auditor) Last() *Report {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.last
}

func (a *Auditor) Start(interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			a.Run(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return err
	}
	sched.Start()
	a.sched = sched
	log.Printf("[Audit] scheduled every %s\n", interval)
	return nil
}

func (a *Auditor) Stop() error {
	if a.sched == nil {
		return nil
	}
	return a.sched.Shutdown()
}
