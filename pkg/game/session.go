package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Skyxo/killer/pkg/graph"
	"github.com/Skyxo/killer/pkg/player"
)

type DepartureKind string

const (
	Kill    DepartureKind = "kill"
	Forfeit DepartureKind = "forfeit"
)

func (k DepartureKind) Status() player.Status {
	if k == Kill {
		return player.Dead
	}
	return player.GaveUp
}

// Departure records one player leaving the alive pool, along with every player record it changed
type Departure struct {
	Kind    DepartureKind `json:"kind"`
	Subject string        `json:"subject"`
	// Hunter is the player who was hunting the subject; credited with the kill when Kind is Kill
	Hunter string       `json:"hunter"`
	Order  int          `json:"order"`
	Repair graph.Repair `json:"repair"`

	Changed []*player.Player `json:"-"`

	GameOver bool      `json:"gameOver"`
	Winner   string    `json:"winner,omitempty"`
	At       time.Time `json:"at"`
}

// Store persists a departure atomically. Nothing is published if it fails.
type Store interface {
	SaveDeparture(ctx context.Context, d *Departure) error
}

// Loader reloads every player from the authoritative store
type Loader interface {
	LoadPlayers(ctx context.Context) ([]*player.Player, error)
}

// Lease is a held departure lock. Refresh fails once the lock expired or was taken by someone else.
type Lease interface {
	Refresh(ctx context.Context) error
	Release()
}

// Locker serializes departures across processes sharing the same store
type Locker interface {
	LockDepartures(ctx context.Context) (Lease, error)
}

// Observer is notified after a departure has been published, outside of any lock
type Observer func(d *Departure, snap *Snapshot)

type Option func(s *Session)

func WithStore(store Store) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithLocker makes every departure take the distributed lock first, then reload the players through loader
// (when not nil) so the repair runs against what other processes already wrote.
func WithLocker(locker Locker, loader Loader) Option {
	return func(s *Session) {
		s.locker = locker
		s.loader = loader
	}
}

func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observers = append(s.observers, o)
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session is the single authority over the game state. Departures are serialized; every departure works on a
// clone of the graph, which replaces the published one only once the store has accepted it.
type Session struct {
	mu         sync.RWMutex
	current    *graph.Graph
	nextOrder  int
	departures int

	store     Store
	locker    Locker
	loader    Loader
	observers []Observer
	now       func() time.Time
}

func NewSession(g *graph.Graph, opts ...Option) *Session {
	s := &Session{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.install(g)
	return s
}

func (s *Session) install(g *graph.Graph) {
	s.current = g
	s.nextOrder = 1
	s.departures = 0
	for _, p := range g.Registry().All() {
		if p.IsAdmin || !p.HasDeparted() {
			continue
		}
		s.departures++
		if p.EliminationOrder >= s.nextOrder {
			s.nextOrder = p.EliminationOrder + 1
		}
	}
}

// Reload replaces the in-memory state with the players held by the loader. A loaded state with fewer
// departures than the published one was read before a later commit and is dropped.
func (s *Session) Reload(ctx context.Context) error {
	if s.loader == nil {
		return nil
	}
	players, err := s.loader.LoadPlayers(ctx)
	if err != nil {
		return fmt.Errorf("reloading players: %w", err)
	}
	reg, err := player.NewRegistry(players...)
	if err != nil {
		return err
	}
	g, err := graph.New(reg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if loaded := countDepartures(g); loaded < s.departures {
		log.Printf("[Game] ignoring stale reload: %d departures loaded, %d already published\n", loaded, s.departures)
		return nil
	}
	s.install(g)
	return nil
}

func countDepartures(g *graph.Graph) int {
	n := 0
	for _, p := range g.Registry().All() {
		if !p.IsAdmin && p.HasDeparted() {
			n++
		}
	}
	return n
}

func (s *Session) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newSnapshot(s.current, s.departures, s.now())
}

// ConfirmKill is called by the victim: the subject dies and their hunter is credited with the kill
func (s *Session) ConfirmKill(ctx context.Context, subjectID string) (*Departure, error) {
	return s.depart(ctx, subjectID, Kill)
}

// Forfeit takes the subject out of the game without crediting anyone
func (s *Session) Forfeit(ctx context.Context, subjectID string) (*Departure, error) {
	return s.depart(ctx, subjectID, Forfeit)
}

func (s *Session) depart(ctx context.Context, subjectID string, kind DepartureKind) (*Departure, error) {
	var lease Lease
	if s.locker != nil {
		var err error
		lease, err = s.locker.LockDepartures(ctx)
		if err != nil {
			return nil, err
		}
		defer lease.Release()
		if err := s.Reload(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	d, snap, err := s.departLocked(ctx, subjectID, kind, lease)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if d.GameOver {
		log.Printf("[Game] %s %s (order %d); game over, winner: %q\n", d.Subject, kind.Status(), d.Order, d.Winner)
	} else {
		log.Printf("[Game] %s %s (order %d); %s now hunts %s\n", d.Subject, kind.Status(), d.Order, d.Hunter, d.Repair.NewTarget)
	}
	for _, o := range s.observers {
		o(d, snap)
	}
	return d, nil
}

func (s *Session) departLocked(ctx context.Context, subjectID string, kind DepartureKind, lease Lease) (*Departure, *Snapshot, error) {
	subject, err := s.current.Registry().Get(subjectID)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case subject.IsAdmin:
		return nil, nil, ErrAdminCannotPlay
	case subject.Status.IsTerminal():
		return nil, nil, ErrAlreadyTerminal
	}
	if _, over := s.current.Winner(); over {
		return nil, nil, ErrGameOver
	}

	work := s.current.Clone()
	reg := work.Registry()
	id := subject.ID()

	repair, err := work.RemoveFromCycle(id)
	if err != nil {
		log.Printf("[Game] refusing departure of %s: %v\n", id, err)
		return nil, nil, err
	}

	order := s.nextOrder
	err = reg.UpsertStatus(id, kind.Status(), func(p *player.Player) {
		p.EliminationOrder = order
		hunter := repair.Hunter
		p.HuntedBy = &hunter
		if kind == Kill {
			killer := repair.Hunter
			p.KilledBy = &killer
		}
	})
	if err != nil {
		return nil, nil, err
	}
	if repair.Winner != "" {
		// the leaver was the winner's last hunter
		winner, err := reg.Get(repair.Winner)
		if err != nil {
			return nil, nil, err
		}
		leaver := id
		winner.HuntedBy = &leaver
	}
	if kind == Kill {
		hunter, err := reg.Get(repair.Hunter)
		if err != nil {
			return nil, nil, err
		}
		hunter.KillCount++
	}
	if err := work.Validate(); err != nil {
		log.Printf("[Game] departure of %s would corrupt the graph: %v\n", id, err)
		return nil, nil, err
	}

	winner, over := work.Winner()
	d := &Departure{
		Kind:     kind,
		Subject:  id,
		Hunter:   repair.Hunter,
		Order:    order,
		Repair:   repair,
		GameOver: over,
		Winner:   winner,
		At:       s.now(),
	}
	for _, tid := range repair.Touched() {
		p, err := reg.Get(tid)
		if err != nil {
			return nil, nil, err
		}
		d.Changed = append(d.Changed, p.Clone())
	}

	if lease != nil {
		if err := lease.Refresh(ctx); err != nil {
			log.Printf("[Game] departure lock lost before saving %s: %v\n", id, err)
			return nil, nil, err
		}
	}
	if s.store != nil {
		if err := s.store.SaveDeparture(ctx, d); err != nil {
			return nil, nil, fmt.Errorf("saving departure of %s: %w", id, err)
		}
	}

	s.current = work
	s.nextOrder++
	s.departures++
	return d, newSnapshot(work, s.departures, d.At), nil
}
