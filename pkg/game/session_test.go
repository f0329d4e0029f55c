package game

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/Skyxo/killer/pkg/graph"
	"github.com/Skyxo/killer/pkg/player"
)

type memStore struct {
	saved []*Departure
	err   error
}

func (m *memStore) SaveDeparture(_ context.Context, d *Departure) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, d)
	return nil
}

// newRingSession builds p0->p1->...->p0 where the action of the edge to pN is "aN"
func newRingSession(t *testing.T, names []string, opts ...Option) *Session {
	t.Helper()
	var players []*player.Player
	for i, n := range names {
		next := (i + 1) % len(names)
		p := player.New(n, "pw", player.Profile{})
		p.Target = names[next]
		p.Action = "a" + string(rune('1'+next))
		players = append(players, p)
	}
	admin := player.New("Orga", "pw", player.Profile{})
	admin.IsAdmin = true
	players = append(players, admin)

	reg, err := player.NewRegistry(players...)
	if err != nil {
		t.Fatal(err)
	}
	g, err := graph.New(reg)
	if err != nil {
		t.Fatal(err)
	}
	return NewSession(g, opts...)
}

func mustGet(t *testing.T, snap *Snapshot, id string) *player.Player {
	t.Helper()
	p, err := snap.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestConfirmKill_Scenario(t *testing.T) {
	store := &memStore{}
	s := newRingSession(t, []string{"A", "B", "C", "D"}, WithStore(store))
	if got := mustGet(t, s.Snapshot(), "b").Action; got != "a3" {
		t.Fatalf("fixture: expected b to carry a3, got %s", got)
	}

	d, err := s.ConfirmKill(context.Background(), "B")
	if err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	a := mustGet(t, snap, "a")
	b := mustGet(t, snap, "b")

	if a.Target != "c" {
		t.Error("Expected A to hunt C, got " + a.Target)
	}
	if a.Action != "a3" {
		t.Error("Expected A to inherit a3, got " + a.Action)
	}
	if b.Status != player.Dead {
		t.Error("Expected B to be dead")
	}
	if b.EliminationOrder != 1 {
		t.Errorf("Expected elimination order 1, got %d", b.EliminationOrder)
	}
	if b.KilledBy == nil || *b.KilledBy != "a" {
		t.Error("Expected B to be killed by A")
	}
	if a.KillCount != 1 {
		t.Error("Expected A to be credited with the kill")
	}
	if len(store.saved) != 1 || store.saved[0] != d {
		t.Error("Expected the departure to be persisted once")
	}
	if len(d.Changed) != 2 {
		t.Errorf("Expected the leaver and the hunter to be persisted, got %d players", len(d.Changed))
	}
}

func TestForfeit_NoKillCredited(t *testing.T) {
	s := newRingSession(t, []string{"A", "B", "C", "D"})
	if _, err := s.Forfeit(context.Background(), "c"); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	c := mustGet(t, snap, "c")
	if c.Status != player.GaveUp || c.KilledBy != nil || c.EliminationOrder != 1 {
		t.Errorf("Unexpected record after forfeit: %+v", c)
	}
	b := mustGet(t, snap, "b")
	if b.KillCount != 0 {
		t.Error("A forfeit must not credit anybody")
	}
	if b.Target != "d" || b.Action != "a4" {
		t.Error("Graph should be repaired exactly like a kill")
	}
}

func TestDepart_RejectsTerminalAndAdmins(t *testing.T) {
	store := &memStore{}
	s := newRingSession(t, []string{"A", "B", "C", "D"}, WithStore(store))
	ctx := context.Background()

	if _, err := s.ConfirmKill(ctx, "b"); err != nil {
		t.Fatal(err)
	}
	before := s.Snapshot()

	if _, err := s.ConfirmKill(ctx, "b"); !errors.Is(err, ErrAlreadyTerminal) {
		t.Errorf("Expected ErrAlreadyTerminal on second kill, got %v", err)
	}
	if _, err := s.Forfeit(ctx, "B"); !errors.Is(err, ErrAlreadyTerminal) {
		t.Errorf("Expected ErrAlreadyTerminal on forfeit after kill, got %v", err)
	}
	if _, err := s.Forfeit(ctx, "orga"); !errors.Is(err, ErrAdminCannotPlay) {
		t.Errorf("Expected ErrAdminCannotPlay, got %v", err)
	}
	if _, err := s.ConfirmKill(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	after := s.Snapshot()
	if after.Graph() != before.Graph() || after.Departures != 1 {
		t.Error("Rejected departures must not change the state")
	}
	if len(store.saved) != 1 {
		t.Error("Rejected departures must not reach the store")
	}
}

func TestDepart_StoreFailureKeepsState(t *testing.T) {
	store := &memStore{err: errors.New("connection reset")}
	var notified int
	s := newRingSession(t, []string{"A", "B", "C"}, WithStore(store), WithObserver(func(*Departure, *Snapshot) {
		notified++
	}))

	_, err := s.ConfirmKill(context.Background(), "b")
	if err == nil {
		t.Fatal("Expected the store error to be returned")
	}
	snap := s.Snapshot()
	if mustGet(t, snap, "b").Status != player.Alive || mustGet(t, snap, "a").Target != "b" {
		t.Error("A failed save must leave the published state untouched")
	}
	if mustGet(t, snap, "a").KillCount != 0 {
		t.Error("Kill count leaked from a failed save")
	}
	if notified != 0 {
		t.Error("Observers must only see committed departures")
	}

	store.err = nil
	d, err := s.ConfirmKill(context.Background(), "b")
	if err != nil {
		t.Fatal(err)
	}
	if d.Order != 1 {
		t.Error("A failed departure must not consume an elimination order")
	}
}

func TestDepart_InconsistentGraphAborts(t *testing.T) {
	a := player.New("a", "pw", player.Profile{})
	b := player.New("b", "pw", player.Profile{})
	c := player.New("c", "pw", player.Profile{})
	a.Target, b.Target, c.Target = "b", "c", "a"
	reg, _ := player.NewRegistry(a, b, c)
	g, err := graph.New(reg)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSession(g)
	// out-of-band edit leaving c without a target
	c.Target = ""

	_, err = s.ConfirmKill(context.Background(), "a")
	var ige *graph.InconsistentGraphError
	if !errors.As(err, &ige) {
		t.Fatalf("Expected an inconsistent graph error, got %v", err)
	}
	if a.Status != player.Alive || a.Target != "b" || c.KillCount != 0 {
		t.Error("Nothing may be applied when the graph is inconsistent")
	}
}

func TestDepart_WinDetection(t *testing.T) {
	s := newRingSession(t, []string{"A", "B", "C"})
	ctx := context.Background()

	if _, err := s.ConfirmKill(ctx, "b"); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if snap.GameOver {
		t.Error("Game should go on with two players")
	}
	if mustGet(t, snap, "a").Target != "c" || mustGet(t, snap, "c").Target != "a" {
		t.Error("Expected a 2-cycle between A and C")
	}

	d, err := s.Forfeit(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if !d.GameOver || d.Winner != "c" {
		t.Errorf("Expected C to win, got %+v", d)
	}
	snap = s.Snapshot()
	if !snap.GameOver || snap.Winner != "c" {
		t.Error("Snapshot should report the game as over")
	}
	if mustGet(t, snap, "c").HasTarget() {
		t.Error("The winner must not hold a target")
	}
	for id, hunter := range map[string]string{"b": "a", "a": "c", "c": "a"} {
		p := mustGet(t, snap, id)
		if p.HuntedBy == nil || *p.HuntedBy != hunter {
			t.Errorf("Expected %s to be remembered as hunted by %s, got %v", id, hunter, p.HuntedBy)
		}
	}

	podium := Podium(snap)
	if len(podium) != 3 {
		t.Fatalf("Expected 3 players on the podium, got %d", len(podium))
	}
	want := []string{"c", "a", "b"}
	for i, entry := range podium {
		if entry.Rank != i+1 || entry.Player.ID() != want[i] {
			t.Errorf("Podium rank %d: expected %s, got %s (rank %d)", i+1, want[i], entry.Player.ID(), entry.Rank)
		}
	}

	if _, err := s.Forfeit(ctx, "c"); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver for the winner, got %v", err)
	}
}

func TestDepart_RandomSequencesKeepInvariants(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	for seed := int64(1); seed <= 30; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		s := newRingSession(t, names)
		ctx := context.Background()
		lastOrder := 0

		for {
			snap := s.Snapshot()
			if snap.GameOver {
				break
			}
			alive := snap.Graph().Registry().InPlay()
			victim := alive[rnd.Intn(len(alive))].ID()

			var d *Departure
			var err error
			if rnd.Intn(3) == 0 {
				d, err = s.Forfeit(ctx, victim)
			} else {
				d, err = s.ConfirmKill(ctx, victim)
			}
			if err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			if d.Order <= lastOrder {
				t.Fatalf("seed %d: elimination order went from %d to %d", seed, lastOrder, d.Order)
			}
			lastOrder = d.Order

			if v := Audit(s.Snapshot()); len(v) > 0 {
				t.Fatalf("seed %d: audit failed after %s left: %v", seed, victim, v[0])
			}
		}
		if got := s.Snapshot().Departures; got != len(names)-1 {
			t.Errorf("seed %d: expected %d departures, got %d", seed, len(names)-1, got)
		}
	}
}

func TestDepart_ConcurrentDeparturesAreSerialized(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	s := newRingSession(t, names)

	var wg sync.WaitGroup
	for _, n := range names[:6] {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := s.ConfirmKill(context.Background(), id); err != nil {
				t.Error(err)
			}
		}(n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = Leaderboard(s.Snapshot())
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if v := Audit(snap); len(v) > 0 {
		t.Fatal(v[0])
	}
	if snap.Counts().Alive != 2 || snap.Departures != 6 {
		t.Errorf("Unexpected counts after concurrent kills: %+v", snap.Counts())
	}
}

func TestNewSession_ResumesEliminationOrder(t *testing.T) {
	a := player.New("a", "pw", player.Profile{})
	b := player.New("b", "pw", player.Profile{})
	c := player.New("c", "pw", player.Profile{})
	d := player.New("d", "pw", player.Profile{})
	a.Target, b.Target, c.Target = "b", "c", "a"
	d.Status = player.GaveUp
	d.EliminationOrder = 4
	reg, _ := player.NewRegistry(a, b, c, d)
	g, err := graph.New(reg)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSession(g)
	dep, err := s.ConfirmKill(context.Background(), "c")
	if err != nil {
		t.Fatal(err)
	}
	if dep.Order != 5 {
		t.Errorf("Expected the next elimination order to follow the stored ones, got %d", dep.Order)
	}
}

// memDB stands in for the players table: departures are written to it and reloads read from it
type memDB struct {
	mu      sync.Mutex
	players map[string]*player.Player
	saved   int

	read    chan struct{}
	release chan struct{}
}

func (m *memDB) fill(snap *Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = map[string]*player.Player{}
	for _, p := range snap.Players() {
		m.players[p.ID()] = p.Clone()
	}
}

// holdNextLoad makes the next LoadPlayers read the table, signal read, then wait for release before returning
func (m *memDB) holdNextLoad() (read <-chan struct{}, release chan<- struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.read = make(chan struct{})
	m.release = make(chan struct{})
	return m.read, m.release
}

func (m *memDB) LoadPlayers(_ context.Context) ([]*player.Player, error) {
	m.mu.Lock()
	var ret []*player.Player
	for _, p := range m.players {
		ret = append(ret, p.Clone())
	}
	read, release := m.read, m.release
	m.read, m.release = nil, nil
	m.mu.Unlock()

	if read != nil {
		close(read)
		<-release
	}
	return ret, nil
}

func (m *memDB) SaveDeparture(_ context.Context, d *Departure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range d.Changed {
		m.players[p.ID()] = p.Clone()
	}
	m.saved++
	return nil
}

type fakeLocker struct {
	refreshErr error
	refreshed  int
	released   int
}

func (l *fakeLocker) LockDepartures(_ context.Context) (Lease, error) {
	return l, nil
}

func (l *fakeLocker) Refresh(_ context.Context) error {
	l.refreshed++
	return l.refreshErr
}

func (l *fakeLocker) Release() {
	l.released++
}

func TestReload_KeepsDepartureCommittedDuringLoad(t *testing.T) {
	db := &memDB{}
	locker := &fakeLocker{}
	s := newRingSession(t, []string{"P1", "P2", "P3", "P4"}, WithStore(db), WithLocker(locker, db))
	db.fill(s.Snapshot())
	ctx := context.Background()

	read, release := db.holdNextLoad()
	done := make(chan error)
	go func() {
		done <- s.Reload(ctx)
	}()
	<-read

	if _, err := s.ConfirmKill(ctx, "p2"); err != nil {
		t.Fatal(err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	p1, p2 := mustGet(t, snap, "p1"), mustGet(t, snap, "p2")
	if p2.Status != player.Dead || p1.Target != "p3" || p1.KillCount != 1 || snap.Departures != 1 {
		t.Errorf("A reload read before the kill must not undo it: p2 %s, p1 target %q with %d kills, %d departures",
			p2.Status, p1.Target, p1.KillCount, snap.Departures)
	}
	if locker.refreshed != 1 || locker.released != 1 {
		t.Errorf("Expected the lock to be refreshed and released once, got %d and %d", locker.refreshed, locker.released)
	}

	if err := s.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	if mustGet(t, s.Snapshot(), "p2").Status != player.Dead || s.Snapshot().Departures != 1 {
		t.Error("A reload of the current table keeps the kill")
	}
}

func TestDepart_LostLockAborts(t *testing.T) {
	db := &memDB{}
	lost := errors.New("lock lost")
	locker := &fakeLocker{refreshErr: lost}
	s := newRingSession(t, []string{"A", "B", "C"}, WithStore(db), WithLocker(locker, db))
	db.fill(s.Snapshot())

	if _, err := s.ConfirmKill(context.Background(), "b"); !errors.Is(err, lost) {
		t.Fatalf("Expected the lost lock to abort the kill, got %v", err)
	}
	if db.saved != 0 {
		t.Error("Nothing may be stored once the lock is lost")
	}
	snap := s.Snapshot()
	if mustGet(t, snap, "b").Status != player.Alive || mustGet(t, snap, "a").Target != "b" || snap.Departures != 0 {
		t.Error("The published state must not change when the lock is lost")
	}
	if locker.released != 1 {
		t.Errorf("Expected the lock to be released, got %d releases", locker.released)
	}
}
