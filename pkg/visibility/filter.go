package visibility

import (
	"context"
	"errors"

	"github.com/Skyxo/killer/pkg/game"
	"github.com/Skyxo/killer/pkg/player"
)

var ErrForbidden = errors.New("admin access required")

// PhotoResolver turns a stored photo reference into something a browser can load
type PhotoResolver interface {
	PhotoURL(ctx context.Context, key string) string
}

// Filter projects a game snapshot into what a given viewer is allowed to see
type Filter struct {
	photos PhotoResolver
}

// NewFilter returns a filter resolving photos through photos; stored references are returned as-is when nil
func NewFilter(photos PhotoResolver) *Filter {
	return &Filter{photos: photos}
}

func (f *Filter) photo(ctx context.Context, key string) string {
	if key == "" || f.photos == nil {
		return key
	}
	return f.photos.PhotoURL(ctx, key)
}

func (f *Filter) profile(ctx context.Context, p *player.Player) ProfileView {
	return ProfileView{
		Nickname:    p.Nickname,
		Name:        p.Name,
		Firstname:   p.Firstname,
		Year:        p.Year,
		PersonPhoto: f.photo(ctx, p.PersonPhoto),
		FeetPhoto:   f.photo(ctx, p.FeetPhoto),
		IsAdmin:     p.IsAdmin,
	}
}

// CanViewStatus reports whether the viewer may see the status of other players
func CanViewStatus(viewer *player.Player, snap *game.Snapshot) bool {
	return viewer.IsAdmin || viewer.Status.IsTerminal() || snap.GameOver
}

// Self is the viewer's own record along with their current target
func (f *Filter) Self(ctx context.Context, snap *game.Snapshot, viewer *player.Player) Me {
	self := SelfView{
		ProfileView: f.profile(ctx, viewer),
		Phone:       viewer.Phone,
		Status:      viewer.Status,
		KillCount:   viewer.KillCount,
	}
	if viewer.Status.IsTerminal() {
		self.KilledBy = viewer.KilledBy
		if viewer.HasDeparted() {
			order := viewer.EliminationOrder
			self.EliminationOrder = &order
		}
	}

	me := Me{
		Player:   self,
		GameOver: snap.GameOver,
		Winner:   snap.Winner,
	}
	if viewer.InPlay() {
		if t := snap.Target(viewer.ID()); t != nil {
			me.Target = &TargetView{
				ProfileView: f.profile(ctx, t),
				Action:      viewer.Action,
			}
		}
	}
	return me
}

// Roster lists every participant, admins included, in nickname order
func (f *Filter) Roster(ctx context.Context, snap *game.Snapshot, viewer *player.Player) Roster {
	canView := CanViewStatus(viewer, snap)
	ret := Roster{
		Viewer: Viewer{
			Nickname:      viewer.Nickname,
			Status:        viewer.Status,
			IsAdmin:       viewer.IsAdmin,
			CanViewStatus: canView,
		},
		GameOver: snap.GameOver,
		Players:  []PeerView{},
	}
	for _, p := range snap.Players() {
		view := PeerView{ProfileView: f.profile(ctx, p)}
		if p.IsAdmin {
			ret.Players = append(ret.Players, view)
			continue
		}
		if canView {
			kills := p.KillCount
			view.Status = p.Status
			view.KillCount = &kills
		}
		if snap.GameOver {
			view.HuntedBy = p.HuntedBy
			view.KilledBy = p.KilledBy
			if p.HasDeparted() {
				order := p.EliminationOrder
				view.EliminationOrder = &order
			}
		}
		ret.Players = append(ret.Players, view)
	}
	return ret
}

// Leaderboard shows players with at least one kill; admins see the whole field
func (f *Filter) Leaderboard(ctx context.Context, snap *game.Snapshot, viewer *player.Player) Leaderboard {
	canView := CanViewStatus(viewer, snap)
	ret := Leaderboard{Leaderboard: []LeaderboardView{}}
	for _, entry := range game.Leaderboard(snap) {
		if !entry.Rankable && !viewer.IsAdmin {
			continue
		}
		p := entry.Player
		view := LeaderboardView{
			Rank:      entry.Rank,
			Medal:     string(entry.Medal),
			Nickname:  p.Nickname,
			KillCount: p.KillCount,
			IsAdmin:   p.IsAdmin,
			Photo:     f.photo(ctx, p.PersonPhoto),
			Year:      p.Year,
		}
		if canView {
			view.Status = p.Status
		}
		ret.Leaderboard = append(ret.Leaderboard, view)
	}
	return ret
}

func (f *Filter) Podium(ctx context.Context, snap *game.Snapshot) Podium {
	ret := Podium{GameOver: snap.GameOver, Podium: []PodiumView{}}
	for _, entry := range game.Podium(snap) {
		ret.Podium = append(ret.Podium, PodiumView{
			Rank:      entry.Rank,
			Nickname:  entry.Player.Nickname,
			KillCount: entry.Player.KillCount,
			Photo:     f.photo(ctx, entry.Player.PersonPhoto),
			Year:      entry.Player.Year,
		})
	}
	return ret
}

// Admin returns every field of every player, including the live assignment graph
func (f *Filter) Admin(ctx context.Context, snap *game.Snapshot, viewer *player.Player) (*AdminOverview, error) {
	if viewer == nil || !viewer.IsAdmin {
		return nil, ErrForbidden
	}
	g := snap.Graph()
	ret := &AdminOverview{
		GameOver:   snap.GameOver,
		Winner:     snap.Winner,
		Departures: snap.Departures,
		Cycles:     g.Cycles(),
		Players:    []AdminView{},
	}
	for _, p := range snap.Players() {
		hunter, _ := g.HunterOf(p.ID())
		ret.Players = append(ret.Players, AdminView{
			ProfileView:      f.profile(ctx, p),
			Phone:            p.Phone,
			Status:           p.Status,
			Target:           p.Target,
			Hunter:           hunter,
			Action:           p.Action,
			KillCount:        p.KillCount,
			KilledBy:         p.KilledBy,
			HuntedBy:         p.HuntedBy,
			EliminationOrder: p.EliminationOrder,
		})
	}
	return ret, nil
}
