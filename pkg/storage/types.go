package storage

import (
	"bytes"
	"fmt"

	"github.com/Skyxo/killer/pkg/game"
	"github.com/Skyxo/killer/pkg/player"
)

type PostgresPlayer struct {
	PlayerID         string  `db:"player_id"`
	Nickname         string  `db:"nickname"`
	PasswordHash     string  `db:"password_hash"`
	IsAdmin          bool    `db:"is_admin"`
	Status           string  `db:"status"`
	Target           *string `db:"target"`
	Action           string  `db:"action"`
	KillCount        int32   `db:"kill_count"`
	KilledBy         *string `db:"killed_by"`
	EliminationOrder int32   `db:"elimination_order"`
	Name             string  `db:"name"`
	Firstname        string  `db:"firstname"`
	Year             string  `db:"year"`
	Phone            string  `db:"phone"`
	PersonPhoto      string  `db:"person_photo"`
	FeetPhoto        string  `db:"feet_photo"`
	HuntedBy         *string `db:"hunted_by"`
}

func nilToEmpty[T int32 | int64 | string](s *T) string {
	if s == nil {
		return ""
	} else {
		return fmt.Sprintf("%v", *s)
	}
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func FromPlayer(p *player.Player) *PostgresPlayer {
	pp := &PostgresPlayer{
		PlayerID:         p.ID(),
		Nickname:         p.Nickname,
		PasswordHash:     p.PasswordHash,
		IsAdmin:          p.IsAdmin,
		Status:           string(p.Status),
		Target:           emptyToNil(p.Target),
		Action:           p.Action,
		KillCount:        int32(p.KillCount),
		EliminationOrder: int32(p.EliminationOrder),
		Name:             p.Name,
		Firstname:        p.Firstname,
		Year:             p.Year,
		Phone:            p.Phone,
		PersonPhoto:      p.PersonPhoto,
		FeetPhoto:        p.FeetPhoto,
	}
	if p.KilledBy != nil {
		k := *p.KilledBy
		pp.KilledBy = &k
	}
	if p.HuntedBy != nil {
		h := *p.HuntedBy
		pp.HuntedBy = &h
	}
	return pp
}

func (pp *PostgresPlayer) ToPlayer() (*player.Player, error) {
	status, err := player.ParseStatus(pp.Status)
	if err != nil {
		return nil, err
	}
	p := player.New(pp.Nickname, pp.PasswordHash, player.Profile{
		Name:        pp.Name,
		Firstname:   pp.Firstname,
		Year:        pp.Year,
		PersonPhoto: pp.PersonPhoto,
		FeetPhoto:   pp.FeetPhoto,
		Phone:       pp.Phone,
	})
	p.IsAdmin = pp.IsAdmin
	p.Status = status
	p.Target = nilToEmpty(pp.Target)
	p.Action = pp.Action
	p.KillCount = int(pp.KillCount)
	p.EliminationOrder = int(pp.EliminationOrder)
	if pp.KilledBy != nil {
		k := *pp.KilledBy
		p.KilledBy = &k
	}
	if pp.HuntedBy != nil {
		h := *pp.HuntedBy
		p.HuntedBy = &h
	}
	return p, nil
}

// PlayersToCSV never exports the password hashes
func PlayersToCSV(players []*PostgresPlayer) string {
	s := bytes.NewBufferString("player_id,nickname,is_admin,status,target,action,kill_count,killed_by,hunted_by,elimination_order,name,firstname,year,phone,\n")
	for _, v := range players {
		if v != nil {
			s.WriteString(fmt.Sprintf("%s,%s,%t,%s,%s,%s,%d,%s,%s,%d,%s,%s,%s,%s,\n",
				v.PlayerID, csvEscape(v.Nickname), v.IsAdmin, v.Status, nilToEmpty(v.Target), csvEscape(v.Action), v.KillCount,
				nilToEmpty(v.KilledBy), nilToEmpty(v.HuntedBy), v.EliminationOrder, csvEscape(v.Name), csvEscape(v.Firstname),
				csvEscape(v.Year), csvEscape(v.Phone)))
		}
	}
	return s.String()
}

type PostgresDeparture struct {
	DepartureID      int64   `db:"departure_id"`
	Kind             string  `db:"kind"`
	Subject          string  `db:"subject"`
	Hunter           string  `db:"hunter"`
	EliminationOrder int32   `db:"elimination_order"`
	NewTarget        *string `db:"new_target"`
	Action           string  `db:"action"`
	Spliced          *string `db:"spliced"`
	Winner           *string `db:"winner"`
	DepartedAt       int64   `db:"departed_at"`
}

func FromDeparture(d *game.Departure) *PostgresDeparture {
	return &PostgresDeparture{
		Kind:             string(d.Kind),
		Subject:          d.Subject,
		Hunter:           d.Hunter,
		EliminationOrder: int32(d.Order),
		NewTarget:        emptyToNil(d.Repair.NewTarget),
		Action:           d.Repair.Action,
		Spliced:          emptyToNil(d.Repair.Spliced),
		Winner:           emptyToNil(d.Winner),
		DepartedAt:       d.At.Unix(),
	}
}

func DeparturesToCSV(d []*PostgresDeparture) string {
	s := bytes.NewBufferString("departure_id,kind,subject,hunter,elimination_order,new_target,action,spliced,winner,departed_at,\n")
	for _, v := range d {
		if v != nil {
			s.WriteString(fmt.Sprintf("%d,%s,%s,%s,%d,%s,%s,%s,%s,%d,\n",
				v.DepartureID, v.Kind, v.Subject, v.Hunter, v.EliminationOrder, nilToEmpty(v.NewTarget),
				csvEscape(v.Action), nilToEmpty(v.Spliced), nilToEmpty(v.Winner), v.DepartedAt))
		}
	}
	return s.String()
}
