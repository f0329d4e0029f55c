package storage

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/Skyxo/killer/pkg/game"
	"github.com/Skyxo/killer/pkg/player"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PgxIface interface {
	Begin(context.Context) (pgx.Tx, error)
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	Ping(context.Context) error
	Prepare(context.Context, string, string) (*pgconn.StatementDescription, error)
}

type PsqlInterface struct {
	Pool *pgxpool.Pool
}

func ConstructPsqlConnectURL(addr, username, password string) string {
	return fmt.Sprintf("postgres://%s?user=%s&password=%s", addr, username, password)
}

type PsqlParameters struct {
	Addr     string
	Username string
	Password string
}

func (psqlInterface *PsqlInterface) Init(addr string) error {
	dbpool, err := pgxpool.Connect(context.Background(), addr)
	if err != nil {
		return err
	}
	psqlInterface.Pool = dbpool
	return nil
}

func (psqlInterface *PsqlInterface) Close() {
	if psqlInterface.Pool != nil {
		psqlInterface.Pool.Close()
	}
}

func (psqlInterface *PsqlInterface) LoadAndExecFromFile(filepath string) error {
	f, err := os.Open(filepath)
	if err != nil {
		return err
	}
	defer f.Close()

	bytes, err := ioutil.ReadAll(f)
	if err != nil {
		return err
	}
	tag, err := psqlInterface.Pool.Exec(context.Background(), string(bytes))
	if err != nil {
		return err
	}
	log.Println(tag.String())
	return nil
}

func (psqlInterface *PsqlInterface) LoadPlayers(ctx context.Context) ([]*player.Player, error) {
	conn, err := psqlInterface.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()
	return loadPlayers(ctx, conn.Conn())
}

func loadPlayers(ctx context.Context, conn PgxIface) ([]*player.Player, error) {
	rows, err := getPlayers(ctx, conn)
	if err != nil {
		return nil, err
	}
	ret := make([]*player.Player, 0, len(rows))
	for _, row := range rows {
		p, err := row.ToPlayer()
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", row.PlayerID, err)
		}
		ret = append(ret, p)
	}
	return ret, nil
}

func (psqlInterface *PsqlInterface) GetPlayers(ctx context.Context) ([]*PostgresPlayer, error) {
	return getPlayers(ctx, psqlInterface.Pool)
}

func getPlayers(ctx context.Context, conn pgxscan.Querier) ([]*PostgresPlayer, error) {
	var players []*PostgresPlayer
	err := pgxscan.Select(ctx, conn, &players, "SELECT * FROM players ORDER BY player_id ASC;")
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (psqlInterface *PsqlInterface) CountPlayers(ctx context.Context) (int64, error) {
	return countPlayers(ctx, psqlInterface.Pool)
}

func countPlayers(ctx context.Context, conn pgxscan.Querier) (int64, error) {
	var r []int64
	err := pgxscan.Select(ctx, conn, &r, "SELECT COUNT(*) FROM players;")
	if err != nil {
		return 0, err
	}
	if len(r) < 1 {
		return 0, errors.New("no count returned for players")
	}
	return r[0], nil
}

// InsertPlayers writes every player in a single transaction
func (psqlInterface *PsqlInterface) InsertPlayers(ctx context.Context, players []*player.Player) error {
	conn, err := psqlInterface.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return insertPlayers(ctx, conn.Conn(), players)
}

func insertPlayers(ctx context.Context, conn PgxIface, players []*player.Player) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	for _, p := range players {
		pp := FromPlayer(p)
		_, err := tx.Exec(ctx, "INSERT INTO players VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);",
			pp.PlayerID, pp.Nickname, pp.PasswordHash, pp.IsAdmin, pp.Status, pp.Target, pp.Action, pp.KillCount,
			pp.KilledBy, pp.EliminationOrder, pp.Name, pp.Firstname, pp.Year, pp.Phone, pp.PersonPhoto, pp.FeetPhoto,
			pp.HuntedBy)
		if err != nil {
			rollback(ctx, tx)
			return fmt.Errorf("inserting player %s: %w", pp.PlayerID, err)
		}
	}
	return tx.Commit(ctx)
}

// SaveDeparture updates every changed player and records the departure in one transaction
func (psqlInterface *PsqlInterface) SaveDeparture(ctx context.Context, d *game.Departure) error {
	conn, err := psqlInterface.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return saveDeparture(ctx, conn.Conn(), d)
}

func saveDeparture(ctx context.Context, conn PgxIface, d *game.Departure) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	for _, p := range d.Changed {
		pp := FromPlayer(p)
		tag, err := tx.Exec(ctx, "UPDATE players SET (status, target, action, kill_count, killed_by, elimination_order, hunted_by) = ($1, $2, $3, $4, $5, $6, $7) WHERE player_id = $8;",
			pp.Status, pp.Target, pp.Action, pp.KillCount, pp.KilledBy, pp.EliminationOrder, pp.HuntedBy, pp.PlayerID)
		if err != nil {
			rollback(ctx, tx)
			return err
		}
		if tag.RowsAffected() != 1 {
			rollback(ctx, tx)
			return fmt.Errorf("player %s is missing from the players table", pp.PlayerID)
		}
	}

	pd := FromDeparture(d)
	_, err = tx.Exec(ctx, "INSERT INTO departures VALUES (DEFAULT, $1, $2, $3, $4, $5, $6, $7, $8, $9);",
		pd.Kind, pd.Subject, pd.Hunter, pd.EliminationOrder, pd.NewTarget, pd.Action, pd.Spliced, pd.Winner, pd.DepartedAt)
	if err != nil {
		rollback(ctx, tx)
		return err
	}
	return tx.Commit(ctx)
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil {
		log.Println("[Storage] rollback failed:", err)
	}
}

func (psqlInterface *PsqlInterface) GetDepartures(ctx context.Context) ([]*PostgresDeparture, error) {
	return getDepartures(ctx, psqlInterface.Pool)
}

func getDepartures(ctx context.Context, conn pgxscan.Querier) ([]*PostgresDeparture, error) {
	var departures []*PostgresDeparture
	err := pgxscan.Select(ctx, conn, &departures, "SELECT * FROM departures ORDER BY departure_id ASC;")
	if err != nil {
		return nil, err
	}
	return departures, nil
}
