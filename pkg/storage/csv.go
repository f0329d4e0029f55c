package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Skyxo/killer/pkg/player"
)

// SeedColumns are the headers understood by ReadPlayersCSV; only nickname and password are required
var SeedColumns = []string{
	"nickname", "password", "name", "firstname", "year", "phone",
	"person_photo", "feet_photo", "is_admin", "status", "target", "action",
}

// SeedRow is one line of a seed file. Password is in clear text until it gets hashed at import.
type SeedRow struct {
	Player   *player.Player
	Password string
}

func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// ReadPlayersCSV parses a seed file. Columns are matched on their header, case-insensitively, in any order.
func ReadPlayersCSV(r io.Reader) ([]SeedRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("seed file is empty")
		}
		return nil, err
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"nickname", "password"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("seed file has no %q column", required)
		}
	}

	var ret []SeedRow
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, err
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if get("nickname") == "" {
			continue
		}

		p := player.New(get("nickname"), "", player.Profile{
			Name:        get("name"),
			Firstname:   get("firstname"),
			Year:        get("year"),
			PersonPhoto: get("person_photo"),
			FeetPhoto:   get("feet_photo"),
			Phone:       get("phone"),
		})
		if v := get("is_admin"); v != "" {
			admin, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad is_admin value %q", line, v)
			}
			p.IsAdmin = admin
		}
		if p.Status, err = player.ParseStatus(get("status")); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p.Target = player.Key(get("target"))
		p.Action = get("action")
		ret = append(ret, SeedRow{Player: p, Password: get("password")})
	}
	return ret, nil
}
