package player

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// compare is swapped in tests to count comparisons
var compare = bcrypt.CompareHashAndPassword

var (
	dummyOnce sync.Once
	dummyHash []byte
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (p *Player) CheckPassword(password string) bool {
	if p.PasswordHash == "" || password == "" {
		return false
	}
	return compare([]byte(p.PasswordHash), []byte(password)) == nil
}

// Authenticate checks the password of p, which may be nil for an unknown nickname. Every call runs exactly one
// bcrypt comparison so a failed login takes as long whether or not the player exists.
func Authenticate(p *Player, password string) bool {
	if p != nil && p.PasswordHash != "" && password != "" {
		return p.CheckPassword(password)
	}
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("no such player"), bcrypt.DefaultCost)
	})
	_ = compare(dummyHash, []byte(password))
	return false
}
