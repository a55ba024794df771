package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the email is unknown or the
// password does not match.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")

// Account is a demo credential record as configured.
type Account struct {
	ID       string `mapstructure:"id" yaml:"id"`
	Name     string `mapstructure:"name" yaml:"name"`
	Email    string `mapstructure:"email" yaml:"email"`
	Password string `mapstructure:"password" yaml:"password"`
}

type entry struct {
	account Account
	hash    []byte
}

// Directory authenticates accounts by email and password. Plain passwords
// are hashed on construction and never kept.
type Directory struct {
	entries map[string]entry
}

// NewDirectory hashes the password of every account. Emails are matched
// case-insensitively and must be unique.
func NewDirectory(accounts []Account) (*Directory, error) {
	d := &Directory{entries: make(map[string]entry, len(accounts))}
	for _, a := range accounts {
		email := strings.ToLower(strings.TrimSpace(a.Email))
		if email == "" || a.Password == "" {
			return nil, fmt.Errorf("account %q: email and password required", a.ID)
		}
		if _, dup := d.entries[email]; dup {
			return nil, fmt.Errorf("duplicate account email %q", email)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %q: %w", email, err)
		}
		a.Email = email
		a.Password = ""
		d.entries[email] = entry{account: a, hash: hash}
	}
	return d, nil
}

// Authenticate returns the account matching email and password. The
// returned account carries no password.
func (d *Directory) Authenticate(email, password string) (Account, error) {
	e, ok := d.entries[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(e.hash, []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return e.account, nil
}

// Len reports the number of accounts.
func (d *Directory) Len() int {
	return len(d.entries)
}
