package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/mnagpal/bridgewalk/internal/model"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

// AccountStore owns account identity rows. The points and scans columns
// are written only by ScanStore (credit) and RewardStore (debit).
type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

func scanAccount(scanner interface{ Scan(...any) error }) (*model.Account, error) {
	var a model.Account
	err := scanner.Scan(&a.ID, &a.Name, &a.Email, &a.Points, &a.Scans, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const accountCols = `id, name, email, points, scans, created_at, updated_at`

// Create registers a new account with a zero balance. passwordHash must
// already be bcrypt-hashed by the caller.
func (s *AccountStore) Create(name, email, passwordHash string) (*model.Account, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if len(name) < 2 {
		return nil, &ValidationError{Field: "name", Reason: "must be at least 2 characters"}
	}
	if !emailRegexp.MatchString(email) {
		return nil, &ValidationError{Field: "email", Reason: "is not a valid email address"}
	}

	exists, err := s.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("account %s: %w", email, ErrDuplicateID)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO accounts (id, name, email, password_hash) VALUES (?, ?, ?, ?)`,
		id, name, email, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return s.GetByID(id)
}

func (s *AccountStore) GetByID(id string) (*model.Account, error) {
	row := s.db.QueryRow(`SELECT `+accountCols+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

func (s *AccountStore) GetByEmail(email string) (*model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := s.db.QueryRow(`SELECT `+accountCols+` FROM accounts WHERE email = ?`, email)
	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return a, nil
}

func (s *AccountStore) EmailExists(email string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM accounts WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return n > 0, nil
}

// GetPasswordHash returns the stored bcrypt hash for an account, or
// ErrNotFound.
func (s *AccountStore) GetPasswordHash(email string) (accountID, hash string, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	err = s.db.QueryRow(`SELECT id, password_hash FROM accounts WHERE email = ?`, email).Scan(&accountID, &hash)
	if err == sql.ErrNoRows {
		return "", "", fmt.Errorf("account %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return "", "", fmt.Errorf("query password hash: %w", err)
	}
	return accountID, hash, nil
}

// Count returns the number of registered accounts.
func (s *AccountStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

// ValidPassword reports whether a plaintext password meets the minimum
// registration requirement.
func ValidPassword(password string) bool {
	return len(password) >= minPasswordLen
}
