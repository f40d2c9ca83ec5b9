package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/streamtv/streamtv/internal/model"
	"github.com/streamtv/streamtv/internal/utils"
)

// CustomerRepo manages the `customer` table: credential lookups,
// registration inserts and sequential custID allocation.
type CustomerRepo struct {
	DB *sql.DB
	// Now is the clock used for the membersince date. Overridable in tests.
	Now func() time.Time
}

func NewCustomerRepo(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{DB: db, Now: time.Now}
}

// CredentialByUsername returns the stored password hash for a username.
// The lookup is only valid when exactly one row matches; zero rows and
// multiple rows are both rejected with ErrAmbiguousUser so the caller
// treats them identically.
func (r *CustomerRepo) CredentialByUsername(ctx context.Context, username string) (string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT password FROM customer WHERE username = ?", username)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return "", err
		}
		hashes = append(hashes, h)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	if len(hashes) != 1 {
		return "", ErrAmbiguousUser
	}
	return hashes[0], nil
}

// GetByUsername fetches a customer row by username.
func (r *CustomerRepo) GetByUsername(ctx context.Context, username string) (model.Customer, error) {
	var c model.Customer
	err := r.DB.QueryRowContext(ctx,
		"SELECT custID, username, password, fname, lname, email, creditcard, membersince FROM customer WHERE username = ? LIMIT 1",
		username).Scan(&c.CustID, &c.Username, &c.Password, &c.Fname, &c.Lname, &c.Email, &c.CreditCard, &c.MemberSince)
	if err == sql.ErrNoRows {
		return model.Customer{}, ErrNotFound
	}
	return c, err
}

// Registration carries the validated registration fields. The password is
// still plain text here; Create hashes it before the insert.
type Registration struct {
	Username   string
	Password   string
	Fname      string
	Lname      string
	Email      string
	CreditCard string
}

// Create registers a new customer: it verifies the username is unused,
// allocates the next sequential custID, hashes the password and inserts
// the row, all inside one transaction. It returns the assigned custID.
// The returns are named so the deferred commit can surface its error.
func (r *CustomerRepo) Create(ctx context.Context, reg Registration, bcryptCost int) (custID string, err error) {
	hash, err := utils.HashPassword(reg.Password, bcryptCost)
	if err != nil {
		return "", err
	}
	memberSince := utils.ServiceDate(r.Now())

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if err = tx.Commit(); err != nil {
			custID = ""
		}
	}()

	// Duplicate check before insert. The layer below carries no unique
	// index on username, so this is the only guard.
	var one int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM customer WHERE username = ? LIMIT 1", reg.Username).Scan(&one)
	if err == nil {
		err = ErrUsernameExists
		return "", err
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	custID, err = nextCustID(ctx, tx)
	if err != nil {
		return "", err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO customer (custID, fname, lname, email, creditcard, membersince, password, username)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		custID, reg.Fname, reg.Lname, reg.Email, reg.CreditCard, memberSince, hash, reg.Username)
	if err != nil {
		return "", err
	}
	return custID, nil
}

// nextCustID allocates the next sequential customer ID inside tx. The
// current maximum is the longest, lexically greatest custID: suffixes are
// zero-padded to three digits, so lexical order equals numeric order
// within a length class and longer IDs are always numerically larger.
func nextCustID(ctx context.Context, tx *sql.Tx) (string, error) {
	var last string
	err := tx.QueryRowContext(ctx,
		"SELECT custID FROM customer ORDER BY LENGTH(custID) DESC, custID DESC LIMIT 1").Scan(&last)
	if err == sql.ErrNoRows {
		return FormatCustID(1), nil
	}
	if err != nil {
		return "", err
	}
	n, err := parseCustID(last)
	if err != nil {
		return "", err
	}
	return FormatCustID(n + 1), nil
}

// FormatCustID renders a numeric customer counter in its stored form:
// "cust" plus the number zero-padded to three digits. Values >= 1000 are
// not re-padded; they simply print all their digits, which preserves
// ordering under both lexical and numeric comparison.
func FormatCustID(n int) string {
	return fmt.Sprintf("cust%03d", n)
}

func parseCustID(id string) (int, error) {
	suffix := strings.TrimPrefix(id, "cust")
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, fmt.Errorf("malformed custID %q: %w", id, err)
	}
	return n, nil
}
