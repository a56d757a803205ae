package service

import (
	"io"
	"log/slog"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/gupta-8/code-snippet/internal/auth"
	"github.com/gupta-8/code-snippet/internal/repository/sqlite"
)

// Service tests run against a real in-memory database rather than
// hand-written repository fakes: most of the interesting behavior
// (ownership scoping, tag replacement, transactional deletes) lives in
// the SQL, and fakes would just re-implement it loosely.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("sqlite.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T, db *sqlite.DB) *AuthService {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	passwords := auth.NewPasswordServiceForTest(bcrypt.MinCost)
	return NewAuthService(db, tokens, passwords, testLogger())
}
