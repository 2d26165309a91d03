package test_utils

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/yann-lu/mind-balance/pkg/user"
)

// SeedUser inserts a user row and returns it together with a context carrying
// that user, the way the identity middleware would.
func SeedUser(t *testing.T, db *sql.DB, uid string) (user.User, context.Context) {
	t.Helper()

	result, err := db.Exec(
		"INSERT INTO users (uid, username, display_name, created_at) VALUES (?, ?, ?, ?)",
		uid, "user_"+uid, "Test User", time.Now().Unix(),
	)
	if err != nil {
		t.Fatalf("failed to insert test user: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read test user id: %v", err)
	}

	u := user.User{Id: int(id), Uid: uid, Username: "user_" + uid, DisplayName: "Test User"}
	return u, user.WithUser(context.Background(), u)
}
