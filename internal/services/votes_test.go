package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"huntboard/internal/models"

	"gorm.io/gorm"
)

func productCounts(t *testing.T, gdb *gorm.DB, productID uint) (upvotes int, votes int64) {
	t.Helper()
	var product models.Product
	if err := gdb.First(&product, productID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if err := gdb.Model(&models.Vote{}).Where("product_id = ?", productID).Count(&votes).Error; err != nil {
		t.Fatalf("count votes: %v", err)
	}
	return product.UpvoteCount, votes
}

func TestToggleLifecycle(t *testing.T) {
	gdb := openTestDB(t)
	ledger := NewVoteLedger(gdb)
	owner := seedUser(t, gdb, "maker")
	voter := seedUser(t, gdb, "voter")
	product := seedProduct(t, gdb, owner, "Cool App", "cool-app")

	upvoted, err := ledger.Toggle(context.Background(), product.ID, voter.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !upvoted {
		t.Fatal("first toggle should upvote")
	}
	if count, rows := productCounts(t, gdb, product.ID); count != 1 || rows != 1 {
		t.Fatalf("after upvote: count=%d rows=%d, want 1/1", count, rows)
	}

	upvoted, err = ledger.Toggle(context.Background(), product.ID, voter.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if upvoted {
		t.Fatal("second toggle should remove the vote")
	}
	if count, rows := productCounts(t, gdb, product.ID); count != 0 || rows != 0 {
		t.Fatalf("after un-vote: count=%d rows=%d, want 0/0", count, rows)
	}
}

func TestToggleUnknownProduct(t *testing.T) {
	gdb := openTestDB(t)
	ledger := NewVoteLedger(gdb)
	voter := seedUser(t, gdb, "voter")

	_, err := ledger.Toggle(context.Background(), 9999, voter.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleDistinctUsersAccumulate(t *testing.T) {
	gdb := openTestDB(t)
	ledger := NewVoteLedger(gdb)
	owner := seedUser(t, gdb, "maker")
	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")
	product := seedProduct(t, gdb, owner, "Cool App", "cool-app")

	for _, user := range []*models.User{alice, bob} {
		if _, err := ledger.Toggle(context.Background(), product.ID, user.ID); err != nil {
			t.Fatalf("toggle for user %d: %v", user.ID, err)
		}
	}
	if count, rows := productCounts(t, gdb, product.ID); count != 2 || rows != 2 {
		t.Fatalf("count=%d rows=%d, want 2/2", count, rows)
	}
}

// TestToggleLostInsertRace wedges a competing vote row in just before the
// ledger's own insert, so the unique index rejects it exactly as it would
// when two requests race. The losing toggle must report upvoted without
// touching the counter.
func TestToggleLostInsertRace(t *testing.T) {
	gdb := openTestDB(t)
	ledger := NewVoteLedger(gdb)
	owner := seedUser(t, gdb, "maker")
	voter := seedUser(t, gdb, "voter")
	product := seedProduct(t, gdb, owner, "Cool App", "cool-app")

	raced := false
	err := gdb.Callback().Create().Before("gorm:create").Register("test_vote_race", func(tx *gorm.DB) {
		if raced {
			return
		}
		if _, ok := tx.Statement.Dest.(*models.Vote); !ok {
			return
		}
		raced = true
		// Fresh statement on the same transaction; touching tx's own
		// statement here would clobber the pending insert.
		tx.Session(&gorm.Session{NewDB: true}).
			Exec("INSERT INTO votes (product_id, user_id, created_at) VALUES (?, ?, ?)",
				product.ID, voter.ID, time.Now())
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	defer gdb.Callback().Create().Remove("test_vote_race")

	upvoted, err := ledger.Toggle(context.Background(), product.ID, voter.ID)
	if err != nil {
		t.Fatalf("toggle lost race: %v", err)
	}
	if !upvoted {
		t.Fatal("lost insert race must still report upvoted")
	}

	// The loser never incremented; only the simulated winner's transaction
	// owns the +1 (here it rolled back together with the toggle's tx).
	if count, _ := productCounts(t, gdb, product.ID); count != 0 {
		t.Fatalf("counter double-counted on lost race: %d", count)
	}
}

func TestCountUnknownProduct(t *testing.T) {
	gdb := openTestDB(t)
	ledger := NewVoteLedger(gdb)

	_, err := ledger.Count(context.Background(), 123)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
