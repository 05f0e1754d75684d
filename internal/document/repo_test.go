package document

import (
	"context"
	"errors"
	"strings"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// each test gets its own named in-memory db; a bare :memory: DSN gives
	// every pooled connection a different database
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Document{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestCreate_DefaultsPending(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	d := &Document{
		UserID:  7,
		Name:    "transcript.pdf",
		Type:    TypeAcademic,
		FileURL: "https://files.example.com/transcript.pdf",
	}
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}

	got, err := repo.GetByID(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusPending {
		t.Fatalf("status = %q, want pending", got.Status)
	}
}

func TestListByUser_ScopedToOwner(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	for _, userID := range []uint64{1, 2, 1} {
		d := &Document{
			UserID:  userID,
			Name:    "doc.pdf",
			Type:    TypeFinancial,
			FileURL: "https://files.example.com/doc.pdf",
		}
		if err := repo.Create(context.Background(), d); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	docs, err := repo.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents for user 1, got %d", len(docs))
	}
	// newest first
	if docs[0].ID < docs[1].ID {
		t.Fatalf("expected DESC order")
	}
}

func TestReview_UpdatesStatusAndFeedback(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	d := &Document{UserID: 3, Name: "bank-statement.pdf", Type: TypeFinancial, FileURL: "https://x/y"}
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Review(context.Background(), d.ID, StatusRejected, "statement older than 3 months"); err != nil {
		t.Fatalf("review: %v", err)
	}

	got, err := repo.GetByID(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusRejected || got.Feedback != "statement older than 3 months" {
		t.Fatalf("unexpected review result: status=%q feedback=%q", got.Status, got.Feedback)
	}
}

func TestReview_NotFound(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	err := repo.Review(context.Background(), 9999, StatusApproved, "ok")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}
