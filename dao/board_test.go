package dao

import (
	"context"
	"os"
	"testing"

	"Moodgraph/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 需要真实 MySQL 实例，默认跳过
// MOODGRAPH_TEST_DSN="root:root@tcp(127.0.0.1:3306)/moodgraph_test?charset=utf8mb4&parseTime=True&loc=Local" go test ./dao/
func testDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("MOODGRAPH_TEST_DSN")
	if dsn == "" {
		t.Skip("MOODGRAPH_TEST_DSN not set")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Board{}, &models.Note{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM notes")
		db.Exec("DELETE FROM boards")
	})
	return db
}

func TestDeleteCascadeRemovesNotes(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	boardDAO := NewBoardDAO(db)
	noteDAO := NewNoteDAO(db)

	board := &models.Board{Name: "Travel", Category: "dreams"}
	if err := boardDAO.Create(ctx, board); err != nil {
		t.Fatalf("create board: %v", err)
	}
	for _, title := range []string{"Paris", "Kyoto"} {
		if err := noteDAO.Create(ctx, &models.Note{BoardID: board.ID, Title: title}); err != nil {
			t.Fatalf("create note: %v", err)
		}
	}

	other := &models.Board{Name: "Career"}
	if err := boardDAO.Create(ctx, other); err != nil {
		t.Fatalf("create board: %v", err)
	}
	if err := noteDAO.Create(ctx, &models.Note{BoardID: other.ID, Title: "promotion"}); err != nil {
		t.Fatalf("create note: %v", err)
	}

	if err := boardDAO.DeleteCascade(ctx, board.ID); err != nil {
		t.Fatalf("delete cascade: %v", err)
	}

	if _, err := boardDAO.FindById(ctx, board.ID); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected board gone, got %v", err)
	}
	notes, err := noteDAO.FindByBoardID(ctx, board.ID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected no notes on deleted board, got %d", len(notes))
	}

	// 其他看板的便签不受影响
	notes, err = noteDAO.FindByBoardID(ctx, other.ID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note on the other board, got %d", len(notes))
	}
}

func TestTouchUpdatedAtBumpsBoard(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	boardDAO := NewBoardDAO(db)
	board := &models.Board{Name: "Travel"}
	if err := boardDAO.Create(ctx, board); err != nil {
		t.Fatalf("create board: %v", err)
	}
	before := board.UpdatedAt

	if err := boardDAO.TouchUpdatedAt(ctx, board.ID); err != nil {
		t.Fatalf("touch: %v", err)
	}

	fresh, err := boardDAO.FindById(ctx, board.ID)
	if err != nil {
		t.Fatalf("reload board: %v", err)
	}
	if !fresh.UpdatedAt.After(before) {
		t.Fatalf("expected updated_at to advance, before=%v after=%v", before, fresh.UpdatedAt)
	}
}
