package service

import (
	"context"
	"os"
	"testing"

	"Moodgraph/dao"
	"Moodgraph/models"
	"Moodgraph/types"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 需要真实 MySQL 实例，默认跳过，DSN 同 dao 层测试
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

// 看板删掉之后再拉它的便签列表必须是空列表，不是 404；
// 错过 board-deleted 广播的客户端重新拉取时看到的就是一块空画布
func TestListNotesAfterBoardDeleteReturnsEmpty(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	boardDAO := dao.NewBoardDAO(db)
	noteDAO := dao.NewNoteDAO(db)
	svc := &NoteService{NoteDAO: noteDAO, BoardDAO: boardDAO}

	board := &models.Board{Name: "Travel", Category: "dreams"}
	if err := boardDAO.Create(ctx, board); err != nil {
		t.Fatalf("create board: %v", err)
	}
	if _, err := svc.CreateNote(ctx, board.ID, &types.CreateNoteRequest{Title: "Paris"}); err != nil {
		t.Fatalf("create note: %v", err)
	}

	if err := boardDAO.DeleteCascade(ctx, board.ID); err != nil {
		t.Fatalf("delete cascade: %v", err)
	}

	notes, err := svc.ListNotes(ctx, board.ID)
	if err != nil {
		t.Fatalf("list notes on deleted board must not fail, got %v", err)
	}
	if notes == nil {
		t.Fatal("expected an empty collection, got nil")
	}
	if len(notes) != 0 {
		t.Fatalf("expected no notes, got %d", len(notes))
	}
}

// 在不存在的看板上建便签仍然是 404
func TestCreateNoteOnMissingBoardFails(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	svc := &NoteService{NoteDAO: dao.NewNoteDAO(db), BoardDAO: dao.NewBoardDAO(db)}

	if _, err := svc.CreateNote(ctx, 99999, &types.CreateNoteRequest{Title: "ghost"}); err == nil {
		t.Fatal("expected an error for a missing board")
	}
}
