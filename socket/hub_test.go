package socket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"Moodgraph/models"
	"Moodgraph/types"
)

type fakeSession struct {
	id int64

	mu       sync.Mutex
	received []*types.Message
}

func (f *fakeSession) ID() int64 {
	return f.id
}

func (f *fakeSession) Send(msg *types.Message) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, msg)
	return true
}

func (f *fakeSession) events() []types.EventKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := make([]types.EventKind, 0, len(f.received))
	for _, m := range f.received {
		kinds = append(kinds, m.Event)
	}
	return kinds
}

func noteJSON(t *testing.T, note *models.Note) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(note)
	if err != nil {
		t.Fatalf("marshal note: %v", err)
	}
	return raw
}

func boardJSON(t *testing.T, board *models.Board) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(board)
	if err != nil {
		t.Fatalf("marshal board: %v", err)
	}
	return raw
}

// 加入新房间必须先退出旧房间，一个会话同一时刻只看一个看板
func TestJoinLeavesPreviousRoom(t *testing.T) {
	hub := NewHub(nil)
	s := &fakeSession{id: 1}
	peer := &fakeSession{id: 2}

	hub.Register(s)
	hub.Register(peer)
	hub.Join(s, 5)
	hub.Join(s, 8)
	hub.Join(peer, 5)

	hub.Announce(types.EventNoteCreated, noteJSON(t, &models.Note{ID: 10, BoardID: 5}), peer.ID())

	if len(s.events()) != 0 {
		t.Fatalf("expected no events for session that left room 5, got %v", s.events())
	}
}

// 重复加入同一房间是幂等的
func TestJoinIdempotent(t *testing.T) {
	hub := NewHub(nil)
	s := &fakeSession{id: 1}
	peer := &fakeSession{id: 2}

	hub.Register(s)
	hub.Register(peer)
	hub.Join(s, 5)
	hub.Join(s, 5)
	hub.Join(peer, 5)

	hub.Announce(types.EventNoteUpdated, noteJSON(t, &models.Note{ID: 10, BoardID: 5}), peer.ID())

	if got := len(s.received); got != 1 {
		t.Fatalf("expected exactly 1 event, got %d", got)
	}
}

// 房间隔离：在 room(5) 的会话收不到 board 3 的便签事件
func TestNoteEventRoomIsolation(t *testing.T) {
	hub := NewHub(nil)
	watcher := &fakeSession{id: 1}
	origin := &fakeSession{id: 2}

	hub.Register(watcher)
	hub.Register(origin)
	hub.Join(watcher, 5)
	hub.Join(origin, 3)

	hub.Announce(types.EventNoteCreated, noteJSON(t, &models.Note{ID: 11, BoardID: 3}), origin.ID())

	if len(watcher.events()) != 0 {
		t.Fatalf("session in room 5 received event for board 3: %v", watcher.events())
	}
}

// 发起方不接收自己的事件
func TestAnnounceExcludesOrigin(t *testing.T) {
	hub := NewHub(nil)
	origin := &fakeSession{id: 1}
	peer := &fakeSession{id: 2}

	hub.Register(origin)
	hub.Register(peer)
	hub.Join(origin, 7)
	hub.Join(peer, 7)

	hub.Announce(types.EventNoteCreated, noteJSON(t, &models.Note{ID: 12, BoardID: 7}), origin.ID())

	if len(origin.events()) != 0 {
		t.Fatalf("origin received its own event: %v", origin.events())
	}
	if len(peer.events()) != 1 {
		t.Fatalf("peer expected 1 event, got %v", peer.events())
	}
}

// 负载缺看板 ID 的便签事件直接丢弃
func TestNoteEventWithoutBoardIDDropped(t *testing.T) {
	hub := NewHub(nil)
	origin := &fakeSession{id: 1}
	peer := &fakeSession{id: 2}

	hub.Register(origin)
	hub.Register(peer)
	hub.Join(peer, 7)

	hub.Announce(types.EventNoteCreated, json.RawMessage(`{"id":13,"content":"Paris"}`), origin.ID())

	if len(peer.events()) != 0 {
		t.Fatalf("event without board id should be dropped, got %v", peer.events())
	}
}

// note-deleted 负载用 {noteId, boardId}
func TestNoteDeletedPayloadRouting(t *testing.T) {
	hub := NewHub(nil)
	origin := &fakeSession{id: 1}
	peer := &fakeSession{id: 2}

	hub.Register(origin)
	hub.Register(peer)
	hub.Join(peer, 7)

	payload, _ := json.Marshal(types.NoteDeletedPayload{NoteID: 13, BoardID: 7})
	hub.Announce(types.EventNoteDeleted, payload, origin.ID())

	if len(peer.received) != 1 || peer.received[0].Event != types.EventNoteDeleted {
		t.Fatalf("expected note-deleted for room 7, got %v", peer.events())
	}
}

// 看板事件全局投递，从未 join 过任何房间的会话也能收到
func TestBoardEventReachesUnjoinedSessions(t *testing.T) {
	hub := NewHub(nil)
	origin := &fakeSession{id: 1}
	idle := &fakeSession{id: 2}

	hub.Register(origin)
	hub.Register(idle)

	payload, _ := json.Marshal(types.BoardDeletedPayload{BoardID: 9})
	hub.Announce(types.EventBoardDeleted, payload, origin.ID())

	if len(idle.received) != 1 || idle.received[0].Event != types.EventBoardDeleted {
		t.Fatalf("idle session expected board-deleted, got %v", idle.events())
	}
}

// 断开连接后不再接收任何事件
func TestDisconnectCleansMembership(t *testing.T) {
	hub := NewHub(nil)
	s := &fakeSession{id: 1}
	origin := &fakeSession{id: 2}

	hub.Register(s)
	hub.Register(origin)
	hub.Join(s, 7)
	hub.Disconnect(s)

	hub.Announce(types.EventNoteCreated, noteJSON(t, &models.Note{ID: 14, BoardID: 7}), origin.ID())
	payload, _ := json.Marshal(types.BoardDeletedPayload{BoardID: 7})
	hub.Announce(types.EventBoardDeleted, payload, origin.ID())

	if len(s.events()) != 0 {
		t.Fatalf("disconnected session received events: %v", s.events())
	}
}

// 端到端场景：A 建看板 → B 收到 board-created；A 在板上建便签 → 已 join 的 B 收到 note-created
func TestCreateBoardThenNoteScenario(t *testing.T) {
	hub := NewHub(nil)
	clientA := &fakeSession{id: 1}
	clientB := &fakeSession{id: 2}

	hub.Register(clientA)
	hub.Register(clientB)

	board := &models.Board{ID: 7, Name: "Travel", Category: "dreams", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	hub.Announce(types.EventBoardCreated, boardJSON(t, board), clientA.ID())

	if len(clientB.received) != 1 {
		t.Fatalf("client B expected board-created, got %v", clientB.events())
	}
	var gotBoard models.Board
	if err := json.Unmarshal(clientB.received[0].Data, &gotBoard); err != nil {
		t.Fatalf("unmarshal board payload: %v", err)
	}
	if gotBoard.ID != 7 || gotBoard.Name != "Travel" || gotBoard.Category != "dreams" {
		t.Fatalf("board payload mismatch: %+v", gotBoard)
	}

	hub.Join(clientB, 7)

	note := &models.Note{ID: 21, BoardID: 7, Content: "Paris", PositionX: 10, PositionY: 20}
	hub.Announce(types.EventNoteCreated, noteJSON(t, note), clientA.ID())

	if len(clientB.received) != 2 {
		t.Fatalf("client B expected note-created, got %v", clientB.events())
	}
	var gotNote models.Note
	if err := json.Unmarshal(clientB.received[1].Data, &gotNote); err != nil {
		t.Fatalf("unmarshal note payload: %v", err)
	}
	if gotNote.ID != 21 || gotNote.BoardID != 7 || gotNote.Content != "Paris" {
		t.Fatalf("note payload mismatch: %+v", gotNote)
	}
	if len(clientA.events()) != 0 {
		t.Fatalf("origin session should not receive its own events: %v", clientA.events())
	}
}
