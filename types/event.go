package types

import "encoding/json"

// EventKind 实时通道事件类型，连接建立后即固定，不支持动态注册
type EventKind string

const (
	EventJoinBoard    EventKind = "join-board"
	EventLeaveBoard   EventKind = "leave-board"
	EventNoteCreated  EventKind = "note-created"
	EventNoteUpdated  EventKind = "note-updated"
	EventNoteDeleted  EventKind = "note-deleted"
	EventBoardCreated EventKind = "board-created"
	EventBoardUpdated EventKind = "board-updated"
	EventBoardDeleted EventKind = "board-deleted"
	EventPing         EventKind = "ping"
	EventPong         EventKind = "pong"
)

// IsNoteEvent 便签事件只投递到所属看板房间
func (k EventKind) IsNoteEvent() bool {
	return k == EventNoteCreated || k == EventNoteUpdated || k == EventNoteDeleted
}

// IsBoardEvent 看板事件投递到全部会话，侧边栏对所有人可见
func (k EventKind) IsBoardEvent() bool {
	return k == EventBoardCreated || k == EventBoardUpdated || k == EventBoardDeleted
}

// Message 实时通道消息信封
type Message struct {
	Event EventKind       `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NoteDeletedPayload 删除便签广播负载
type NoteDeletedPayload struct {
	NoteID  int64 `json:"noteId"`
	BoardID int64 `json:"boardId"`
}

// BoardDeletedPayload 删除看板广播负载
type BoardDeletedPayload struct {
	BoardID int64 `json:"boardId"`
}
