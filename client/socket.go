package client

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"Moodgraph/models"
	"Moodgraph/pkg/log"
	"Moodgraph/types"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Handlers 实时事件回调表，连接建立时一次性固定，不支持动态增删
type Handlers struct {
	OnNoteCreated  func(note *models.Note)
	OnNoteUpdated  func(note *models.Note)
	OnNoteDeleted  func(payload types.NoteDeletedPayload)
	OnBoardCreated func(board *models.Board)
	OnBoardUpdated func(board *models.Board)
	OnBoardDeleted func(payload types.BoardDeletedPayload)
}

// Session 客户端侧的实时通道连接
// 单连接上的消息保持 FIFO，读循环串行派发回调
type Session struct {
	conn     *websocket.Conn
	handlers Handlers

	writeMu sync.Mutex
	closed  atomic.Bool
}

// DialSession 建立实时通道连接并启动读循环
func DialSession(ctx context.Context, wsURL string, handlers Handlers) (*Session, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, err
	}

	s := &Session{conn: conn, handlers: handlers}
	go s.readLoop()
	return s, nil
}

func (s *Session) readLoop() {
	defer s.Close()

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		s.dispatch(raw)
	}
}

func (s *Session) dispatch(raw []byte) {
	event := types.EventKind(gjson.GetBytes(raw, "event").String())
	data := []byte(gjson.GetBytes(raw, "data").Raw)

	switch event {
	case types.EventNoteCreated, types.EventNoteUpdated:
		var note models.Note
		if err := json.Unmarshal(data, &note); err != nil {
			return
		}
		if event == types.EventNoteCreated && s.handlers.OnNoteCreated != nil {
			s.handlers.OnNoteCreated(&note)
		}
		if event == types.EventNoteUpdated && s.handlers.OnNoteUpdated != nil {
			s.handlers.OnNoteUpdated(&note)
		}

	case types.EventNoteDeleted:
		var payload types.NoteDeletedPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return
		}
		if s.handlers.OnNoteDeleted != nil {
			s.handlers.OnNoteDeleted(payload)
		}

	case types.EventBoardCreated, types.EventBoardUpdated:
		var board models.Board
		if err := json.Unmarshal(data, &board); err != nil {
			return
		}
		if event == types.EventBoardCreated && s.handlers.OnBoardCreated != nil {
			s.handlers.OnBoardCreated(&board)
		}
		if event == types.EventBoardUpdated && s.handlers.OnBoardUpdated != nil {
			s.handlers.OnBoardUpdated(&board)
		}

	case types.EventBoardDeleted:
		var payload types.BoardDeletedPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return
		}
		if s.handlers.OnBoardDeleted != nil {
			s.handlers.OnBoardDeleted(payload)
		}

	case types.EventPong:
		// 心跳应答，无需处理

	default:
		log.L.Debug("unknown ws event", zap.String("event", string(event)))
	}
}

// JoinBoard 进入看板房间，服务端会先把会话移出旧房间
func (s *Session) JoinBoard(boardID int64) error {
	return s.emit(types.EventJoinBoard, boardID)
}

func (s *Session) LeaveBoard(boardID int64) error {
	return s.emit(types.EventLeaveBoard, boardID)
}

func (s *Session) EmitNoteCreated(note *models.Note) error {
	return s.emit(types.EventNoteCreated, note)
}

func (s *Session) EmitNoteUpdated(note *models.Note) error {
	return s.emit(types.EventNoteUpdated, note)
}

func (s *Session) EmitNoteDeleted(noteID, boardID int64) error {
	return s.emit(types.EventNoteDeleted, types.NoteDeletedPayload{NoteID: noteID, BoardID: boardID})
}

func (s *Session) EmitBoardCreated(board *models.Board) error {
	return s.emit(types.EventBoardCreated, board)
}

func (s *Session) EmitBoardUpdated(board *models.Board) error {
	return s.emit(types.EventBoardUpdated, board)
}

func (s *Session) EmitBoardDeleted(boardID int64) error {
	return s.emit(types.EventBoardDeleted, types.BoardDeletedPayload{BoardID: boardID})
}

func (s *Session) Ping() error {
	return s.emit(types.EventPing, nil)
}

func (s *Session) emit(event types.EventKind, data any) error {
	if s.closed.Load() {
		return websocket.ErrCloseSent
	}

	msg := types.Message{Event: event}
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return err
		}
		msg.Data = payload
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(msg)
}

func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	_ = s.conn.Close()
}
