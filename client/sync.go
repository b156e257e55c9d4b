package client

import (
	"context"
	"sync"

	"Moodgraph/models"
	"Moodgraph/pkg/log"
	"Moodgraph/types"

	"go.uber.org/zap"
)

// SyncEngine 客户端本地投影
//
// 维护两份集合：全部看板（按最近操作排序）和当前看板的便签。
// 两路输入用同一套合并规则：自己发起的 REST 响应、别人发起的广播事件。
// 本地不做乐观写入，一条记录只有在服务端确认后才会出现在投影里。
type SyncEngine struct {
	api     *API
	session *Session

	mu          sync.Mutex
	boards      []*models.Board
	notes       []*models.Note
	activeBoard int64
}

func NewSyncEngine(api *API) *SyncEngine {
	return &SyncEngine{api: api}
}

// Connect 建立实时通道，回调表在这里一次性固定
func (e *SyncEngine) Connect(ctx context.Context, wsURL string) error {
	session, err := DialSession(ctx, wsURL, Handlers{
		OnNoteCreated:  e.onNoteCreated,
		OnNoteUpdated:  e.onNoteUpdated,
		OnNoteDeleted:  e.onNoteDeleted,
		OnBoardCreated: e.onBoardCreated,
		OnBoardUpdated: e.onBoardUpdated,
		OnBoardDeleted: e.onBoardDeleted,
	})
	if err != nil {
		return err
	}
	e.session = session
	return nil
}

func (e *SyncEngine) Close() {
	if e.session != nil {
		e.session.Close()
	}
}

// Bootstrap 拉取看板列表，有看板时自动选中第一个
func (e *SyncEngine) Bootstrap(ctx context.Context) error {
	boards, err := e.api.ListBoards(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.boards = boards
	e.mu.Unlock()

	if len(boards) > 0 {
		return e.SelectBoard(ctx, boards[0].ID)
	}
	return nil
}

// Boards 看板投影的快照
func (e *SyncEngine) Boards() []*models.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*models.Board, len(e.boards))
	copy(out, e.boards)
	return out
}

// Notes 当前看板便签投影的快照
func (e *SyncEngine) Notes() []*models.Note {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*models.Note, len(e.notes))
	copy(out, e.notes)
	return out
}

// ActiveBoard 当前选中的看板，0 表示未选中
func (e *SyncEngine) ActiveBoard() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeBoard
}

// SelectBoard 切换看板：丢弃当前便签投影，重新拉取，进入新房间
// 切换期间到达的旧看板事件不做缓冲
func (e *SyncEngine) SelectBoard(ctx context.Context, boardID int64) error {
	e.mu.Lock()
	e.activeBoard = boardID
	e.notes = nil
	e.mu.Unlock()

	notes, err := e.api.ListNotes(ctx, boardID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	// 拉取期间又切走了，丢弃这次结果
	if e.activeBoard == boardID {
		e.notes = notes
	}
	e.mu.Unlock()

	if e.session != nil {
		if err := e.session.JoinBoard(boardID); err != nil {
			log.L.Debug("join board failed", zap.Int64("board_id", boardID), zap.Error(err))
		}
	}
	return nil
}

// CreateBoard 建看板并选中它，成功后广播一次 board-created
func (e *SyncEngine) CreateBoard(ctx context.Context, name, category string) (*models.Board, error) {
	board, err := e.api.CreateBoard(ctx, &types.CreateBoardRequest{Name: name, Category: category})
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.upsertBoard(board)
	e.mu.Unlock()

	e.announce(func(s *Session) error { return s.EmitBoardCreated(board) })

	if err := e.SelectBoard(ctx, board.ID); err != nil {
		return board, err
	}
	return board, nil
}

func (e *SyncEngine) UpdateBoard(ctx context.Context, boardID int64, req *types.UpdateBoardRequest) (*models.Board, error) {
	board, err := e.api.UpdateBoard(ctx, boardID, req)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.replaceBoard(board)
	e.mu.Unlock()

	e.announce(func(s *Session) error { return s.EmitBoardUpdated(board) })
	return board, nil
}

// DeleteBoard 删看板，删的是当前看板时清空选中状态和便签投影
func (e *SyncEngine) DeleteBoard(ctx context.Context, boardID int64) error {
	if err := e.api.DeleteBoard(ctx, boardID); err != nil {
		return err
	}

	e.mu.Lock()
	e.removeBoard(boardID)
	e.mu.Unlock()

	e.announce(func(s *Session) error { return s.EmitBoardDeleted(boardID) })
	return nil
}

// CreateNote 在当前看板上建便签
func (e *SyncEngine) CreateNote(ctx context.Context, req *types.CreateNoteRequest) (*models.Note, error) {
	boardID := e.ActiveBoard()
	note, err := e.api.CreateNote(ctx, boardID, req)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.upsertNote(note)
	e.mu.Unlock()

	e.announce(func(s *Session) error { return s.EmitNoteCreated(note) })
	return note, nil
}

func (e *SyncEngine) UpdateNote(ctx context.Context, noteID int64, req *types.UpdateNoteRequest) (*models.Note, error) {
	note, err := e.api.UpdateNote(ctx, noteID, req)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.replaceNote(note)
	e.mu.Unlock()

	e.announce(func(s *Session) error { return s.EmitNoteUpdated(note) })
	return note, nil
}

// MoveNote 拖拽落点提交，位置之外的字段保持原值
func (e *SyncEngine) MoveNote(ctx context.Context, noteID int64, x, y float64) error {
	note, err := e.api.UpdateNotePosition(ctx, noteID, x, y)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.replaceNote(note)
	e.mu.Unlock()

	e.announce(func(s *Session) error { return s.EmitNoteUpdated(note) })
	return nil
}

func (e *SyncEngine) DeleteNote(ctx context.Context, noteID int64) error {
	boardID := e.ActiveBoard()
	if err := e.api.DeleteNote(ctx, noteID); err != nil {
		return err
	}

	e.mu.Lock()
	e.removeNote(noteID)
	e.mu.Unlock()

	e.announce(func(s *Session) error { return s.EmitNoteDeleted(noteID, boardID) })
	return nil
}

// 广播失败不回滚也不上抛，REST 已经成功，落后的客户端靠下次全量拉取追平
func (e *SyncEngine) announce(fn func(s *Session) error) {
	if e.session == nil {
		return
	}
	if err := fn(e.session); err != nil {
		log.L.Debug("announce failed", zap.Error(err))
	}
}

// ---- 广播事件入口，和 REST 响应走同一套合并规则 ----

func (e *SyncEngine) onNoteCreated(note *models.Note) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if note.BoardID != e.activeBoard {
		return
	}
	e.upsertNote(note)
}

func (e *SyncEngine) onNoteUpdated(note *models.Note) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if note.BoardID != e.activeBoard {
		return
	}
	e.replaceNote(note)
}

func (e *SyncEngine) onNoteDeleted(payload types.NoteDeletedPayload) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removeNote(payload.NoteID)
}

func (e *SyncEngine) onBoardCreated(board *models.Board) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.upsertBoard(board)
}

func (e *SyncEngine) onBoardUpdated(board *models.Board) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.replaceBoard(board)
}

func (e *SyncEngine) onBoardDeleted(payload types.BoardDeletedPayload) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removeBoard(payload.BoardID)
}

// ---- 合并规则，调用方必须持有 e.mu ----

// 创建：已存在同 ID 记录时不做任何事，否则头插（最近操作在前）
func (e *SyncEngine) upsertBoard(board *models.Board) {
	for _, b := range e.boards {
		if b.ID == board.ID {
			return
		}
	}
	e.boards = append([]*models.Board{board}, e.boards...)
}

// 更新：原位替换，找不到就丢弃，不触发补拉
func (e *SyncEngine) replaceBoard(board *models.Board) {
	for i, b := range e.boards {
		if b.ID == board.ID {
			e.boards[i] = board
			return
		}
	}
}

// 删除：按 ID 移除，不存在时为空操作
// 删的是当前看板时清空选中状态和便签投影，级联删除已让它们不可达
func (e *SyncEngine) removeBoard(boardID int64) {
	for i, b := range e.boards {
		if b.ID == boardID {
			e.boards = append(e.boards[:i], e.boards[i+1:]...)
			break
		}
	}
	if e.activeBoard == boardID {
		e.activeBoard = 0
		e.notes = nil
	}
}

func (e *SyncEngine) upsertNote(note *models.Note) {
	for _, n := range e.notes {
		if n.ID == note.ID {
			return
		}
	}
	e.notes = append([]*models.Note{note}, e.notes...)
}

func (e *SyncEngine) replaceNote(note *models.Note) {
	for i, n := range e.notes {
		if n.ID == note.ID {
			e.notes[i] = note
			return
		}
	}
}

func (e *SyncEngine) removeNote(noteID int64) {
	for i, n := range e.notes {
		if n.ID == noteID {
			e.notes = append(e.notes[:i], e.notes[i+1:]...)
			return
		}
	}
}
