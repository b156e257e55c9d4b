package socket

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"Moodgraph/dao/cache"
	"Moodgraph/pkg/log"
	"Moodgraph/types"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Session 一条实时通道连接
type Session interface {
	ID() int64
	Send(msg *types.Message) bool
}

// room 一个看板房间的成员集合
type room struct {
	mu      sync.RWMutex
	members map[int64]Session
}

func newRoom() *room {
	return &room{members: make(map[int64]Session)}
}

func (r *room) add(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[s.ID()] = s
}

func (r *room) remove(sid int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, sid)
}

func (r *room) each(fn func(s Session)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.members {
		fn(s)
	}
}

// Hub 房间广播中心
//
// 两类主题：
//   - board:{id}  便签事件，只投递给 join 进该房间的会话
//   - boards:*    看板事件，投递给全部会话（侧边栏全局可见）
//
// 发起方不接收自己的事件，它已经拿到了 REST 响应
type Hub struct {
	sessions   cmap.ConcurrentMap[string, Session]
	rooms      cmap.ConcurrentMap[string, *room]
	membership cmap.ConcurrentMap[string, int64] // 会话当前所在房间，一个会话至多一个
	presence   *cache.RoomStorage
}

func NewHub(presence *cache.RoomStorage) *Hub {
	return &Hub{
		sessions:   cmap.New[Session](),
		rooms:      cmap.New[*room](),
		membership: cmap.New[int64](),
		presence:   presence,
	}
}

// Register 连接建立
func (h *Hub) Register(s Session) {
	h.sessions.Set(sessionKey(s.ID()), s)
}

// Join 进入看板房间，先退出之前所在的房间，重复加入是幂等的
// 不校验看板是否存在，房间成员关系与看板生命周期无关
func (h *Hub) Join(s Session, boardID int64) {
	if prev, ok := h.membership.Get(sessionKey(s.ID())); ok {
		if prev == boardID {
			return
		}
		h.Leave(s, prev)
	}

	r := h.rooms.Upsert(roomKey(boardID), nil, func(exist bool, cur, _ *room) *room {
		if !exist {
			cur = newRoom()
		}
		return cur
	})
	r.add(s)
	h.membership.Set(sessionKey(s.ID()), boardID)

	if h.presence != nil {
		if err := h.presence.Bind(context.TODO(), boardID, s.ID()); err != nil {
			log.L.Warn("presence bind failed", zap.Int64("board_id", boardID), zap.Error(err))
		}
	}
}

// Leave 退出指定房间，不在房间内则为空操作
func (h *Hub) Leave(s Session, boardID int64) {
	if r, ok := h.rooms.Get(roomKey(boardID)); ok {
		r.remove(s.ID())
	}
	if cur, ok := h.membership.Get(sessionKey(s.ID())); ok && cur == boardID {
		h.membership.Remove(sessionKey(s.ID()))
	}

	if h.presence != nil {
		if err := h.presence.UnBind(context.TODO(), boardID, s.ID()); err != nil {
			log.L.Warn("presence unbind failed", zap.Int64("board_id", boardID), zap.Error(err))
		}
	}
}

// Disconnect 连接断开，清理全部房间成员关系
func (h *Hub) Disconnect(s Session) {
	if boardID, ok := h.membership.Get(sessionKey(s.ID())); ok {
		h.Leave(s, boardID)
	}
	h.sessions.Remove(sessionKey(s.ID()))
}

// Announce 转发变更事件
//
// 便签事件从负载里取出所属看板，只投递给该房间内除发起方以外的成员；
// 负载缺看板 ID 时直接丢弃。看板事件投递给除发起方以外的全部会话。
func (h *Hub) Announce(kind types.EventKind, data json.RawMessage, originID int64) {
	msg := &types.Message{Event: kind, Data: data}

	switch {
	case kind.IsNoteEvent():
		boardID := noteBoardID(kind, data)
		if boardID <= 0 {
			log.L.Debug("drop note event without board id", zap.String("event", string(kind)))
			return
		}
		r, ok := h.rooms.Get(roomKey(boardID))
		if !ok {
			return
		}
		r.each(func(s Session) {
			if s.ID() == originID {
				return
			}
			if !s.Send(msg) {
				log.L.Debug("drop event for slow session", zap.Int64("session_id", s.ID()))
			}
		})

	case kind.IsBoardEvent():
		for item := range h.sessions.IterBuffered() {
			s := item.Val
			if s.ID() == originID {
				continue
			}
			if !s.Send(msg) {
				log.L.Debug("drop event for slow session", zap.Int64("session_id", s.ID()))
			}
		}

	default:
		log.L.Debug("drop unknown event", zap.String("event", string(kind)))
	}
}

// 创建和更新带的是完整记录（board_id），删除带的是 {noteId, boardId}
func noteBoardID(kind types.EventKind, data json.RawMessage) int64 {
	if kind == types.EventNoteDeleted {
		return gjson.GetBytes(data, "boardId").Int()
	}
	return gjson.GetBytes(data, "board_id").Int()
}

func sessionKey(sid int64) string {
	return strconv.FormatInt(sid, 10)
}

func roomKey(boardID int64) string {
	return strconv.FormatInt(boardID, 10)
}
