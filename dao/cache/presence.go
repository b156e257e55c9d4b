package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RoomStorage 记录每个看板房间当前在看的会话集合
type RoomStorage struct {
	redis *redis.Client
}

func NewRoomStorage(redis *redis.Client) *RoomStorage {
	return &RoomStorage{redis: redis}
}

// Bind 会话进入房间
func (r *RoomStorage) Bind(ctx context.Context, boardID, sessionID int64) error {
	_, err := r.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, r.roomKey(boardID), sessionID)
		pipe.HSet(ctx, r.sessionKey(), strconv.FormatInt(sessionID, 10), boardID)
		return nil
	})
	return err
}

// UnBind 会话离开房间
func (r *RoomStorage) UnBind(ctx context.Context, boardID, sessionID int64) error {
	_, err := r.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SRem(ctx, r.roomKey(boardID), sessionID)
		pipe.HDel(ctx, r.sessionKey(), strconv.FormatInt(sessionID, 10))
		return nil
	})
	return err
}

// Viewers 房间内会话数量
func (r *RoomStorage) Viewers(ctx context.Context, boardID int64) (int64, error) {
	return r.redis.SCard(ctx, r.roomKey(boardID)).Result()
}

// Clear 看板被删除时清掉整个房间的在看记录
func (r *RoomStorage) Clear(ctx context.Context, boardID int64) error {
	return r.redis.Del(ctx, r.roomKey(boardID)).Err()
}

func (r *RoomStorage) roomKey(boardID int64) string {
	return fmt.Sprintf("ws:room:%d", boardID)
}

func (r *RoomStorage) sessionKey() string {
	return "ws:session:room"
}
