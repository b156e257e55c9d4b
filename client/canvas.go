package client

import (
	"context"
	"math"
	"time"

	"Moodgraph/pkg/log"

	"go.uber.org/zap"
)

// PositionCommitter 拖拽落点的提交端，通常就是 *SyncEngine
type PositionCommitter interface {
	MoveNote(ctx context.Context, noteID int64, x, y float64) error
}

// CanvasOptions 点击与拖拽的判定阈值
type CanvasOptions struct {
	// 按下到松开不超过这个时长才可能判定为点击
	ClickMaxDuration time.Duration
	// 按下到松开的位移不超过这个像素数才可能判定为点击
	ClickMaxTravel float64
}

func DefaultCanvasOptions() CanvasOptions {
	return CanvasOptions{
		ClickMaxDuration: 200 * time.Millisecond,
		ClickMaxTravel:   5,
	}
}

type dragState struct {
	noteID  int64
	startX  float64
	startY  float64
	originX float64
	originY float64
	started time.Time
}

// Canvas 画布手势判定
//
// 同一次按下只产生一种结果：短促且几乎没有位移的算点击（选中便签），
// 其余算拖拽并把落点提交一次。同一时间只跟踪一次拖拽。
type Canvas struct {
	committer PositionCommitter
	opts      CanvasOptions

	drag *dragState

	// 点击判定的通知口，可为空
	OnSelect func(noteID int64)
}

func NewCanvas(committer PositionCommitter, opts CanvasOptions) *Canvas {
	if opts.ClickMaxDuration <= 0 {
		opts.ClickMaxDuration = DefaultCanvasOptions().ClickMaxDuration
	}
	if opts.ClickMaxTravel <= 0 {
		opts.ClickMaxTravel = DefaultCanvasOptions().ClickMaxTravel
	}
	return &Canvas{committer: committer, opts: opts}
}

// BeginDrag 在便签上按下，pointerX/Y 是指针位置，noteX/Y 是便签当前位置
// 已有未结束的拖拽时忽略本次按下
func (c *Canvas) BeginDrag(noteID int64, pointerX, pointerY, noteX, noteY float64) {
	if c.drag != nil {
		return
	}
	c.drag = &dragState{
		noteID:  noteID,
		startX:  pointerX,
		startY:  pointerY,
		originX: noteX,
		originY: noteY,
		started: time.Now(),
	}
}

// Dragging 是否有进行中的拖拽
func (c *Canvas) Dragging() bool {
	return c.drag != nil
}

// DragPosition 进行中拖拽的便签实时位置，用于渲染跟手效果
func (c *Canvas) DragPosition(pointerX, pointerY float64) (x, y float64, ok bool) {
	if c.drag == nil {
		return 0, 0, false
	}
	return c.drag.originX + (pointerX - c.drag.startX), c.drag.originY + (pointerY - c.drag.startY), true
}

// EndDrag 松开指针，完成本次手势判定
//
// 时长和位移都在阈值内的判定为点击，只触发选中回调，不提交位置。
// 否则判定为拖拽，落点和起点不同才提交，提交恰好一次。
func (c *Canvas) EndDrag(ctx context.Context, pointerX, pointerY float64) {
	drag := c.drag
	if drag == nil {
		return
	}
	c.drag = nil

	elapsed := time.Since(drag.started)
	travel := math.Hypot(pointerX-drag.startX, pointerY-drag.startY)

	if elapsed <= c.opts.ClickMaxDuration && travel <= c.opts.ClickMaxTravel {
		if c.OnSelect != nil {
			c.OnSelect(drag.noteID)
		}
		return
	}

	x := drag.originX + (pointerX - drag.startX)
	y := drag.originY + (pointerY - drag.startY)
	if x == drag.originX && y == drag.originY {
		return
	}

	if err := c.committer.MoveNote(ctx, drag.noteID, x, y); err != nil {
		log.L.Warn("commit note position failed", zap.Int64("note_id", drag.noteID), zap.Error(err))
	}
}

// CancelDrag 放弃进行中的拖拽，不提交也不选中
func (c *Canvas) CancelDrag() {
	c.drag = nil
}
