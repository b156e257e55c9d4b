package client

import (
	"context"
	"testing"
	"time"
)

type recordingCommitter struct {
	calls []moveCall
	err   error
}

type moveCall struct {
	noteID int64
	x, y   float64
}

func (r *recordingCommitter) MoveNote(_ context.Context, noteID int64, x, y float64) error {
	r.calls = append(r.calls, moveCall{noteID: noteID, x: x, y: y})
	return r.err
}

func TestQuickTapSelectsWithoutCommit(t *testing.T) {
	committer := &recordingCommitter{}
	canvas := NewCanvas(committer, DefaultCanvasOptions())

	var selected int64
	canvas.OnSelect = func(noteID int64) { selected = noteID }

	canvas.BeginDrag(42, 100, 100, 10, 20)
	canvas.drag.started = time.Now().Add(-150 * time.Millisecond)
	canvas.EndDrag(context.Background(), 102, 101)

	if selected != 42 {
		t.Fatalf("expected note 42 selected, got %d", selected)
	}
	if len(committer.calls) != 0 {
		t.Fatalf("click must not commit a position, got %d commits", len(committer.calls))
	}
}

func TestQuickButFarReleaseCommitsMove(t *testing.T) {
	committer := &recordingCommitter{}
	canvas := NewCanvas(committer, DefaultCanvasOptions())

	selected := false
	canvas.OnSelect = func(int64) { selected = true }

	canvas.BeginDrag(7, 100, 100, 10, 20)
	canvas.drag.started = time.Now().Add(-150 * time.Millisecond)
	canvas.EndDrag(context.Background(), 150, 100)

	if selected {
		t.Fatal("a 50px travel must not be treated as a click")
	}
	if len(committer.calls) != 1 {
		t.Fatalf("expected exactly one commit, got %d", len(committer.calls))
	}
	call := committer.calls[0]
	if call.noteID != 7 || call.x != 60 || call.y != 20 {
		t.Fatalf("unexpected commit %+v", call)
	}
}

func TestSlowHoldAtSamePositionSkipsCommit(t *testing.T) {
	committer := &recordingCommitter{}
	canvas := NewCanvas(committer, DefaultCanvasOptions())

	canvas.BeginDrag(7, 100, 100, 10, 20)
	canvas.drag.started = time.Now().Add(-400 * time.Millisecond)
	canvas.EndDrag(context.Background(), 100, 100)

	if len(committer.calls) != 0 {
		t.Fatalf("release at the start position must not commit, got %d commits", len(committer.calls))
	}
}

func TestSecondPressDuringDragIgnored(t *testing.T) {
	committer := &recordingCommitter{}
	canvas := NewCanvas(committer, DefaultCanvasOptions())

	canvas.BeginDrag(1, 0, 0, 0, 0)
	canvas.BeginDrag(2, 500, 500, 50, 50)

	canvas.drag.started = time.Now().Add(-time.Second)
	canvas.EndDrag(context.Background(), 30, 0)

	if len(committer.calls) != 1 || committer.calls[0].noteID != 1 {
		t.Fatalf("expected the first drag to win, got %+v", committer.calls)
	}
}

func TestCancelDragDropsGesture(t *testing.T) {
	committer := &recordingCommitter{}
	canvas := NewCanvas(committer, DefaultCanvasOptions())

	canvas.BeginDrag(1, 0, 0, 0, 0)
	canvas.CancelDrag()
	canvas.EndDrag(context.Background(), 300, 300)

	if len(committer.calls) != 0 {
		t.Fatalf("cancelled drag must not commit, got %d commits", len(committer.calls))
	}
	if canvas.Dragging() {
		t.Fatal("canvas should be idle after cancel")
	}
}

func TestDragPositionFollowsPointer(t *testing.T) {
	canvas := NewCanvas(&recordingCommitter{}, DefaultCanvasOptions())

	if _, _, ok := canvas.DragPosition(0, 0); ok {
		t.Fatal("no drag in progress, position must not be reported")
	}

	canvas.BeginDrag(9, 100, 100, 10, 20)
	x, y, ok := canvas.DragPosition(130, 90)
	if !ok || x != 40 || y != 10 {
		t.Fatalf("expected (40, 10), got (%v, %v, %v)", x, y, ok)
	}
}
