package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bubble2048/internal/core"
)

// Terminal cells are roughly twice as tall as wide, so vertical drags
// need fewer cells to count.
const (
	DefaultSwipeThresholdX = 4
	DefaultSwipeThresholdY = 2
)

// SwipeTracker turns a left-button mouse drag into a directional action.
type SwipeTracker struct {
	thresholdX int
	thresholdY int
	pressed    bool
	startX     int
	startY     int
}

// NewSwipeTracker creates a tracker with the given minimum drag distances
// in cells. Non-positive values use the defaults.
func NewSwipeTracker(thresholdX, thresholdY int) *SwipeTracker {
	if thresholdX <= 0 {
		thresholdX = DefaultSwipeThresholdX
	}
	if thresholdY <= 0 {
		thresholdY = DefaultSwipeThresholdY
	}
	return &SwipeTracker{thresholdX: thresholdX, thresholdY: thresholdY}
}

// Handle consumes a mouse event. It returns a direction action when a
// drag is released past the threshold, otherwise ActionNone.
func (s *SwipeTracker) Handle(msg tea.MouseMsg) core.Action {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			s.pressed = true
			s.startX, s.startY = msg.X, msg.Y
		}
		return core.ActionNone

	case tea.MouseActionRelease:
		if !s.pressed {
			return core.ActionNone
		}
		s.pressed = false
		return s.classify(msg.X-s.startX, msg.Y-s.startY)
	}

	return core.ActionNone
}

// classify picks the dominant axis of a drag, scaled by the thresholds.
func (s *SwipeTracker) classify(dx, dy int) core.Action {
	ax, ay := core.Abs(dx), core.Abs(dy)
	if ax < s.thresholdX && ay < s.thresholdY {
		return core.ActionNone
	}

	// Compare in threshold units; ties go horizontal.
	if ax*s.thresholdY >= ay*s.thresholdX {
		if dx > 0 {
			return core.ActionRight
		}
		return core.ActionLeft
	}
	if dy > 0 {
		return core.ActionDown
	}
	return core.ActionUp
}

// Reset forgets a drag in progress.
func (s *SwipeTracker) Reset() {
	s.pressed = false
}
