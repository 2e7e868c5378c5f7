// Package mouse provides hit testing and drag tracking for bubbletea mouse
// events. A HitMap maps screen rectangles to named regions; a Handler turns
// raw mouse messages into higher-level actions (click, hover, scroll, drag)
// with drag deltas relative to the press position.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// doubleClickWindow is the maximum gap between two clicks on the same
// region for the second to count as a double-click.
const doubleClickWindow = 400 * time.Millisecond

// Rect is a screen-space rectangle. Width and height are exclusive: a rect
// at x=10 with w=20 covers columns 10 through 29.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named hit target with optional associated data.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the hit regions for the current frame. Regions added later
// take priority over earlier ones, so overlays register after backgrounds.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a hit region.
func (hm *HitMap) AddRect(id string, x, y, w, h int, data any) {
	hm.regions = append(hm.regions, Region{
		ID:   id,
		Rect: Rect{X: x, Y: y, W: w, H: h},
		Data: data,
	})
}

// Test returns the highest-priority region containing the point, or nil.
func (hm *HitMap) Test(x, y int) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].Rect.Contains(x, y) {
			return &hm.regions[i]
		}
	}
	return nil
}

// Regions returns all registered regions.
func (hm *HitMap) Regions() []Region {
	return hm.regions
}

// Clear removes all regions. Called before each render pass.
func (hm *HitMap) Clear() {
	hm.regions = hm.regions[:0]
}

// ActionType classifies the result of handling a mouse message.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
)

// Action is the interpreted result of a mouse message.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
	// DragDX and DragDY are the deltas from the drag start position,
	// populated for ActionDrag.
	DragDX, DragDY int
}

// ClickResult carries the hit region of a click plus double-click detection.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// dragState tracks an in-progress drag.
type dragState struct {
	active     bool
	startX     int
	startY     int
	region     string
	startValue int
}

// Handler combines a hit map with click and drag state.
type Handler struct {
	HitMap *HitMap

	drag dragState

	lastClickAt     time.Time
	lastClickRegion string
}

// NewHandler returns a Handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// Clear resets the hit map for a new frame. Drag state survives, since a
// drag spans many frames.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleClick resolves a press position to a region and detects
// double-clicks: a second click on the same region within the double-click
// window. The detector resets after firing so a triple click is not two
// doubles.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)

	result := ClickResult{Region: region}
	if region != nil &&
		region.ID == h.lastClickRegion &&
		time.Since(h.lastClickAt) <= doubleClickWindow {
		result.IsDoubleClick = true
		h.lastClickRegion = ""
		h.lastClickAt = time.Time{}
		return result
	}

	if region != nil {
		h.lastClickRegion = region.ID
	} else {
		h.lastClickRegion = ""
	}
	h.lastClickAt = time.Now()
	return result
}

// StartDrag begins tracking a drag from the given position. regionID names
// what is being dragged; startValue is the caller's value at drag start
// (e.g. a pane's pixel size) so deltas can be applied to it.
func (h *Handler) StartDrag(x, y int, regionID string, startValue int) {
	h.drag = dragState{
		active:     true,
		startX:     x,
		startY:     y,
		region:     regionID,
		startValue: startValue,
	}
}

// IsDragging reports whether a drag is in progress.
func (h *Handler) IsDragging() bool {
	return h.drag.active
}

// DragRegion returns the id passed to StartDrag.
func (h *Handler) DragRegion() string {
	return h.drag.region
}

// DragStartValue returns the value captured at drag start.
func (h *Handler) DragStartValue() int {
	return h.drag.startValue
}

// DragDelta returns the offset of the given position from the drag start.
func (h *Handler) DragDelta(x, y int) (dx, dy int) {
	return x - h.drag.startX, y - h.drag.startY
}

// EndDrag stops tracking the current drag.
func (h *Handler) EndDrag() {
	h.drag = dragState{}
}

// HandleMouse interprets a raw mouse message. Wheel presses become scroll
// actions (shifted wheel scrolls horizontally), motion becomes a drag
// update or a hover, release ends a drag, and a left press becomes a click.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if msg.Shift {
				return Action{Type: ActionScrollLeft, X: msg.X, Y: msg.Y}
			}
			return Action{Type: ActionScrollUp, X: msg.X, Y: msg.Y}
		case tea.MouseButtonWheelDown:
			if msg.Shift {
				return Action{Type: ActionScrollRight, X: msg.X, Y: msg.Y}
			}
			return Action{Type: ActionScrollDown, X: msg.X, Y: msg.Y}
		case tea.MouseButtonLeft:
			result := h.HandleClick(msg.X, msg.Y)
			return Action{Type: ActionClick, Region: result.Region, X: msg.X, Y: msg.Y}
		}
		return Action{Type: ActionNone, X: msg.X, Y: msg.Y}

	case tea.MouseActionMotion:
		if h.drag.active {
			dx, dy := h.DragDelta(msg.X, msg.Y)
			return Action{Type: ActionDrag, X: msg.X, Y: msg.Y, DragDX: dx, DragDY: dy}
		}
		return Action{Type: ActionHover, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}

	case tea.MouseActionRelease:
		if h.drag.active {
			h.EndDrag()
			return Action{Type: ActionDragEnd, X: msg.X, Y: msg.Y}
		}
		return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
	}

	return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
}
