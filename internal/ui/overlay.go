package ui

import tea "github.com/charmbracelet/bubbletea"

// Preferred panel size in terminal cells. A smaller terminal shrinks the panel.
const (
	panelWidth  = 46
	panelHeight = 12
)

// overlay tracks where the panel sits inside the terminal and the drag state.
// It is only touched from the Bubble Tea update loop.
type overlay struct {
	movable  bool
	dragging bool

	// Pointer position and panel origin captured on button press.
	pressX, pressY   int
	originX, originY int

	x, y int

	// Panel size after the last fit; zero means the preferred size.
	w, h int
}

// size returns the panel's current width and height in cells.
func (o overlay) size() (int, int) {
	w, h := panelWidth, panelHeight
	if o.w > 0 {
		w = o.w
	}
	if o.h > 0 {
		h = o.h
	}
	return w, h
}

// toggleMovable flips drag mode. Turning it off ends any drag in progress.
func (o *overlay) toggleMovable() {
	o.movable = !o.movable
	if !o.movable {
		o.dragging = false
	}
}

// contains reports whether the cell (cx, cy) is on the panel.
func (o overlay) contains(cx, cy int) bool {
	w, h := o.size()
	return cx >= o.x && cx < o.x+w && cy >= o.y && cy < o.y+h
}

// handleMouse applies a mouse event within a width x height terminal and
// reports whether the panel moved. Events are ignored unless drag mode is on.
func (o *overlay) handleMouse(msg tea.MouseMsg, width, height int) bool {
	if !o.movable {
		return false
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !o.contains(msg.X, msg.Y) {
			return false
		}
		o.dragging = true
		o.pressX, o.pressY = msg.X, msg.Y
		o.originX, o.originY = o.x, o.y
		return false
	case tea.MouseActionMotion:
		if !o.dragging {
			return false
		}
		w, h := o.size()
		nx := clamp(o.originX+msg.X-o.pressX, 0, width-w)
		ny := clamp(o.originY+msg.Y-o.pressY, 0, height-h)
		if nx == o.x && ny == o.y {
			return false
		}
		o.x, o.y = nx, ny
		return true
	case tea.MouseActionRelease:
		o.dragging = false
	}
	return false
}

// fit shrinks the panel to a terminal smaller than the preferred size and
// keeps it inside the terminal after a resize.
func (o *overlay) fit(width, height int) {
	o.w = clamp(width, 1, panelWidth)
	o.h = clamp(height, 1, panelHeight)
	o.x = clamp(o.x, 0, width-o.w)
	o.y = clamp(o.y, 0, height-o.h)
}
