package desktop

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const (
	// _MOTIF_WM_HINTS flags field: only the decorations field is meaningful.
	motifHintsDecorations = 1 << 1

	netWMStateAdd      = 1
	netWMSourceApp     = 1
	substructureEvents = xproto.EventMaskSubstructureNotify | xproto.EventMaskSubstructureRedirect
)

// x11Surface drives an existing X11 window, normally the terminal hosting the
// widget, through EWMH hints.
type x11Surface struct {
	conn   *xgb.Conn
	window xproto.Window
	root   xproto.Window
}

func newX11Surface(windowID uint32) (*x11Surface, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect x11: %w", err)
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	return &x11Surface{conn: conn, window: xproto.Window(windowID), root: root}, nil
}

func (s *x11Surface) Name() string { return "x11" }

func (s *x11Surface) Close() error {
	s.conn.Close()
	return nil
}

// PinToDesktopBackground applies every hint in order and stops at the first
// failure.
func (s *x11Surface) PinToDesktopBackground() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"remove decorations", s.removeDecorations},
		{"resize", s.resize},
		{"set opacity", s.setOpacity},
		{"set wm state", s.keepBelow},
		{"restack", s.lowerToBottom},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return nil
}

func (s *x11Surface) atom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(s.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

func (s *x11Surface) removeDecorations() error {
	hints, err := s.atom("_MOTIF_WM_HINTS")
	if err != nil {
		return err
	}
	values := motifHints()
	return xproto.ChangePropertyChecked(s.conn, xproto.PropModeReplace, s.window,
		hints, hints, 32, uint32(len(values)), encode32(values)).Check()
}

func (s *x11Surface) resize() error {
	return xproto.ConfigureWindowChecked(s.conn, s.window,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{WidgetWidth, WidgetHeight}).Check()
}

func (s *x11Surface) setOpacity() error {
	opacity, err := s.atom("_NET_WM_WINDOW_OPACITY")
	if err != nil {
		return err
	}
	values := []uint32{opacityValue(WidgetOpacity)}
	return xproto.ChangePropertyChecked(s.conn, xproto.PropModeReplace, s.window,
		opacity, xproto.AtomCardinal, 32, 1, encode32(values)).Check()
}

// keepBelow asks the window manager to keep the window under everything else,
// on every workspace, and out of the taskbar and pager.
func (s *x11Surface) keepBelow() error {
	wmState, err := s.atom("_NET_WM_STATE")
	if err != nil {
		return err
	}
	pairs := [][2]string{
		{"_NET_WM_STATE_BELOW", "_NET_WM_STATE_STICKY"},
		{"_NET_WM_STATE_SKIP_TASKBAR", "_NET_WM_STATE_SKIP_PAGER"},
	}
	for _, pair := range pairs {
		first, err := s.atom(pair[0])
		if err != nil {
			return err
		}
		second, err := s.atom(pair[1])
		if err != nil {
			return err
		}
		ev := xproto.ClientMessageEvent{
			Format: 32,
			Window: s.window,
			Type:   wmState,
			Data:   xproto.ClientMessageDataUnionData32New(wmStateData(first, second)),
		}
		if err := xproto.SendEventChecked(s.conn, false, s.root, substructureEvents, string(ev.Bytes())).Check(); err != nil {
			return fmt.Errorf("send %s: %w", pair[0], err)
		}
	}
	return nil
}

func (s *x11Surface) lowerToBottom() error {
	return xproto.ConfigureWindowChecked(s.conn, s.window,
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeBelow}).Check()
}

// motifHints returns flags, functions, decorations, input mode and status with
// all decorations turned off.
func motifHints() []uint32 {
	return []uint32{motifHintsDecorations, 0, 0, 0, 0}
}

func wmStateData(first, second xproto.Atom) []uint32 {
	return []uint32{netWMStateAdd, uint32(first), uint32(second), netWMSourceApp, 0}
}

// opacityValue scales a 0..1 opacity to the CARDINAL range compositors expect.
func opacityValue(opacity float64) uint32 {
	switch {
	case opacity <= 0:
		return 0
	case opacity >= 1:
		return 0xffffffff
	}
	return uint32(opacity * float64(0xffffffff))
}

func encode32(values []uint32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		xgb.Put32(buf[i*4:], v)
	}
	return buf
}
