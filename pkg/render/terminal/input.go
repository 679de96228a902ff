package terminal

import "github.com/gdamore/tcell/v2"

// QuitRequested reports whether ev asks to leave: q, Esc or Ctrl+C.
func QuitRequested(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q' || key.Rune() == 'Q'
	}
	return false
}

// Listen polls screen events until a quit request, then calls quit. Resizes
// resync the screen. It returns early when the screen is finalized.
func Listen(screen tcell.Screen, quit func()) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		default:
			if QuitRequested(ev) {
				quit()
				return
			}
		}
	}
}
