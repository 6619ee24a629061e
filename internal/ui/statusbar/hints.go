package statusbar

import "github.com/riordanpawley/toastkit/internal/types"

// GetHints returns the fallback keybinding hints for mode, used when no
// key map is attached
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "t: toggle  n: notify  d: dismiss  ?: help  q: quit"
	case types.ModeHelp:
		return "j/k: scroll  Esc: close"
	default:
		return ""
	}
}
