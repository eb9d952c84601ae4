package app

import "taskmaster-tui/internal/keys"

// Keys bundles the global keymap for the root model.
type Keys struct {
	*keys.KeyMap
}

// DefaultKeys returns the default application keybindings.
func DefaultKeys() *Keys {
	return &Keys{KeyMap: keys.DefaultKeyMap()}
}
