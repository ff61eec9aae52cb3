// Package keymap loads declarative key binding documents and registers
// them as event handlers.
//
// A binding document is JSON: a "bindings" array of objects with a
// "key" specification, an "action" name, and an optional "release"
// flag to bind the key-up edge instead of key-down. Key specifications
// accept single characters ("a", "@"), key names ("Escape", "Space"),
// modifier chords ("Ctrl+q", "Ctrl+Shift+p"), and Vim-style notation
// ("<C-q>", "<CR>", "<Esc>").
package keymap
