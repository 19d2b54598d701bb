// Package ui is the terminal front end of bincheck, built on Bubble Tea.
//
// AppModel owns a single lookup.State and is only mutated from Update on the
// event loop. Lookups run as tea.Cmds and report back with LookupCompleteMsg;
// lookup.Resolve drops outcomes whose ticket no longer matches the current
// generation, so a reset or newer submission always wins.
//
// Keys follow a spacemacs-style leader scheme (see KeybindRegistry): direct
// bindings for enter/ctrl+r/ctrl+c and a SPC menu for the rest.
package ui
