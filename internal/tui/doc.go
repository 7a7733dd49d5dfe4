// Package tui contains the interactive DojoPool screens: tournaments,
// clans, venues, and dojo chat, plus the dashboard that hosts them. Every
// screen follows the same shape: a Bubble Tea model with loading, list,
// detail, and error states, backed by a virtualized list so screens stay
// responsive at any collection size.
package tui
