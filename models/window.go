package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Window selects how much recent history feeds a computation: either every
// retained game or only the most recent N.
type Window struct {
	N int // games to keep; 0 or negative means all games
}

// AllGames returns the window covering a player's full retained history.
func AllGames() Window {
	return Window{}
}

// LastN returns a window covering the N most recent games.
func LastN(n int) Window {
	return Window{N: n}
}

// All reports whether the window covers the full history.
func (w Window) All() bool {
	return w.N <= 0
}

// Label renders the window the way the UI and column names spell it: "ALL",
// "L5", "L10".
func (w Window) Label() string {
	if w.All() {
		return "ALL"
	}
	return fmt.Sprintf("L%d", w.N)
}

// ParseWindow parses a window label ("ALL", "L5", "L10").
func ParseWindow(s string) (Window, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "ALL" {
		return AllGames(), nil
	}
	if !strings.HasPrefix(s, "L") {
		return Window{}, fmt.Errorf("invalid window %q", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n <= 0 {
		return Window{}, fmt.Errorf("invalid window %q", s)
	}
	return LastN(n), nil
}
