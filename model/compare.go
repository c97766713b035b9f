package model

import (
	"cmp"
	"strings"
)

// Compare orders two notes on the same page.
//
// The order is ascending by Y, then X, then Height, then Width, then Text.
// It returns a negative number when a sorts before b, a positive number when
// a sorts after b and zero when both are indistinguishable.
func Compare(a, b Note) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Height, b.Height); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Width, b.Width); c != 0 {
		return c
	}
	return strings.Compare(a.Text, b.Text)
}
