package utils

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("paneer", 10) != "paneer" {
		t.Error("short string unchanged")
	}
	if Truncate("paneer butter masala", 6) != "paneer..." {
		t.Errorf("got %s", Truncate("paneer butter masala", 6))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
}
