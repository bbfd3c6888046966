package fingerprint

import (
	"crypto/sha256"
	"fmt"
	"testing"
)

func TestNormalize(t *testing.T) {
	expected := "el gato\nnegro\nthe black cat"
	normalized := Normalize("  El Gato\r\nNegro ", "The Black Cat\n")

	if normalized != expected {
		t.Errorf("Expected normalized string to be '%s', but got '%s'", expected, normalized)
	}
}

func TestOf(t *testing.T) {
	t.Run("hashes the normalized pair", func(t *testing.T) {
		expected := fmt.Sprintf("%x", sha256.Sum256([]byte("hola\nhello")))
		if got := Of("Hola", "Hello"); got != expected {
			t.Errorf("Expected hash '%s', but got '%s'", expected, got)
		}
	})

	t.Run("normalization produces same hash", func(t *testing.T) {
		if Of("  la casa ", "THE HOUSE") != Of("La Casa", "the house") {
			t.Error("Expected hashes to be the same after normalization, but they were different.")
		}
	})

	t.Run("sides are not interchangeable", func(t *testing.T) {
		if Of("ab", "c") == Of("a", "bc") {
			t.Error("Expected the separator to keep the sides apart")
		}
		if Of("uno", "one") == Of("one", "uno") {
			t.Error("Expected swapped sides to hash differently")
		}
	})
}

func TestSet(t *testing.T) {
	s := Set{}
	if !s.Add("uno", "one") {
		t.Error("Expected the first add to be new")
	}
	if s.Add(" UNO ", "One") {
		t.Error("Expected a normalized duplicate to be rejected")
	}
	if !s.Add("dos", "two") {
		t.Error("Expected a different pair to be new")
	}
	if len(s) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(s))
	}
}
