package surface

import "testing"

func TestScrollbackRingBufferWrapsAtCapacity(t *testing.T) {
	sb := newScrollback(2)
	sb.push([]Cell{{Rune: '1'}})
	sb.push([]Cell{{Rune: '2'}})
	sb.push([]Cell{{Rune: '3'}})
	if sb.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", sb.Len())
	}
	if sb.Row(0)[0].Rune != '2' || sb.Row(1)[0].Rune != '3' {
		t.Fatalf("unexpected ring contents after wrap: %q %q", sb.Row(0)[0].Rune, sb.Row(1)[0].Rune)
	}
}

func TestScrollbackSetCapacityShrinksFromOldest(t *testing.T) {
	sb := newScrollback(5)
	for _, r := range []rune{'a', 'b', 'c'} {
		sb.push([]Cell{{Rune: r}})
	}
	sb.setCapacity(2)
	if sb.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", sb.Len())
	}
	if sb.Row(0)[0].Rune != 'b' || sb.Row(1)[0].Rune != 'c' {
		t.Fatalf("unexpected contents after shrink: %q %q", sb.Row(0)[0].Rune, sb.Row(1)[0].Rune)
	}
}
