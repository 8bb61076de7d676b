package types

import "testing"

func TestLineOf(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		offset  int
		want    int
	}{
		{"empty content", []byte{}, 0, 1},
		{"first line", []byte("hello\nworld"), 2, 1},
		{"offset at newline", []byte("hello\nworld"), 5, 1},
		{"start of second line", []byte("hello\nworld"), 6, 2},
		{"second line", []byte("hello\nworld"), 8, 2},
		{"offset beyond content", []byte("a\nb"), 100, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineOf(tt.content, tt.offset); got != tt.want {
				t.Errorf("LineOf(%q, %d) = %d, want %d", tt.content, tt.offset, got, tt.want)
			}
		})
	}
}
