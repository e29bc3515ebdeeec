package framebuffer

import (
	"bytes"
	"testing"
)

func TestFlipRows(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		in     []byte
		want   []byte
	}{
		{
			name: "two rows", width: 1, height: 2,
			in:   []byte{1, 1, 1, 1, 2, 2, 2, 2},
			want: []byte{2, 2, 2, 2, 1, 1, 1, 1},
		},
		{
			name: "odd height keeps middle", width: 1, height: 3,
			in:   []byte{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3},
			want: []byte{3, 3, 3, 3, 2, 2, 2, 2, 1, 1, 1, 1},
		},
		{
			name: "single row", width: 2, height: 1,
			in:   []byte{1, 2, 3, 4, 5, 6, 7, 8},
			want: []byte{1, 2, 3, 4, 5, 6, 7, 8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			FlipRows(tt.in, tt.width, tt.height)
			if !bytes.Equal(tt.in, tt.want) {
				t.Errorf("FlipRows = %v, want %v", tt.in, tt.want)
			}
		})
	}
}

func TestClampSize(t *testing.T) {
	tests := []struct {
		w, h         int32
		wantW, wantH int32
	}{
		{800, 600, 800, 600},
		{0, 600, 1, 600},
		{-5, -1, 1, 1},
	}
	for _, tt := range tests {
		w, h := clampSize(tt.w, tt.h)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("clampSize(%d, %d) = (%d, %d), want (%d, %d)", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}
