package treeindex

import (
	"testing"
)

func TestCeilPow2(t *testing.T) {
	tests := []struct {
		name string
		num  uint64
		want uint64
	}{
		{"0 -> 1", 0, 1},
		{"1 -> 1", 1, 1},
		{"2 -> 2", 2, 2},
		{"3 -> 4", 3, 4},
		{"8 -> 8", 8, 8},
		{"9 -> 16", 9, 16},
		{"1000000 -> 1048576", 1000000, 1 << 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CeilPow2(tt.num); got != tt.want {
				t.Errorf("CeilPow2() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeight(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
		want uint64
	}{
		{"1", 1, 0},
		{"2", 2, 1},
		{"5", 5, 3},
		{"8", 8, 3},
		{"1000000", 1000000, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Height(tt.n); got != tt.want {
				t.Errorf("Height() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNodeAt(t *testing.T) {
	type args struct {
		level, pos, height uint64
	}
	tests := []struct {
		name string
		args args
		want uint64
	}{
		{"root", args{0, 5, 3}, 0},
		{"level 1 left", args{1, 3, 3}, 1},
		{"level 1 right", args{1, 4, 3}, 2},
		{"level 2", args{2, 5, 3}, 5},
		{"leaf 0", args{3, 0, 3}, 7},
		{"leaf 7", args{3, 7, 3}, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NodeAt(tt.args.level, tt.args.pos, tt.args.height); got != tt.want {
				t.Errorf("NodeAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Descending through a complete tree with LeftChild must agree with NodeAt,
// since in a complete tree the inclusive rank of node i is i+1.
func TestDescendMatchesNodeAt(t *testing.T) {
	const height = 6
	for pos := uint64(0); pos < 1<<height; pos++ {
		node := uint64(0)
		for level := uint64(1); level <= height; level++ {
			node = LeftChild(node+1) + Direction(pos, level, height)
			if want := NodeAt(level, pos, height); node != want {
				t.Fatalf("pos %d level %d: got node %d, want %d", pos, level, node, want)
			}
		}
	}
}

func TestPerfectLevels(t *testing.T) {
	tests := []struct {
		inner uint64
		want  uint64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{6, 2},
		{7, 3},
	}
	for _, tt := range tests {
		if got := PerfectLevels(tt.inner); got != tt.want {
			t.Errorf("PerfectLevels(%d) = %v, want %v", tt.inner, got, tt.want)
		}
	}
}

func TestCoverage(t *testing.T) {
	if got := Coverage(1, 3); got != 4 {
		t.Errorf("Coverage(1, 3) = %v, want 4", got)
	}
	if got := FirstPos(6, 1, 3); got != 4 {
		t.Errorf("FirstPos(6, 1, 3) = %v, want 4", got)
	}
	if got := FirstPos(6, 3, 3); got != 6 {
		t.Errorf("FirstPos(6, 3, 3) = %v, want 6", got)
	}
}
