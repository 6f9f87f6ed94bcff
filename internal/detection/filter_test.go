package detection

import "testing"

func TestFilterAdjacent(t *testing.T) {
	tests := []struct {
		name  string
		fixed []int
		want  []int
	}{
		{"empty", nil, []int{}},
		{"single", []int{10}, []int{10}},
		{"2px stroke", []int{10, 11, 90}, []int{10, 90}},
		{"3px stroke keeps first and third", []int{10, 11, 12, 20}, []int{10, 12, 20}},
		{"two apart kept", []int{10, 12}, []int{10, 12}},
		{"two 2px strokes", []int{10, 11, 89, 90}, []int{10, 89}},
		{"starts at zero", []int{0, 1, 5}, []int{0, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]Segment, len(tt.fixed))
			for i, f := range tt.fixed {
				in[i] = VerticalSegment(f, 0, 50)
			}
			got := fixedCoords(FilterAdjacent(in))
			if !equalInts(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterAdjacent_Idempotent(t *testing.T) {
	in := []Segment{
		HorizontalSegment(0, 50, 3),
		HorizontalSegment(0, 50, 4),
		HorizontalSegment(0, 50, 5),
		HorizontalSegment(0, 50, 6),
		HorizontalSegment(0, 50, 30),
		HorizontalSegment(0, 50, 31),
	}

	once := FilterAdjacent(in)
	twice := FilterAdjacent(once)
	if !equalInts(fixedCoords(once), fixedCoords(twice)) {
		t.Errorf("filter not idempotent: %v then %v", fixedCoords(once), fixedCoords(twice))
	}
	if len(in) != 6 || in[1].Fixed != 4 {
		t.Error("input slice was modified")
	}
}
