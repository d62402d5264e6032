package t2048

import (
	"errors"
	"reflect"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	g := FromRows([][]int{
		{2, 0, 0, 4},
		{0, 8, 0, 0},
		{0, 0, 16, 0},
		{32, 0, 0, 2048},
	})
	snap := GameSnapshot{Grid: g.Serialize(), Score: 1234, Won: true, KeepPlaying: true}

	data, err := snap.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := ParseGameSnapshot(data)
	if err != nil {
		t.Fatalf("ParseGameSnapshot: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("round trip = %+v, want %+v", got, snap)
	}

	restored, err := FromSnapshot(got.Grid)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if !restored.Equal(g) {
		t.Errorf("restored grid = %v, want %v", restored.Rows(), g.Rows())
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := FromRows([][]int{{2, 0}, {0, 0}})
	snap := g.Serialize()
	snap.Cells[0][0] = 4
	if g.Value(0, 0) != 2 {
		t.Error("editing the snapshot changed the grid")
	}
}

func TestParseGameSnapshotRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"grid":`},
		{"zero size", `{"grid":{"size":0,"cells":[]},"score":0}`},
		{"missing rows", `{"grid":{"size":4,"cells":[[0,0,0,0]]},"score":0}`},
		{"short row", `{"grid":{"size":2,"cells":[[0,0],[0]]},"score":0}`},
		{"not a power of two", `{"grid":{"size":2,"cells":[[3,0],[0,0]]},"score":0}`},
		{"value one", `{"grid":{"size":2,"cells":[[1,0],[0,0]]},"score":0}`},
		{"negative score", `{"grid":{"size":2,"cells":[[2,0],[0,0]]},"score":-4}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGameSnapshot([]byte(tt.data))
			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Errorf("err = %v, want ErrInvalidSnapshot", err)
			}
		})
	}
}

func TestSnapshotStatus(t *testing.T) {
	tests := []struct {
		snap GameSnapshot
		want Status
	}{
		{GameSnapshot{}, StatusPlaying},
		{GameSnapshot{Won: true}, StatusWon},
		{GameSnapshot{Won: true, KeepPlaying: true}, StatusPlaying},
		{GameSnapshot{Won: true, Over: true}, StatusOver},
	}
	for _, tt := range tests {
		if got := tt.snap.Status(); got != tt.want {
			t.Errorf("%+v Status = %s, want %s", tt.snap, got, tt.want)
		}
	}
}
