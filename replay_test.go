package gridterm

import (
	"strings"
	"testing"
)

func TestLoadReplay_Errors(t *testing.T) {
	tests := []struct {
		name, json, want string
	}{
		{"invalid", `{`, "parse replay"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown op", `{"steps": [{"op": "teleport"}]}`, `unknown op "teleport"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReplay([]byte(tt.json))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

const replayScriptJSON = `{"steps": [
	{"op": "text", "x": 1, "y": 0, "text": "HP", "attr": 1},
	{"op": "tile", "x": 0, "y": 1, "text": "\u0001", "attrs": [129], "terrain": "\u0002", "terrain_attrs": [130]},
	{"op": "cursor", "x": 1, "y": 0, "w": 2},
	{"op": "click", "x": 2, "y": 2, "button": 2},
	{"op": "wait", "frames": 2},
	{"op": "wipe", "x": 1, "y": 0, "count": 1},
	{"op": "screenshot", "label": "after wipe"}
]}`

func TestReplay_Run(t *testing.T) {
	r, err := LoadReplay([]byte(replayScriptJSON))
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 7 {
		t.Errorf("Len = %d, want 7", r.Len())
	}
	w := newTestWindow(t)
	if err := r.Run(w); err != nil {
		t.Fatal(err)
	}
	if !r.Done() {
		t.Error("Run should finish the replay")
	}

	want := map[[2]int]Entity{
		{1, 0}: {},
		{2, 0}: {Char: 'P', Attr: 1},
		{0, 1}: {Char: 1, Attr: 129, TerrainChar: 2, TerrainAttr: 130},
	}
	for pos, e := range want {
		got, _ := w.Grid().Cell(pos[0], pos[1])
		if got != e {
			t.Errorf("Cell%v = %+v, want %+v", pos, got, e)
		}
	}
	r2, ok := w.CursorRect()
	if !ok || r2 != (Rect{X: 8, Y: 0, Width: 16, Height: 16}) {
		t.Errorf("cursor = %v %v, want 2 cells at (1, 0)", r2, ok)
	}
	if w.PendingInjections() != 0 || len(w.screenshotQueue) != 0 {
		t.Error("Run should skip clicks and screenshots")
	}
}

func TestReplay_StepPerFrame(t *testing.T) {
	r, err := LoadReplay([]byte(replayScriptJSON))
	if err != nil {
		t.Fatal(err)
	}
	w := newTestWindow(t)
	var clicks []MouseEvent
	w.SetMouseSink(MouseSinkFunc(func(e MouseEvent) { clicks = append(clicks, e) }))

	r.step(w) // text
	r.step(w) // tile
	r.step(w) // cursor
	if e, _ := w.Grid().Cell(1, 0); e.Char != 'H' {
		t.Fatalf("Cell(1, 0) = %+v, want 'H'", e)
	}

	r.step(w) // click queued
	if w.PendingInjections() != 1 {
		t.Fatalf("PendingInjections = %d, want 1", w.PendingInjections())
	}
	r.step(w) // blocked by the pending click
	w.processInjectedInput()
	if len(clicks) != 1 || clicks[0].Col != 2 || clicks[0].Row != 2 || clicks[0].Button != ButtonRight {
		t.Fatalf("clicks = %+v, want right click at (2, 2)", clicks)
	}

	r.step(w) // wait 2: first frame
	r.step(w) // wait 2: second frame
	if e, _ := w.Grid().Cell(1, 0); e.Char != 'H' {
		t.Fatal("wipe ran before the wait finished")
	}
	r.step(w) // wipe
	if e, _ := w.Grid().Cell(1, 0); !e.FeatureIsNull() {
		t.Errorf("Cell(1, 0) = %+v, want wiped", e)
	}
	if r.Done() {
		t.Fatal("done before the last step")
	}
	r.step(w) // screenshot
	if len(w.screenshotQueue) != 1 || w.screenshotQueue[0] != "after wipe" {
		t.Errorf("screenshotQueue = %v", w.screenshotQueue)
	}
	if !r.Done() {
		t.Error("replay should be done")
	}
}

func TestReplay_Resize(t *testing.T) {
	r, err := LoadReplay([]byte(`{"steps": [
		{"op": "resize", "rows": 30, "cols": 100},
		{"op": "text", "x": 95, "y": 29, "text": "end", "attr": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	w := newTestWindow(t)
	if err := r.Run(w); err != nil {
		t.Fatal(err)
	}
	if e, _ := w.Grid().Cell(97, 29); e.Char != 'd' {
		t.Errorf("Cell(97, 29) = %+v, want 'd'", e)
	}
}
