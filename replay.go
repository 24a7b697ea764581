package gridterm

import (
	"encoding/json"
	"fmt"
	"log"
)

// replayStep is a single action in a replay script.
type replayStep struct {
	Op     string `json:"op"`
	Label  string `json:"label,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	W      int    `json:"w,omitempty"`
	H      int    `json:"h,omitempty"`
	Count  int    `json:"count,omitempty"`
	Text   string `json:"text,omitempty"`
	Attr   int    `json:"attr,omitempty"`
	Attrs  []int  `json:"attrs,omitempty"`
	TChars string `json:"terrain,omitempty"`
	TAttrs []int  `json:"terrain_attrs,omitempty"`
	Rows   int    `json:"rows,omitempty"`
	Cols   int    `json:"cols,omitempty"`
	Button int    `json:"button,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// replayScript is the top-level JSON structure of a replay script.
type replayScript struct {
	Steps []replayStep `json:"steps"`
}

// Replay feeds a recorded sequence of engine updates, clicks and
// screenshots to a window, one step per frame. Attach with SetReplay.
//
// Ops: text, tile, wipe, clear, cursor, hide, resize, click, screenshot,
// wait. Cursor rectangles are given in cells (x, y, w, h).
type Replay struct {
	steps     []replayStep
	cursor    int
	waitCount int
	done      bool
}

// LoadReplay parses a JSON replay script.
func LoadReplay(jsonData []byte) (*Replay, error) {
	var script replayScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("gridterm: parse replay: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("gridterm: parse replay: no steps")
	}
	for i, st := range script.Steps {
		switch st.Op {
		case "text", "tile", "wipe", "clear", "cursor", "hide", "resize", "click", "screenshot", "wait":
		default:
			return nil, fmt.Errorf("gridterm: parse replay: step %d: unknown op %q", i, st.Op)
		}
	}
	return &Replay{steps: script.Steps}, nil
}

// Len returns the number of steps.
func (r *Replay) Len() int {
	return len(r.steps)
}

// Done reports whether every step has run.
func (r *Replay) Done() bool {
	return r.done
}

// SetReplay attaches a replay; its steps run from Update.
func (w *Window) SetReplay(r *Replay) {
	w.replay = r
}

// update converts a step to an engine update. ok is false for steps that are
// not grid updates.
func (st replayStep) update(m Mapper) (Update, bool) {
	switch st.Op {
	case "text":
		if st.Attrs != nil {
			chars := []rune(st.Text)
			return Update{
				Kind: UpdateText, X: st.X, Y: st.Y, Count: len(chars),
				FeatureChars: chars, FeatureAttrs: st.Attrs,
				TerrainChars: []rune(st.TChars), TerrainAttrs: st.TAttrs,
			}, true
		}
		return TextRun(st.X, st.Y, st.Text, st.Attr), true
	case "tile":
		return TileRun(st.X, st.Y, []rune(st.Text), st.Attrs, []rune(st.TChars), st.TAttrs), true
	case "wipe":
		return WipeRun(st.X, st.Y, st.Count, []rune(st.TChars), st.TAttrs), true
	case "clear":
		return Clear(), true
	case "cursor":
		w, h := max(st.W, 1), max(st.H, 1)
		return CursorMove(m.CellRect(st.X, st.Y, w, h)), true
	case "hide":
		return CursorHide(), true
	}
	return Update{}, false
}

// Run applies every grid step of the script at once, ignoring clicks,
// screenshots and waits. Useful for headless rendering and tests.
func (r *Replay) Run(w *Window) error {
	for i, st := range r.steps {
		if err := r.exec(w, st); err != nil {
			return fmt.Errorf("gridterm: replay step %d: %w", i, err)
		}
	}
	r.cursor = len(r.steps)
	r.done = true
	return nil
}

// exec performs the grid side of one step.
func (r *Replay) exec(w *Window, st replayStep) error {
	if st.Op == "resize" {
		w.Resize(st.Rows, st.Cols)
		return nil
	}
	if u, ok := st.update(w.cfg.Mapper()); ok {
		return w.Apply(u)
	}
	return nil
}

// step advances the replay by one frame. Called from Window.Update.
func (r *Replay) step(w *Window) {
	if r.done {
		return
	}
	if len(w.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Op {
	case "screenshot":
		w.Screenshot(st.Label)
	case "click":
		button := MouseButton(st.Button)
		if button == ButtonNone {
			button = ButtonLeft
		}
		w.InjectCellClick(st.X, st.Y, button)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	default:
		if err := r.exec(w, st); err != nil {
			log.Printf("gridterm: replay step %d: %v", r.cursor-1, err)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(w.injectQueue) == 0 {
		r.done = true
	}
}
