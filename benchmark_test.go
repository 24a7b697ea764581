package gridterm

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// setupBenchWindow creates a 160×50 window filled with text.
func setupBenchWindow() *Window {
	cfg := NewTermConfig(1, 50, 160, FontDescriptor{}, FontMetrics{})
	w := NewWindow(cfg, nil, DefaultColorTable())
	row := make([]rune, cfg.Columns)
	for i := range row {
		row[i] = rune('a' + i%26)
	}
	for y := 0; y < cfg.Rows; y++ {
		_ = w.Apply(TextRun(0, y, string(row), 1+y%15))
	}
	return w
}

// --- Render Benchmarks ---

func BenchmarkRender_FullGrid(b *testing.B) {
	w := setupBenchWindow()
	w.Surface().Render(w, w.Dirty()) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Dirty().MarkAll(160, 50)
		w.Surface().Render(w, w.Dirty())
	}
}

func BenchmarkRender_SingleRow(b *testing.B) {
	w := setupBenchWindow()
	w.Surface().Render(w, w.Dirty())
	msg := TextRun(0, 0, "You hit the orc.", 1)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = w.Apply(msg)
		w.Surface().Render(w, w.Dirty())
	}
}

func BenchmarkRender_Idle(b *testing.B) {
	w := setupBenchWindow()
	w.Surface().Render(w, w.Dirty())

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Surface().Render(w, w.Dirty())
	}
}

// --- Dispatch Benchmarks ---

func BenchmarkDispatch_TileRow(b *testing.B) {
	w := setupBenchWindow()
	chars := make([]rune, 160)
	attrs := make([]int, 160)
	for i := range chars {
		chars[i] = rune(i % 32)
		attrs[i] = AttrGraphicMask | i%16
	}
	u := TileRun(0, 10, chars, attrs, chars, attrs)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = w.Apply(u)
	}
}

// --- Submit Benchmarks ---

func BenchmarkSubmit_FullGridFills(b *testing.B) {
	w := setupBenchWindow()
	cmds := append([]DrawCommand(nil), w.Surface().Render(w, w.Dirty())...)
	fills := commandsOfType(cmds, CommandFill)
	target := ebiten.NewImage(160*8, 50*16)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Surface().Submit(target, fills)
	}
}
