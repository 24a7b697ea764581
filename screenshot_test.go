package gridterm

import (
	"testing"
	"time"
)

func TestScreenshotName(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	tests := []struct {
		term  int
		label string
		want  string
	}{
		{0, "title", "term0_20260304_050607_title.png"},
		{2, "map view 2", "term2_20260304_050607_map_view_2.png"},
		{1, "a/b\\c", "term1_20260304_050607_a_b_c.png"},
		{0, "v1.0-rc", "term0_20260304_050607_v1.0-rc.png"},
		{0, "é", "term0_20260304_050607__.png"},
		{3, "  ", "term3_20260304_050607_capture.png"},
	}
	for _, tt := range tests {
		if got := screenshotName(tt.term, at, tt.label); got != tt.want {
			t.Errorf("screenshotName(%d, %q) = %q, want %q", tt.term, tt.label, got, tt.want)
		}
	}
}

func TestWindow_ScreenshotWithoutCanvas(t *testing.T) {
	w := newTestWindow(t)
	w.ScreenshotDir = t.TempDir()
	w.Screenshot("early")
	w.flushScreenshots()
	if len(w.screenshotQueue) != 0 {
		t.Error("queue should be drained even without a canvas")
	}
}
