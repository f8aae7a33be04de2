package cmd

import "testing"

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"1920x1080", 1920, 1080, false},
		{" 300X200 ", 300, 200, false},
		{"1920", 0, 0, true},
		{"ax10", 0, 0, true},
		{"10xb", 0, 0, true},
		{"0x10", 0, 0, true},
		{"-5x10", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := parseGeometry(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseGeometry(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("parseGeometry(%q) = %dx%d, want %dx%d", tt.in, w, h, tt.w, tt.h)
			}
		})
	}
}

func TestNewWindowHonorsSettings(t *testing.T) {
	t.Setenv("DESKPET_HOME", t.TempDir())
	t.Setenv("DESKPET_REDIS_URL", "")
	screenFlag, sizeFlag = "800x600", "100x100"
	t.Cleanup(func() { screenFlag, sizeFlag = "1920x1080", "300x300" })

	win, err := newWindow()
	if err != nil {
		t.Fatalf("newWindow() error: %v", err)
	}
	info := win.Info()
	if info.ScreenWidth != 800 || info.Width != 100 {
		t.Errorf("geometry = %+v", info)
	}
	// Defaults: shown on start, always on top.
	if !info.Visible || !info.AlwaysOnTop {
		t.Errorf("visible=%v alwaysOnTop=%v, want both true", info.Visible, info.AlwaysOnTop)
	}
}
