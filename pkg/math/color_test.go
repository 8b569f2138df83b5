package math

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ff0000", Color{1, 0, 0, 1}, false},
		{"00ff00", Color{0, 1, 0, 1}, false},
		{"#0000ff80", Color{0, 0, 1, 128.0 / 255.0}, false},
		{"#fff", Color{}, true},
		{"#gggggg", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorTextRoundTrip(t *testing.T) {
	c := RGB(0x46, 0x89, 0x66)
	text, err := c.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != "#468966" {
		t.Errorf("MarshalText = %s, want #468966", text)
	}
	var back Color
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if back != c {
		t.Errorf("round trip = %v, want %v", back, c)
	}
}

func TestColorScaled(t *testing.T) {
	got := Color{0.5, 0.25, 1, 1}.Scaled(0.5)
	want := Color{0.25, 0.125, 0.5, 0.5}
	if got != want {
		t.Errorf("Scaled = %v, want %v", got, want)
	}
}
