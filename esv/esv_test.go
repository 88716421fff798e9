package esv

import (
	"path/filepath"
	"testing"

	"github.com/msikma/autoesv/pkx"
)

func TestTSV(t *testing.T) {
	tests := []struct {
		name string
		tid  uint16
		sid  uint16
		want uint16
	}{
		{name: "known pair", tid: 12345, sid: 54321, want: 3648},
		{name: "zero ids", tid: 0, sid: 0, want: 0},
		{name: "identical ids cancel", tid: 0xABCD, sid: 0xABCD, want: 0},
		{name: "maximum", tid: 0xFFFF, sid: 0, want: 4095},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TSV(tt.tid, tt.sid); got != tt.want {
				t.Errorf("TSV(%d, %d) = %d, want %d", tt.tid, tt.sid, got, tt.want)
			}
		})
	}
}

func TestFromPID(t *testing.T) {
	tests := []struct {
		name string
		pid  uint32
		want uint16
	}{
		{name: "known pid", pid: 0xABCD1234, want: 2975},
		{name: "zero pid", pid: 0, want: 0},
		{name: "identical halves cancel", pid: 0x12341234, want: 0},
		{name: "maximum", pid: 0xFFFF0000, want: 4095},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromPID(tt.pid); got != tt.want {
				t.Errorf("FromPID(0x%08X) = %d, want %d", tt.pid, got, tt.want)
			}
		})
	}
}

func TestFromPIDBounds(t *testing.T) {
	// Sweep a spread of PIDs; every result must stay within 0-4095
	// and repeated calls must agree.
	for pid := uint32(0); pid < 0xFFFF; pid += 97 {
		spread := pid*0x01010101 + 7
		got := FromPID(spread)
		if got > Max {
			t.Fatalf("FromPID(0x%08X) = %d, exceeds %d", spread, got, Max)
		}
		if again := FromPID(spread); again != got {
			t.Fatalf("FromPID(0x%08X) not deterministic: %d then %d", spread, got, again)
		}
	}
}

func TestFromPIDCollisions(t *testing.T) {
	// Different PIDs whose half-xor agrees after the shift share an
	// ESV. That is how the value works, not an error.
	a := FromPID(0x12340000)
	b := FromPID(0x00001234)
	c := FromPID(0x12340008) // differs only in the discarded low bits
	if a != b || b != c {
		t.Errorf("expected colliding ESVs, got %d, %d, %d", a, b, c)
	}
}

func TestMatches(t *testing.T) {
	// TID 0xB9F0 with SID 0 gives TSV 2975, the ESV of PID 0xABCD1234.
	tsv := TSV(0xB9F0, 0)
	if !Matches(tsv, FromPID(0xABCD1234)) {
		t.Error("Matches() = false for a shiny hatch")
	}
	if Matches(tsv, FromPID(0xABCD1244)) {
		t.Error("Matches() = true for a non-shiny hatch")
	}
}

func TestDirName(t *testing.T) {
	tests := []struct {
		esv  uint16
		want string
	}{
		{esv: 0, want: "0000"},
		{esv: 5, want: "0005"},
		{esv: 123, want: "0123"},
		{esv: 2975, want: "2975"},
		{esv: 4095, want: "4095"},
	}

	for _, tt := range tests {
		if got := DirName(tt.esv); got != tt.want {
			t.Errorf("DirName(%d) = %q, want %q", tt.esv, got, tt.want)
		}
	}
}

func TestDestination(t *testing.T) {
	tests := []struct {
		name            string
		esv             uint16
		format          pkx.Format
		separateFormats bool
		want            string
	}{
		{
			name:   "shared layout",
			esv:    2975,
			format: pkx.FormatGen6,
			want:   filepath.Join("out", "2975", "egg.pk6"),
		},
		{
			name:            "separated pk6",
			esv:             2975,
			format:          pkx.FormatGen6,
			separateFormats: true,
			want:            filepath.Join("out", "pk6", "2975", "egg.pk6"),
		},
		{
			name:            "separated pk7",
			esv:             2975,
			format:          pkx.FormatGen7,
			separateFormats: true,
			want:            filepath.Join("out", "pk7", "2975", "egg.pk6"),
		},
		{
			name:   "zero padded",
			esv:    7,
			format: pkx.FormatGen7,
			want:   filepath.Join("out", "0007", "egg.pk6"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Destination("out", tt.esv, tt.format, tt.separateFormats, "egg.pk6")
			if got != tt.want {
				t.Errorf("Destination() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDestinationSeparatesLeaves(t *testing.T) {
	// With separation on, the two formats never share a leaf directory
	// even for the same ESV.
	a := Destination("out", 123, pkx.FormatGen6, true, "a.pk6")
	b := Destination("out", 123, pkx.FormatGen7, true, "b.pk7")
	if filepath.Dir(a) == filepath.Dir(b) {
		t.Errorf("separated formats share leaf directory %q", filepath.Dir(a))
	}

	// Without separation they do share it.
	a = Destination("out", 123, pkx.FormatGen6, false, "a.pk6")
	b = Destination("out", 123, pkx.FormatGen7, false, "b.pk7")
	if filepath.Dir(a) != filepath.Dir(b) {
		t.Errorf("shared layout split leaves %q and %q", filepath.Dir(a), filepath.Dir(b))
	}
}
