package core

import "testing"

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{in: "09:00", want: ClockTime{9, 0}},
		{in: "09:00:00", want: ClockTime{9, 0}}, // seconds truncated
		{in: "23:59:59", want: ClockTime{23, 59}},
		{in: "00:00", want: ClockTime{0, 0}},
		{in: " 13:05 ", want: ClockTime{13, 5}},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "12", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseClockTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClockTime(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClockTime(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClockTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClockTimeString(t *testing.T) {
	tests := []struct {
		in   ClockTime
		want string
	}{
		{ClockTime{9, 0}, "09:00"},
		{ClockTime{0, 0}, "00:00"},
		{ClockTime{23, 59}, "23:59"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.in, got, tt.want)
		}
		if len(tt.in.String()) != 5 {
			t.Errorf("%v.String() must be exactly 5 characters", tt.in)
		}
	}
}

func TestClockTimeDisplay12Hour(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00:00", "12:00 AM"},
		{"01:30", "1:30 AM"},
		{"11:59", "11:59 AM"},
		{"12:00", "12:00 PM"},
		{"13:05", "1:05 PM"},
		{"23:59", "11:59 PM"},
	}
	for _, tt := range tests {
		ct, err := ParseClockTime(tt.in)
		if err != nil {
			t.Fatalf("ParseClockTime(%q): %v", tt.in, err)
		}
		if got := ct.Display12Hour(); got != tt.want {
			t.Errorf("Display12Hour(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
