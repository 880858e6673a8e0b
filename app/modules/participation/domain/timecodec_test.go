package participationdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{in: "28:45:30", want: 103530, wantOK: true},
		{in: "00:00:00", want: 0, wantOK: true},
		{in: "45:30", want: 2730, wantOK: true},
		{in: " 1:02:03 ", want: 3723, wantOK: true},
		{in: "120:00:00", want: 432000, wantOK: true},
		{in: "not:a:time", want: 0, wantOK: false},
		{in: "3600", want: 0, wantOK: false},
		{in: "1:2:3:4", want: 0, wantOK: false},
		{in: "", want: 0, wantOK: false},
		{in: "1:xx:30", want: 3630, wantOK: false},
		{in: "-1:00:00", want: 0, wantOK: false},
		{in: "9999:00:00", want: MaxFinishSeconds, wantOK: true},
		{in: "10000:00:00", want: 0, wantOK: false},
		{in: "9223372036854775807:00:00", want: 0, wantOK: false},
		{in: "2562047788015216:00:00", want: 0, wantOK: false},
		{in: "600000:00", want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTimeChecked(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, ParseTime(tt.in))
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{in: 103530, want: "28:45:30"},
		{in: 0, want: "00:00:00"},
		{in: 59, want: "00:00:59"},
		{in: 3600, want: "01:00:00"},
		{in: 359999, want: "99:59:59"},
		{in: 360000, want: "100:00:00"},
		{in: -5, want: "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.in))
		})
	}
}

func TestTimeRoundTrip(t *testing.T) {
	for s := 0; s <= 359999; s++ {
		if got := ParseTime(FormatTime(s)); got != s {
			t.Fatalf("ParseTime(FormatTime(%d)) = %d", s, got)
		}
	}
}
