package model

import "testing"

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "01/01/2024", want: true},
		{input: "31/02/2024", want: true},
		{input: "1/1/2024", want: false},
		{input: "2024-01-01", want: false},
		{input: "01/01/24", want: false},
		{input: " 01/01/2024", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		if got := IsValidDate(tt.input); got != tt.want {
			t.Errorf("IsValidDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsValidTime(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "23:59", want: true},
		{input: "00:00", want: true},
		{input: "09:05", want: true},
		{input: "25:00", want: false},
		{input: "24:00", want: false},
		{input: "12:60", want: false},
		{input: "9:05", want: false},
		{input: "12:00:00", want: false},
	}

	for _, tt := range tests {
		if got := IsValidTime(tt.input); got != tt.want {
			t.Errorf("IsValidTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParsePeopleCount(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{input: "4", want: 4, wantOK: true},
		{input: "12", want: 12, wantOK: true},
		{input: "0", wantOK: false},
		{input: "-3", wantOK: false},
		{input: "abc", wantOK: false},
		{input: "2.5", wantOK: false},
		{input: "", wantOK: false},
		{input: "99999999999999999999999", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := ParsePeopleCount(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParsePeopleCount(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestToISODate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "15/03/2024", want: "2024-03-15"},
		{input: "31/02/2024", want: "2024-02-31"},
		{input: "01/12/1999", want: "1999-12-01"},
	}

	for _, tt := range tests {
		if got := ToISODate(tt.input); got != tt.want {
			t.Errorf("ToISODate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCoercePeopleCount(t *testing.T) {
	tests := []struct {
		input string
		want  *int
	}{
		{input: "4", want: intPtr(4)},
		{input: "5abc", want: intPtr(5)},
		{input: " 3", want: intPtr(3)},
		{input: "-2", want: intPtr(-2)},
		{input: "abc", want: nil},
		{input: "", want: nil},
	}

	for _, tt := range tests {
		got := CoercePeopleCount(tt.input)
		switch {
		case got == nil && tt.want == nil:
		case got == nil || tt.want == nil:
			t.Errorf("CoercePeopleCount(%q) = %v, want %v", tt.input, got, tt.want)
		case *got != *tt.want:
			t.Errorf("CoercePeopleCount(%q) = %d, want %d", tt.input, *got, *tt.want)
		}
	}
}

func intPtr(n int) *int {
	return &n
}
