package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{
			name:   "E.164 nigerian mobile",
			input:  "+2348031234567",
			region: "NG",
			want:   "+2348031234567",
		},
		{
			name:   "national format with leading zero",
			input:  "0803 123 4567",
			region: "NG",
			want:   "+2348031234567",
		},
		{
			name:   "with dashes",
			input:  "0803-123-4567",
			region: "NG",
			want:   "+2348031234567",
		},
		{
			name:   "foreign number keeps its own country code",
			input:  "+972 54 123 4567",
			region: "NG",
			want:   "+972541234567",
		},
		{
			name:   "lower case region",
			input:  "08031234567",
			region: "ng",
			want:   "+2348031234567",
		},
		{
			name:   "leading and trailing spaces",
			input:  "  +2348031234567  ",
			region: "NG",
			want:   "+2348031234567",
		},
		{
			name:   "empty string",
			input:  "",
			region: "NG",
			want:   "",
		},
		{
			name:   "only whitespace",
			input:  "   ",
			region: "NG",
			want:   "",
		},
		{
			name:   "letters",
			input:  "call me maybe",
			region: "NG",
			want:   "",
		},
		{
			name:   "too short",
			input:  "+1",
			region: "NG",
			want:   "",
		},
		{
			name:   "too few digits for the region",
			input:  "0803",
			region: "NG",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input, tt.region)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q, %q) = %q, want %q", tt.input, tt.region, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	first := NormalizePhone("0803 123 4567", "NG")
	second := NormalizePhone(first, "NG")
	if first != second {
		t.Errorf("not idempotent: %q then %q", first, second)
	}
}
