package sanitizer

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"comma separated", "WiFi, Mini bar,TV", []string{"WiFi", "Mini bar", "TV"}},
		{"duplicates removed", "WiFi,WiFi, WiFi", []string{"WiFi"}},
		{"empty parts dropped", "WiFi,, ,TV,", []string{"WiFi", "TV"}},
		{"empty input", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Travel ", "travel", "Food  Guide", ""})
	want := []string{"travel", "food guide"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags() = %v, want %v", got, want)
	}
}

func TestNormalizeImages(t *testing.T) {
	got := NormalizeImages([]string{
		"/uploads/room-301.jpg",
		" http://CDN.Example.com/rooms/301.jpg ",
		"/uploads/room-301.jpg",
		"",
	})
	want := []string{"/uploads/room-301.jpg", "https://cdn.example.com/rooms/301.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeImages() = %v, want %v", got, want)
	}
}

func TestNormalizeStringSlice_Nil(t *testing.T) {
	got := NormalizeStringSlice(nil, TrimAndNormalize)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
