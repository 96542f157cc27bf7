package docs

import "testing"

func TestShouldIndex(t *testing.T) {
	filter := NewFileFilter(1024)

	tests := []struct {
		name string
		path string
		size int64
		want bool
	}{
		{"content file", "en-us/web/html/index.md", 100, true},
		{"not a content file", "en-us/web/html/figure.png", 100, false},
		{"other markdown file", "en-us/web/html/notes.md", 100, false},
		{"too large", "en-us/web/html/index.md", 2048, false},
		{"dot directory", ".git/index.md", 100, false},
		{"nested dot directory", "en-us/.cache/index.md", 100, false},
		{"top-level content file", "index.md", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.ShouldIndex(tt.path, tt.size); got != tt.want {
				t.Errorf("ShouldIndex(%q, %d) = %v, want %v", tt.path, tt.size, got, tt.want)
			}
		})
	}
}

func TestIsBinary(t *testing.T) {
	if IsBinary([]byte("plain markdown text")) {
		t.Error("Expected text content to not be binary")
	}
	if !IsBinary([]byte{0x89, 'P', 'N', 'G', 0x00}) {
		t.Error("Expected content with null byte to be binary")
	}
	if IsBinary(nil) {
		t.Error("Expected empty content to not be binary")
	}
}
