package document

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadRejectsNonPDFInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"plain text", "this is not a pdf"},
		{"truncated header", "%PDF-1.4"},
		{"binary garbage", "\x00\x01\x02\x03\xff\xfe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Loader{}.Load(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Load() returned nil error for unreadable input")
			}
			if !errors.Is(err, ErrUnreadable) {
				t.Errorf("Load() error = %v, want ErrUnreadable", err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := (Loader{}).LoadFile("testdata/does-not-exist.pdf"); err == nil {
		t.Fatal("LoadFile() returned nil error for missing file")
	}
}
