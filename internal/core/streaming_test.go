package core

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("Nr,Shop")...),
			expected: "Nr,Shop",
		},
		{
			name:     "file without BOM",
			input:    []byte("Nr,Shop"),
			expected: "Nr,Shop",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := io.ReadAll(NewBOMSkippingReader(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"valid ASCII", []byte("Nr,Kunde"), "Nr,Kunde"},
		{"valid multibyte", []byte("Max Müller"), "Max Müller"},
		{"invalid single byte", []byte{'h', 'e', 0x80, 'l', 'o'}, "he?lo"},
		{"truncated sequence at EOF", []byte{'a', 0xC3}, "a?"},
		{"empty input", []byte{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := io.ReadAll(NewUTF8Sanitizer(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer_SplitAcrossReads(t *testing.T) {
	// iotest.OneByteReader splits "ü" (0xC3 0xBC) across two reads.
	input := []byte("Straße, München")
	result, err := io.ReadAll(NewUTF8Sanitizer(iotest.OneByteReader(bytes.NewReader(input))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != string(input) {
		t.Errorf("got %q, want %q", result, input)
	}
}

func TestWrapFixtureReader(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Nr\n1\xff\n")...)
	r := WrapFixtureReader(bytes.NewReader(input))

	result, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != "Nr\n1?\n" {
		t.Errorf("got %q, want %q", result, "Nr\n1?\n")
	}
	if r.BytesRead != int64(len(result)) {
		t.Errorf("BytesRead = %d, want %d", r.BytesRead, len(result))
	}
}
