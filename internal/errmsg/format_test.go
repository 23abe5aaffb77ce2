//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpFileRead,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpFileRead,
			err:      errors.New("file not found"),
			expected: "Failed to read file: file not found",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("probing format failed: unrecognized container"),
			expected: "Failed to start playback: probing format failed: unrecognized container",
		},
		{
			name:     "decrypt operation",
			op:       OpFileDecrypt,
			err:      errors.New("bad header"),
			expected: "Failed to decrypt file: bad header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpFileRead,
			context:  "bgm.ogg",
			err:      nil,
			expected: "",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpFileRead,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to read file: permission denied",
		},
		{
			name:     "formats with context",
			op:       OpFileDecrypt,
			context:  "audio/bgm/Battle1.rpgmvo",
			err:      errors.New("invalid header"),
			expected: "Failed to decrypt file 'audio/bgm/Battle1.rpgmvo': invalid header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpFileRead, OpFileDecrypt, OpFileScan,
		OpPlaybackStart,
		OpAudioInit, OpInitialize, OpRemoteInit,
	}
	seen := make(map[Op]bool)
	for _, op := range ops {
		if op == "" {
			t.Error("empty Op constant")
		}
		if seen[op] {
			t.Errorf("duplicate Op %q", op)
		}
		seen[op] = true
	}
}
