// Package source finds audio assets on disk and turns them into plain
// audio bytes for the player.
package source

import (
	"path/filepath"
	"strings"
)

// FileType tags an encrypted asset with the engine layout it came from.
// Plain files carry no type.
type FileType int

const (
	// None marks a plain audio file.
	None FileType = iota
	// MVOgg is an RPG Maker MV encrypted Ogg (.rpgmvo).
	MVOgg
	// MVM4A is an RPG Maker MV encrypted M4A (.rpgmvm).
	MVM4A
	// MZOgg is an RPG Maker MZ encrypted Ogg (.ogg_).
	MZOgg
	// MZM4A is an RPG Maker MZ encrypted M4A (.m4a_).
	MZM4A
)

var encryptedExts = map[string]FileType{
	"rpgmvo": MVOgg,
	"rpgmvm": MVM4A,
	"ogg_":   MZOgg,
	"m4a_":   MZM4A,
}

var plainExts = map[string]bool{
	"ogg":  true,
	"opus": true,
	"m4a":  true,
	"mp4":  true,
	"wav":  true,
	"flac": true,
	"mp3":  true,
}

func (t FileType) String() string {
	switch t {
	case None:
		return "plain"
	case MVOgg:
		return "rpgmvo"
	case MVM4A:
		return "rpgmvm"
	case MZOgg:
		return "ogg_"
	case MZM4A:
		return "m4a_"
	}
	return "unknown"
}

// Encrypted reports whether the file needs decrypting before playback.
func (t FileType) Encrypted() bool { return t != None }

// TypeOf classifies path by extension. ok is false for files that are not
// audio assets.
func TypeOf(path string) (t FileType, ok bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ft, found := encryptedExts[ext]; found {
		return ft, true
	}
	return None, plainExts[ext]
}
