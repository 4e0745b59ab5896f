// Package filename turns client-supplied file names into names that are safe
// to use as a single path segment on any common filesystem.
package filename

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Placeholder is returned when nothing usable survives sanitisation.
const Placeholder = "file"

// MaxBytes is the longest name most filesystems accept for a single segment.
const MaxBytes = 255

const reservedChars = `/\?<>:*|"`

var windowsReserved = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// Sanitize removes path separators, reserved and control characters, leading
// dots and trailing dots/spaces from raw. Windows device names are rejected
// and the result is truncated to MaxBytes. It never returns an empty string.
func Sanitize(raw string) string {
	s := norm.NFC.String(strings.ToValidUTF8(raw, ""))

	s = strings.Map(func(r rune) rune {
		if isControl(r) || strings.ContainsRune(reservedChars, r) {
			return -1
		}
		return r
	}, s)

	s = strings.TrimLeft(s, ". ")
	s = strings.TrimRight(s, ". ")

	if isWindowsReserved(s) {
		return Placeholder
	}

	s = Truncate(s, MaxBytes)
	if s == "" {
		return Placeholder
	}
	return s
}

func isControl(r rune) bool {
	return r < 0x20 || (r >= 0x7f && r <= 0x9f)
}

func isWindowsReserved(s string) bool {
	base, _, _ := strings.Cut(s, ".")
	_, ok := windowsReserved[strings.ToUpper(strings.TrimSpace(base))]
	return ok
}

// maxExtBytes is the longest extension Truncate tries to keep.
const maxExtBytes = 16

// Truncate cuts name to at most n bytes without splitting a rune. A short
// extension is kept and the stem is shortened instead. Trailing dots and
// spaces left by the cut are removed.
func Truncate(name string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(name) <= n {
		return name
	}
	ext := filepath.Ext(name)
	if len(ext) > maxExtBytes || len(ext) >= n {
		ext = ""
	}
	stem := strings.TrimSuffix(name, ext)
	return strings.TrimRight(cut(stem, n-len(ext)), ". ") + ext
}

// cut shortens s to at most n bytes on a rune boundary.
func cut(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
