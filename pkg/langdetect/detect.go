// Package langdetect provides language detection for script content.
// It uses go-enry to decide whether a file being patched is actually a
// shell script, primarily so the CLI can warn about mismatched input.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Dialect constants for common shells.
const (
	DialectSh   = "sh"
	DialectBash = "bash"
	DialectKsh  = "ksh"
	DialectDash = "dash"
	DialectZsh  = "zsh"
)

// IsShell reports whether content looks like a shell script.
func IsShell(path string, content []byte) bool {
	return Detect(path, content) != ""
}

// Detect returns the shell dialect for script content, or the empty string
// when the content does not look like a shell script.
//
// Detection prefers the shebang line, then the file extension, then the
// enry classifier.
func Detect(path string, content []byte) string {
	if dialect := detectByShebang(content); dialect != "" {
		return dialect
	}
	if dialect := detectByExtension(path); dialect != "" {
		return dialect
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return ""
	}
	candidates := []string{"Shell", "Go", "Python", "Ruby", "Perl", "Makefile", "Markdown"}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang == "Shell" {
		return DialectSh
	}
	return ""
}

// detectByShebang inspects the interpreter named on the first line.
func detectByShebang(content []byte) string {
	if lang, safe := enry.GetLanguageByShebang(content); !safe || lang != "Shell" {
		return ""
	}

	line, _, _ := bytes.Cut(content, []byte("\n"))
	interp := string(bytes.TrimPrefix(line, []byte("#!")))

	// "#!/usr/bin/env bash" names the shell in the argument.
	fields := strings.Fields(interp)
	if len(fields) == 0 {
		return DialectSh
	}
	name := filepath.Base(fields[0])
	if name == "env" && len(fields) > 1 {
		name = filepath.Base(fields[1])
	}

	switch name {
	case DialectBash, DialectKsh, DialectDash, DialectZsh:
		return name
	default:
		return DialectSh
	}
}

func detectByExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sh":
		return DialectSh
	case ".bash":
		return DialectBash
	case ".ksh":
		return DialectKsh
	case ".zsh":
		return DialectZsh
	default:
		return ""
	}
}
