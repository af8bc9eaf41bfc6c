package tui

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlight colors code for the terminal using the lexer chosen by filename.
// Unknown file types are returned unchanged.
func Highlight(filename, code string) string {
	lexer := lexerForFile(filename)
	if lexer == nil {
		return code
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	var b strings.Builder
	for _, token := range iterator.Tokens() {
		color := tokenColor(style, token.Type)
		// Render line by line so styles never span a newline.
		for i, part := range strings.Split(token.Value, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if part == "" {
				continue
			}
			if color == "" || strings.TrimSpace(part) == "" {
				b.WriteString(part)
				continue
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(color)).
				TabWidth(lipgloss.NoTabConversion).
				Render(part))
		}
	}
	out := b.String()
	if !strings.HasSuffix(code, "\n") {
		out = strings.TrimSuffix(out, "\n")
	}
	return out
}

func lexerForFile(filename string) chroma.Lexer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		if ext := filepath.Ext(filename); ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	return lexer
}

func tokenColor(style *chroma.Style, tt chroma.TokenType) string {
	entry := style.Get(tt)
	if entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return ""
}
