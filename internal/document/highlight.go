package document

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	defaultStyleName = "monokai"
	maxHighlightSize = 1 << 20 // larger files render plain
)

// chromaStyle resolves a style name to a Chroma style, falling back to the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// getLexer prefers the detected language, then the file name, then content analysis.
func getLexer(language, name, text string) chroma.Lexer {
	if language != "" {
		if l := lexers.Get(language); l != nil {
			return l
		}
	}
	if l := lexers.Match(name); l != nil {
		return l
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// highlight renders each line with terminal256 escapes. The result has one
// entry per input line; on any failure it returns nil and callers show the
// plain text.
func highlight(lines []string, language, name, styleName string) []string {
	text := strings.Join(lines, "\n")
	if len(text) > maxHighlightSize {
		return nil
	}

	lexer := chroma.Coalesce(getLexer(language, name, text))
	it, err := lexer.Tokenise(nil, text+"\n")
	if err != nil {
		return nil
	}

	formatter := formatters.Get("terminal256")
	style := chromaStyle(styleName)

	tokenLines := chroma.SplitTokensIntoLines(it.Tokens())
	out := make([]string, len(lines))
	var sb strings.Builder
	for i := range out {
		if i >= len(tokenLines) {
			out[i] = lines[i]
			continue
		}
		toks := make([]chroma.Token, 0, len(tokenLines[i]))
		for _, tok := range tokenLines[i] {
			tok.Value = strings.TrimRight(tok.Value, "\n")
			if tok.Value != "" {
				toks = append(toks, tok)
			}
		}
		sb.Reset()
		if err := formatter.Format(&sb, style, chroma.Literator(toks...)); err != nil {
			return nil
		}
		out[i] = strings.TrimRight(sb.String(), "\n")
	}
	return out
}
