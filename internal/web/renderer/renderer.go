package renderer

import (
	"bytes"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/niklasfasching/go-org/org"
)

// HTMLWriter returns an org HTML writer that runs code blocks through
// chroma. Unknown languages fall back to plain text.
func HTMLWriter() *org.HTMLWriter {
	w := org.NewHTMLWriter()
	w.HighlightCodeBlock = highlight
	return w
}

func highlight(source, lang string, inline bool, params map[string]string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	formatter := html.New(html.WithClasses(true))
	if err := formatter.Format(&buf, styles.Get("friendly"), iterator); err != nil {
		return source
	}
	return buf.String()
}
