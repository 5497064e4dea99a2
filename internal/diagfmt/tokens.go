package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"cppbind/internal/source"
	"cppbind/internal/token"
)

// FormatTokensPretty writes one token per line with its position.
func FormatTokensPretty(w io.Writer, toks []token.Token, fs *source.FileSet) error {
	for _, t := range toks {
		pos := fs.Position(t.Span.File, t.Span.Start)
		if _, err := fmt.Fprintf(w, "%4d:%-4d %-12s %q\n",
			pos.Line, pos.Col, t.Kind, t.Text); err != nil {
			return err
		}
	}
	return nil
}

type tokenPayload struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// FormatTokensJSON writes the token stream as an indented JSON array.
func FormatTokensJSON(w io.Writer, toks []token.Token) error {
	out := make([]tokenPayload, 0, len(toks))
	for _, t := range toks {
		out = append(out, tokenPayload{
			Kind:  t.Kind.String(),
			Text:  t.Text,
			Start: t.Span.Start,
			End:   t.Span.End,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
