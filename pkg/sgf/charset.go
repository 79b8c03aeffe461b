package sgf

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/goban/pkg/gametree"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ToUTF8 transcodes raw SGF bytes according to their CA property. Records
// without CA, or declaring UTF-8 or ASCII, are returned unchanged after a
// validity check.
func ToUTF8(data []byte) (string, error) {
	charset := declaredCharset(data)
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("sgf: input is not valid UTF-8 and declares no charset")
		}
		return string(data), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("sgf: unsupported charset %q: %w", charset, err)
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("sgf: decoding %s: %w", charset, err)
	}
	return string(out), nil
}

// Decode reads a whole collection from r, honouring the CA charset.
func Decode(r io.Reader, opts ...Option) ([]*gametree.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sgf: read: %w", err)
	}
	return ParseBytes(data, opts...)
}

// ParseBytes is Parse for raw bytes in any charset declared by CA.
func ParseBytes(data []byte, opts ...Option) ([]*gametree.Tree, error) {
	text, err := ToUTF8(data)
	if err != nil {
		return nil, err
	}
	return Parse(text, opts...)
}

// declaredCharset returns the CA value of the first game's root node, or "".
// Root properties are read one at a time and reading stops at CA, so text
// further on, possibly in a multi-byte charset, is never tokenized. Property
// identifiers and charset names are ASCII in every charset SGF files use.
func declaredCharset(data []byte) string {
	p := &parser{src: strings.TrimPrefix(string(data), "\ufeff"), line: 1, col: 1}
	if p.expect('(') != nil || p.expect(';') != nil {
		return ""
	}
	for {
		p.skipSpace()
		if p.eof() || !isUpper(p.peek()) {
			return ""
		}
		prop, err := p.property()
		if err != nil {
			return ""
		}
		if prop.Ident == "CA" {
			return strings.TrimSpace(prop.Values[0])
		}
	}
}
