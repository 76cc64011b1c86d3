// Package charset resolves the character encoding of raw documents and
// decodes them to UTF-8.
package charset

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/artex"
	"github.com/gogs/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// prescanBytes is how much of a document is searched for a meta charset.
const prescanBytes = 1024

// minGuessConfidence is the lowest chardet confidence accepted.
const minGuessConfidence = 30

// Ensure Decoder implements artex.Decoder at compile time.
var _ artex.Decoder = (*Decoder)(nil)

// Decoder resolves encodings in order: declared label, Content-Type
// charset, meta charset, byte order mark, valid UTF-8, statistical guess.
// Undecodable bytes are replaced with U+FFFD.
type Decoder struct {
	// MaxInputBytes truncates longer inputs. Zero means no limit.
	MaxInputBytes int
}

// NewDecoder creates a new Decoder.
func NewDecoder(cfg artex.Config) *Decoder {
	return &Decoder{MaxInputBytes: cfg.MaxInputBytes}
}

// Decode decodes in to a UTF-8 page.
func (d *Decoder) Decode(in *artex.Input) (*artex.Page, error) {
	page := &artex.Page{URL: in.URL, Language: in.Language, Warnings: []string{}}
	b := in.HTML
	if len(b) == 0 {
		page.Encoding = "utf-8"
		return page, nil
	}

	if reason := binaryReason(b); reason != "" {
		return nil, artex.Errorf(artex.EINVALID, "input is not text: %s", reason)
	}

	if d.MaxInputBytes > 0 && len(b) > d.MaxInputBytes {
		b = b[:d.MaxInputBytes]
		page.Warnings = append(page.Warnings, fmt.Sprintf("input truncated to %d bytes", d.MaxInputBytes))
	}

	enc, name, warnings := resolve(b, in.Encoding, in.ContentType)
	page.Warnings = append(page.Warnings, warnings...)
	page.Encoding = name

	var text string
	if enc == nil {
		if !utf8.Valid(b) {
			page.Warnings = append(page.Warnings, "invalid UTF-8 sequences replaced")
		}
		text = strings.ToValidUTF8(string(b), "\uFFFD")
	} else {
		decoded, err := enc.NewDecoder().Bytes(b)
		if err != nil {
			page.Warnings = append(page.Warnings, fmt.Sprintf("decoding %s failed, replaced invalid bytes: %v", name, err))
			decoded = []byte(strings.ToValidUTF8(string(b), "\uFFFD"))
		}
		text = string(decoded)
	}
	page.HTML = strings.TrimPrefix(text, "\uFEFF")
	return page, nil
}

// resolve picks the encoding of b. A nil encoding means UTF-8.
func resolve(b []byte, declared, contentType string) (encoding.Encoding, string, []string) {
	var warnings []string

	labels := []struct{ source, label string }{
		{"declared encoding", declared},
		{"content type", contentTypeCharset(contentType)},
		{"meta charset", prescan(b)},
	}
	for _, l := range labels {
		if l.label == "" {
			continue
		}
		enc, name := charset.Lookup(l.label)
		if enc == nil {
			warnings = append(warnings, fmt.Sprintf("unknown %s %q ignored", l.source, l.label))
			continue
		}
		return utf8OrNil(enc, name), name, warnings
	}

	if enc, name := bom(b); enc != nil {
		return enc, name, warnings
	}

	if utf8.Valid(b) {
		return nil, "utf-8", warnings
	}

	if res, err := chardet.NewTextDetector().DetectBest(b); err == nil && res.Confidence >= minGuessConfidence {
		if enc, name := charset.Lookup(res.Charset); enc != nil {
			warnings = append(warnings, fmt.Sprintf("encoding guessed as %s", name))
			return utf8OrNil(enc, name), name, warnings
		}
	}

	return nil, "utf-8", warnings
}

func utf8OrNil(enc encoding.Encoding, name string) encoding.Encoding {
	if name == "utf-8" {
		return nil
	}
	return enc
}

func contentTypeCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// bom detects a byte order mark.
func bom(b []byte) (encoding.Encoding, string) {
	switch {
	case bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}):
		return nil, ""
	case bytes.HasPrefix(b, []byte{0xFE, 0xFF}):
		return charset.Lookup("utf-16be")
	case bytes.HasPrefix(b, []byte{0xFF, 0xFE}):
		return charset.Lookup("utf-16le")
	}
	return nil, ""
}

// prescan looks for <meta charset> or an http-equiv Content-Type in the
// head of the document.
func prescan(b []byte) string {
	if len(b) > prescanBytes {
		b = b[:prescanBytes]
	}
	z := html.NewTokenizer(bytes.NewReader(b))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "meta" || !hasAttr {
				continue
			}
			var httpEquiv, content string
			for {
				key, val, more := z.TagAttr()
				switch strings.ToLower(string(key)) {
				case "charset":
					return strings.TrimSpace(string(val))
				case "http-equiv":
					httpEquiv = strings.ToLower(string(val))
				case "content":
					content = string(val)
				}
				if !more {
					break
				}
			}
			if httpEquiv == "content-type" {
				if cs := contentTypeCharset(content); cs != "" {
					return cs
				}
			}
		}
	}
}

// binaryReason returns why b is not a text document, or "" if it is.
func binaryReason(b []byte) string {
	if bytes.HasPrefix(b, []byte{0xFE, 0xFF}) || bytes.HasPrefix(b, []byte{0xFF, 0xFE}) {
		return ""
	}
	sniffed := http.DetectContentType(b)
	mediaType, _, _ := mime.ParseMediaType(sniffed)
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return ""
	case mediaType == "application/octet-stream":
		if controlRatio(b) > 0.1 {
			return "binary data"
		}
		return ""
	}
	return "content sniffed as " + mediaType
}

// controlRatio is the share of control bytes other than whitespace in the
// first kilobyte.
func controlRatio(b []byte) float64 {
	if len(b) > prescanBytes {
		b = b[:prescanBytes]
	}
	n := 0
	for _, c := range b {
		if c < 0x20 && c != '\t' && c != '\n' && c != '\r' && c != '\f' {
			n++
		}
	}
	return float64(n) / float64(len(b))
}
