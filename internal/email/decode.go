package email

import (
	"io"
	"mime"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

var headerDecoder = mime.WordDecoder{CharsetReader: charsetReader}

// DecodeHeader decodes RFC 2047 encoded-words in a header value. Plain
// segments pass through unchanged, undecodable bytes become U+FFFD, and a
// structurally malformed encoded-word leaves the whole value untouched. It
// never fails.
func DecodeHeader(value string) string {
	decoded, err := headerDecoder.DecodeHeader(value)
	if err != nil {
		return value
	}
	return strings.ToValidUTF8(decoded, "�")
}

// charsetReader converts a named charset to UTF-8. The x/text decoders
// substitute U+FFFD for bytes invalid in the source encoding rather than
// returning errors; charsets missing from the IANA index fall back to
// treating the bytes as UTF-8.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.MIME.Encoding(charset)
	if err != nil || enc == nil {
		raw, rerr := io.ReadAll(input)
		if rerr != nil {
			return nil, rerr
		}
		return strings.NewReader(strings.ToValidUTF8(string(raw), "�")), nil
	}
	return enc.NewDecoder().Reader(input), nil
}

// decodeCharset converts body bytes in the named charset to UTF-8 with the
// same replacement rules as charsetReader. An empty charset means UTF-8.
func decodeCharset(raw []byte, charset string) string {
	if charset == "" || strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "us-ascii") {
		return strings.ToValidUTF8(string(raw), "�")
	}
	enc, err := ianaindex.MIME.Encoding(charset)
	if err != nil || enc == nil {
		return strings.ToValidUTF8(string(raw), "�")
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(decoded)
}
