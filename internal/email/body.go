package email

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"strings"
)

// PlainBody returns the message's plain-text content. For multipart messages
// it walks the parts depth first, nested multiparts included, and returns the
// decoded text of the first part whose media type is exactly text/plain, or
// the empty string when there is none. For everything else it decodes the
// sole payload. Decoding is best effort and never fails.
func (m *Message) PlainBody() string {
	mediaType, params := contentType(m.header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if text, ok := firstPlainPart(bytes.NewReader(m.body), params["boundary"]); ok {
			return text
		}
		return ""
	}
	return decodePayload(m.body, m.header.Get("Content-Transfer-Encoding"), params["charset"])
}

// firstPlainPart walks one multipart level, recursing into nested multiparts.
func firstPlainPart(r io.Reader, boundary string) (string, bool) {
	mr := multipart.NewReader(r, boundary)
	for {
		part, err := mr.NextPart()
		if err != nil {
			return "", false
		}
		mediaType, params := contentType(part.Header.Get("Content-Type"))
		if mediaType == "text/plain" {
			// multipart.Part undoes quoted-printable itself and drops
			// the header; base64 is left for decodePayload.
			raw, _ := io.ReadAll(part)
			return decodePayload(raw, part.Header.Get("Content-Transfer-Encoding"), params["charset"]), true
		}
		if strings.HasPrefix(mediaType, "multipart/") {
			if text, ok := firstPlainPart(part, params["boundary"]); ok {
				return text, ok
			}
		}
	}
}

// contentType parses a Content-Type header, applying the RFC 2045 default of
// text/plain when the header is missing or malformed.
func contentType(header string) (string, map[string]string) {
	if header == "" {
		return "text/plain", nil
	}
	mediaType, params, err := mime.ParseMediaType(header)
	if err != nil {
		return "text/plain", nil
	}
	return mediaType, params
}

// decodePayload undoes a Content-Transfer-Encoding and converts the result to
// UTF-8. Truncated base64 or quoted-printable input yields whatever decoded
// cleanly before the damage.
func decodePayload(raw []byte, transferEncoding, charset string) string {
	var decoded []byte
	switch strings.ToLower(strings.TrimSpace(transferEncoding)) {
	case "base64":
		decoded, _ = io.ReadAll(base64.NewDecoder(base64.StdEncoding, bytes.NewReader(raw)))
	case "quoted-printable":
		decoded, _ = io.ReadAll(quotedprintable.NewReader(bytes.NewReader(raw)))
	default:
		decoded = raw
	}
	return decodeCharset(decoded, charset)
}
