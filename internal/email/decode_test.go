package email

import (
	"strings"
	"testing"
)

func TestDecodeHeader_PlainTextUnchanged(t *testing.T) {
	for _, s := range []string{
		"",
		"Test Subject",
		"Re: [ticket] odd chars like @ and #",
		"already decoded テスト件名",
	} {
		if got := DecodeHeader(s); got != s {
			t.Errorf("DecodeHeader(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestDecodeHeader_Idempotent(t *testing.T) {
	once := DecodeHeader("=?UTF-8?B?44OG44K544OI5Lu25ZCN?=")
	twice := DecodeHeader(once)
	if once != twice {
		t.Errorf("second decode changed the value: %q vs %q", once, twice)
	}
}

func TestDecodeHeader_Base64UTF8(t *testing.T) {
	got := DecodeHeader("=?UTF-8?B?44OG44K544OI5Lu25ZCN?=")
	if got != "テスト件名" {
		t.Errorf("got %q, want %q", got, "テスト件名")
	}
	if strings.Contains(got, "=?") {
		t.Errorf("residual encoded-word marker in %q", got)
	}
}

func TestDecodeHeader_QEncodedLatin1(t *testing.T) {
	got := DecodeHeader("=?ISO-8859-1?Q?Caf=E9?=")
	if got != "Café" {
		t.Errorf("got %q, want %q", got, "Café")
	}
}

func TestDecodeHeader_MixedSegments(t *testing.T) {
	got := DecodeHeader("Fwd: =?UTF-8?B?44OG44K544OI?=")
	if got != "Fwd: テスト" {
		t.Errorf("got %q, want %q", got, "Fwd: テスト")
	}
}

func TestDecodeHeader_InvalidBytesReplaced(t *testing.T) {
	// 0xFF is not valid UTF-8; the byte must become U+FFFD, not an error.
	got := DecodeHeader("=?UTF-8?B?/w==?=")
	if got != "�" {
		t.Errorf("got %q, want replacement character", got)
	}
}

func TestDecodeHeader_UnknownCharsetFallsBackToUTF8(t *testing.T) {
	got := DecodeHeader("=?X-UNKNOWN-1?B?aGVsbG8=?=")
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestDecodeHeader_MalformedWordLeftUntouched(t *testing.T) {
	in := "=?UTF-8?B?not base64 at all!?="
	if got := DecodeHeader(in); got != in {
		t.Errorf("got %q, want input unchanged", got)
	}
}
