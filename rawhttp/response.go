// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package rawhttp

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Response is one hop's response as read off the wire
type Response struct {
	Proto      string
	StatusCode int
	Reason     string
	Headers    *Headers
	Body       string
	// Lossy is set when the payload was not valid UTF-8 and was decoded byte-wise
	Lossy bool
}

// DecodeStrict interprets b as UTF-8 text, failing on invalid sequences
func DecodeStrict(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", errors.New("payload is not valid UTF-8")
	}
	return string(b), nil
}

// DecodeLossy maps every byte of b to the code point of the same value
//
// Multi-byte sequences come out as mojibake, but the result is always usable text.
func DecodeLossy(b []byte) string {
	// ISO-8859-1 assigns a code point to every byte value, this cannot fail
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(out)
}

// DecodeResponse reads r until EOF and parses the result
func DecodeResponse(r io.Reader) (*Response, error) {
	b, err := io.ReadAll(r)
	if err != nil && (len(b) == 0 || !errors.Is(err, io.ErrUnexpectedEOF)) {
		return nil, err
	}

	lossy := false
	text, err := DecodeStrict(b)
	if err != nil {
		text = DecodeLossy(b)
		lossy = true
	}

	resp, err := ParseResponse(text)
	if err != nil {
		return nil, err
	}
	resp.Lossy = lossy
	return resp, nil
}

// ParseResponse splits a full response into status line, headers and body
func ParseResponse(text string) (*Response, error) {
	head, body, ok := strings.Cut(text, "\r\n\r\n")
	if !ok {
		return nil, parseErrorf("missing header/body delimiter")
	}

	lines := strings.Split(head, "\r\n")

	resp, err := parseStatusLine(lines[0])
	if err != nil {
		return nil, err
	}

	resp.Headers = &Headers{}
	for _, line := range lines[1:] {
		name, value, ok := strings.Cut(line, ":")
		if !ok || name == "" || strings.ContainsAny(name, " \t") {
			return nil, parseErrorf("malformed header line %q", line)
		}
		resp.Headers.Add(name, strings.TrimSpace(value))
	}
	resp.Body = body

	return resp, nil
}

func parseStatusLine(line string) (*Response, error) {
	proto, rest, ok := strings.Cut(line, " ")
	if !ok || !strings.HasPrefix(proto, "HTTP/") {
		return nil, parseErrorf("malformed status line %q", line)
	}

	codeStr, reason, _ := strings.Cut(rest, " ")
	if len(codeStr) != 3 {
		return nil, parseErrorf("malformed status code %q", codeStr)
	}
	code, err := strconv.Atoi(codeStr)
	if err != nil || code < 100 {
		return nil, parseErrorf("malformed status code %q", codeStr)
	}

	return &Response{
		Proto:      proto,
		StatusCode: code,
		Reason:     strings.TrimSpace(reason),
	}, nil
}
