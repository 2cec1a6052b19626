// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package rawhttp

// MaxHeaders is the number of header slots parsed per response
const MaxHeaders = 64

// Header is a single response header, with the name exactly as received
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered, fixed-capacity header list
//
// Once MaxHeaders slots are filled further headers are dropped and Truncated reports true.
type Headers struct {
	slots     [MaxHeaders]Header
	n         int
	truncated bool
}

// Add appends a header, returning false if there was no free slot
func (h *Headers) Add(name, value string) bool {
	if h.n == len(h.slots) {
		h.truncated = true
		return false
	}
	h.slots[h.n] = Header{Name: name, Value: value}
	h.n++
	return true
}

// Get returns the value of the first header whose name is exactly name
//
// Matching is case-sensitive: Get("Location") does not match "location".
func (h *Headers) Get(name string) (string, bool) {
	if h == nil {
		return "", false
	}
	for _, hdr := range h.slots[:h.n] {
		if hdr.Name == name {
			return hdr.Value, true
		}
	}
	return "", false
}

// All returns a copy of the stored headers in received order
func (h *Headers) All() []Header {
	if h == nil {
		return nil
	}
	out := make([]Header, h.n)
	copy(out, h.slots[:h.n])
	return out
}

// Len is the number of stored headers
func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return h.n
}

// Truncated reports whether headers were dropped for lack of slots
func (h *Headers) Truncated() bool {
	return h != nil && h.truncated
}
