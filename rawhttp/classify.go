// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package rawhttp

import "strings"

// Kind is how a response body should be post-processed
type Kind int

const (
	// KindMarkup bodies are handed to HTML extraction
	KindMarkup Kind = iota
	// KindJSON bodies are passed through verbatim
	KindJSON
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	default:
		return "markup"
	}
}

// Classify inspects the exact "Content-Type" header
func Classify(h *Headers) Kind {
	ct, ok := h.Get("Content-Type")
	if ok && strings.Contains(ct, "application/json") {
		return KindJSON
	}
	return KindMarkup
}
