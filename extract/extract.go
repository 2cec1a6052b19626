// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package extract flattens HTML documents into readable text.
package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Tags are the elements whose content is extracted
var Tags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"span": true, "p": true, "img": true, "a": true, "button": true,
}

// Text renders the text, links and images of markup, one item per line
//
// Links and image sources are resolved against pageURL.
func Text(pageURL, markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("failed to parse markup from %s: %w", pageURL, err)
	}

	var b lineBuilder
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		if !Tags[name] {
			return
		}

		switch name {
		case "a":
			href, ok := s.Attr("href")
			if !ok {
				return
			}
			label := strings.Join(textNodes(s), "")
			if label == "" {
				b.add(fmt.Sprintf("Link: %q", ResolveLink(pageURL, href)))
				return
			}
			b.add(fmt.Sprintf("Link: (%s) %q", label, ResolveLink(pageURL, href)))
		case "img":
			src, ok := s.Attr("src")
			if !ok {
				return
			}
			b.add(fmt.Sprintf("Image: %q", ResolveLink(pageURL, src)))
		case "h1", "h2", "h3", "h4", "h5", "h6":
			b.separate()
			for _, text := range textNodes(s) {
				b.add(text)
			}
		default:
			for _, text := range textNodes(s) {
				b.add(text)
			}
		}
	})

	return b.String(), nil
}

// textNodes returns the trimmed, non-empty text nodes below the selection in document order
func textNodes(s *goquery.Selection) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				out = append(out, text)
			}
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return out
}

// ResolveLink makes link absolute relative to the page it was found on
//
// Scheme-relative links ("//host/path") are given https.
func ResolveLink(pageURL, link string) string {
	if strings.HasPrefix(link, "//") {
		return "https:" + link
	}

	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	if ref.IsAbs() {
		return link
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return pageURL + link
	}
	return base.ResolveReference(ref).String()
}

// lineBuilder joins lines, dropping empty lines and lines already written
type lineBuilder struct {
	sb   strings.Builder
	seen map[string]bool
	// pending is set when the next line should be preceded by a blank line
	pending bool
}

func (b *lineBuilder) add(line string) {
	if line == "" || b.seen[line] {
		return
	}
	if b.seen == nil {
		b.seen = make(map[string]bool)
	}
	b.seen[line] = true

	if b.pending && b.sb.Len() > 0 {
		b.sb.WriteByte('\n')
	}
	b.pending = false

	b.sb.WriteString(line)
	b.sb.WriteByte('\n')
}

func (b *lineBuilder) separate() {
	b.pending = true
}

func (b *lineBuilder) String() string {
	return b.sb.String()
}
