// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package go2web

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/defenseunicorns/go2web/extract"
	"github.com/defenseunicorns/go2web/rawhttp"
	"github.com/defenseunicorns/go2web/search"
)

// Render writes the page content to w
//
// When color is set JSON is highlighted and Markdown is rendered for the terminal.
func Render(w io.Writer, page *Page, color bool) error {
	content := strings.TrimRight(page.Content, "\n")

	// unstyled output is still correct output, styling errors are ignored
	switch {
	case !color:
	case page.Kind == rawhttp.KindJSON:
		var buf strings.Builder
		if err := quick.Highlight(&buf, content, "json", "terminal256", chromaStyle()); err == nil {
			content = buf.String()
		}
	case page.Format == extract.FormatMarkdown:
		if out, err := renderMarkdown(content); err == nil {
			content = strings.TrimRight(out, "\n")
		}
	}

	_, err := fmt.Fprintln(w, content)
	return err
}

// RenderResults writes numbered search results to w
//
// The numbers match the indexes accepted by Service.Previous.
func RenderResults(w io.Writer, results []search.Result, color bool) error {
	if color && len(results) > 0 {
		var md strings.Builder
		for i, r := range results {
			fmt.Fprintf(&md, "%d. **%s**  \n   <%s>\n", i+1, r.Title, r.URL)
		}
		out, err := renderMarkdown(md.String())
		if err == nil {
			_, err = io.WriteString(w, out)
			return err
		}
	}

	for i, r := range results {
		if _, err := fmt.Fprintf(w, "%d. %s\nLink: %s\n\n", i+1, r.Title, r.URL); err != nil {
			return err
		}
	}
	return nil
}

func renderMarkdown(md string) (string, error) {
	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}

func chromaStyle() string {
	if lipgloss.HasDarkBackground() {
		return "tokyonight-moon"
	}
	return "tokyonight-day"
}
