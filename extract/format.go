// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package extract

import (
	"fmt"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/go-shiori/go-readability"
	"github.com/invopop/jsonschema"
)

// Format selects how markup is turned into text
type Format string

const (
	// FormatText lists headings, paragraphs, links and images line by line
	FormatText Format = "text"
	// FormatMarkdown converts the whole document to Markdown
	FormatMarkdown Format = "markdown"
	// FormatArticle keeps only the main article of the page
	FormatArticle Format = "article"

	// DefaultFormat is the format used when none is specified
	DefaultFormat = FormatText
)

// AvailableFormats returns a list of available formats
func AvailableFormats() []string {
	return []string{
		string(FormatArticle),
		string(FormatMarkdown),
		string(FormatText),
	}
}

// String implements the pflag.Value and fmt.Stringer interfaces
func (f *Format) String() string {
	return string(*f)
}

// Set implements the pflag.Value interface
func (f *Format) Set(value string) error {
	switch value {
	case string(FormatText):
		*f = FormatText
	case string(FormatMarkdown):
		*f = FormatMarkdown
	case string(FormatArticle):
		*f = FormatArticle
	default:
		return fmt.Errorf("invalid format: %s", value)
	}
	return nil
}

// Type implements the pflag.Value interface
func (f *Format) Type() string {
	return "string"
}

// JSONSchemaExtend extends the JSON schema for Format
func (Format) JSONSchemaExtend(schema *jsonschema.Schema) {
	schema.Type = "string"
	all := []any{}
	for _, f := range AvailableFormats() {
		all = append(all, f)
	}
	schema.Enum = all
	schema.Description = "How HTML pages are turned into text"
}

// Extract renders markup fetched from pageURL in the given format
func Extract(format Format, pageURL, markup string) (string, error) {
	switch format {
	case FormatText, "":
		return Text(pageURL, markup)
	case FormatMarkdown:
		return Markdown(pageURL, markup)
	case FormatArticle:
		return Article(pageURL, markup)
	default:
		return "", fmt.Errorf("invalid format: %s", format)
	}
}

// Markdown converts markup to Markdown, relative links are made absolute
func Markdown(pageURL, markup string) (string, error) {
	var opts []converter.ConvertOptionFunc
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts = append(opts, converter.WithDomain(u.Scheme+"://"+u.Host))
	}

	md, err := htmltomarkdown.ConvertString(markup, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to convert %s to markdown: %w", pageURL, err)
	}
	return strings.TrimSpace(md) + "\n", nil
}

// Article extracts the readable article of a page: its title followed by its text
func Article(pageURL, markup string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(strings.NewReader(markup), u)
	if err != nil {
		return "", fmt.Errorf("failed to extract article from %s: %w", pageURL, err)
	}

	var b lineBuilder
	b.add(strings.TrimSpace(article.Title))
	b.separate()
	for line := range strings.SplitSeq(article.TextContent, "\n") {
		b.add(strings.Join(strings.Fields(line), " "))
	}
	return b.String(), nil
}
