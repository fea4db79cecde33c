package ingest

import (
	"bytes"
	"fmt"
	"log/slog"
	nurl "net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/use-agent/unslop/models"
)

// minContentLength is the shortest readability TextContent accepted before
// falling back to the whole document.
const minContentLength = 50

// blockSelector lists elements whose text ends a line.
const blockSelector = "p, div, li, h1, h2, h3, h4, h5, h6, blockquote, pre, tr, section, article, header, footer, br"

// fromHTML runs the HTML flow:
//
//	selector    → keep only matching elements (optional)
//	readability → main content and title, or the whole document as fallback
//	convert     → plain text, or Markdown when outputFormat is "markdown"
func (e *Extractor) fromHTML(rawHTML, sourceURL, selector, outputFormat string) (*Document, error) {
	doc := &Document{Bytes: len(rawHTML)}

	// ── 1. Selector ─────────────────────────────────────────────────
	if selector != "" {
		narrowed, err := applyCSSSelector(rawHTML, selector)
		if err != nil {
			return nil, models.NewServiceError(models.ErrCodeInvalidInput,
				fmt.Sprintf("invalid css selector %q", selector), err)
		}
		rawHTML = narrowed
	}

	// ── 2. Main content ─────────────────────────────────────────────
	article, ok := extractContent(rawHTML, sourceURL)
	content := rawHTML
	if ok {
		content = article.Content
		doc.Title = article.Title
	}

	// ── 3. Conversion ───────────────────────────────────────────────
	if outputFormat == "markdown" {
		md, err := e.mdConverter.ConvertString(content, converter.WithDomain(sourceURL))
		if err != nil {
			return nil, models.NewServiceError(models.ErrCodeExtraction, "markdown conversion failed", err)
		}
		doc.Text = md
		return doc, nil
	}

	text, err := htmlToText(content)
	if err != nil {
		return nil, models.NewServiceError(models.ErrCodeExtraction, "could not parse html", err)
	}
	doc.Text = text
	return doc, nil
}

// applyCSSSelector returns the concatenated outer HTML of every element
// matching selector, or rawHTML unchanged when nothing matches.
func applyCSSSelector(rawHTML, selector string) (string, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return "", err
	}

	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	matches := cascadia.QueryAll(root, sel)
	if len(matches) == 0 {
		return rawHTML, nil
	}

	var buf bytes.Buffer
	for _, node := range matches {
		if err := html.Render(&buf, node); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// extractContent runs Mozilla Readability over rawHTML. It reports false
// when the result is unusable and the caller should keep the full document.
func extractContent(rawHTML, sourceURL string) (readability.Article, bool) {
	parsedURL, err := nurl.Parse(sourceURL)
	if err != nil {
		slog.Warn("readability: invalid source URL, using full document", "url", sourceURL, "error", err)
		return readability.Article{}, false
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		slog.Debug("readability: extraction failed, using full document", "url", sourceURL, "error", err)
		return readability.Article{}, false
	}
	if len(strings.TrimSpace(article.TextContent)) < minContentLength {
		return article, false
	}
	return article, true
}

// htmlToText returns the visible text of an HTML fragment with a line break
// after every block element, so sentence splitting sees paragraph ends.
func htmlToText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript, template, head").Remove()
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	kept := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n"), nil
}

// newMarkdownConverter creates a reusable, goroutine-safe Converter.
func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
}
