// Package ingest turns the supported input formats into plain text for the
// analyzer and rewriter.
package ingest

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"golang.org/x/text/unicode/norm"

	"github.com/use-agent/unslop/fetch"
	"github.com/use-agent/unslop/models"
	"github.com/use-agent/unslop/textutil"
)

// Supported source formats.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatURL  = "url"
)

// Document is ingested text plus what is known about where it came from.
type Document struct {
	Format string
	Text   string
	Title  string
	URL    string
	Bytes  int
}

// Info summarizes the document for API responses.
func (d *Document) Info() models.DocumentInfo {
	return models.DocumentInfo{
		Format: d.Format,
		Title:  d.Title,
		URL:    d.URL,
		Bytes:  d.Bytes,
		Words:  textutil.WordCount(d.Text),
		Tokens: textutil.EstimateTokens(d.Text),
	}
}

// Extractor converts sources into Documents.
// It is safe for concurrent use.
type Extractor struct {
	fetcher     fetch.Fetcher
	mdConverter *converter.Converter
	maxBytes    int64
}

// New creates an Extractor. fetcher may be nil, in which case URL sources
// are rejected. maxBytes caps the decoded input size; zero means no cap.
func New(fetcher fetch.Fetcher, maxBytes int64) *Extractor {
	return &Extractor{
		fetcher:     fetcher,
		mdConverter: newMarkdownConverter(),
		maxBytes:    maxBytes,
	}
}

// Extract reads src and returns its text, NFC-normalised.
//
// Flow:
//  1. Validate the format and size.
//  2. Decode or fetch the payload.
//  3. Convert it to text (HTML goes through selector → readability → text/markdown).
//  4. Normalise and reject documents with no text.
func (e *Extractor) Extract(ctx context.Context, src models.Source) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := strings.ToLower(src.Format)
	if format == "" {
		format = FormatText
	}

	var (
		doc *Document
		err error
	)
	switch format {
	case FormatText:
		if err := e.checkSize(len(src.Text)); err != nil {
			return nil, err
		}
		doc = &Document{Text: src.Text, Bytes: len(src.Text)}

	case FormatHTML:
		if err := e.checkSize(len(src.Text)); err != nil {
			return nil, err
		}
		doc, err = e.fromHTML(src.Text, "", src.CSSSelector, src.OutputFormat)

	case FormatPDF, FormatDOCX:
		data, derr := e.decode(src.Data)
		if derr != nil {
			return nil, derr
		}
		var text string
		if format == FormatPDF {
			text, err = extractPDF(data)
		} else {
			text, err = extractDOCX(data)
		}
		if err != nil {
			return nil, models.NewServiceError(models.ErrCodeExtraction,
				fmt.Sprintf("could not read %s document", format), err)
		}
		doc = &Document{Text: text, Bytes: len(data)}

	case FormatURL:
		doc, err = e.fromURL(ctx, src)

	default:
		return nil, models.NewServiceError(models.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported source format %q", src.Format), nil)
	}
	if err != nil {
		return nil, err
	}

	doc.Format = format
	doc.Text = textutil.Trim(norm.NFC.String(doc.Text))
	if doc.Text == "" {
		return nil, models.NewServiceError(models.ErrCodeInvalidInput, "no text found in input", nil)
	}
	return doc, nil
}

func (e *Extractor) fromURL(ctx context.Context, src models.Source) (*Document, error) {
	if e.fetcher == nil {
		return nil, models.NewServiceError(models.ErrCodeUnsupportedFormat, "url sources are disabled", nil)
	}
	if src.URL == "" {
		return nil, models.NewServiceError(models.ErrCodeInvalidInput, "url is required for url sources", nil)
	}

	page, err := e.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, models.NewServiceError(models.ErrCodeFetchFailed, fetchMessage(err), err)
	}
	if err := e.checkSize(len(page.HTML)); err != nil {
		return nil, err
	}

	doc, err := e.fromHTML(page.HTML, page.FinalURL, src.CSSSelector, src.OutputFormat)
	if err != nil {
		return nil, err
	}
	doc.URL = page.FinalURL
	if doc.Title == "" {
		doc.Title = page.Title
	}
	return doc, nil
}

func fetchMessage(err error) string {
	var statusErr *fetch.StatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("page returned status %d", statusErr.StatusCode)
	case errors.Is(err, fetch.ErrNotHTML):
		return "page is not an HTML document"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out fetching page"
	}
	return "could not fetch page"
}

func (e *Extractor) decode(data string) ([]byte, error) {
	if data == "" {
		return nil, models.NewServiceError(models.ErrCodeInvalidInput, "data is required for document sources", nil)
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, models.NewServiceError(models.ErrCodeInvalidInput, "data is not valid base64", err)
	}
	if err := e.checkSize(len(raw)); err != nil {
		return nil, err
	}
	return raw, nil
}

func (e *Extractor) checkSize(n int) error {
	if e.maxBytes > 0 && int64(n) > e.maxBytes {
		return models.NewServiceError(models.ErrCodeInvalidInput,
			fmt.Sprintf("input is %d bytes; the limit is %d", n, e.maxBytes), nil)
	}
	return nil
}
