package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/unslop/fetch"
	"github.com/use-agent/unslop/models"
)

type fakeFetcher struct {
	page *fetch.Page
	err  error
	got  string
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (*fetch.Page, error) {
	f.got = rawURL
	return f.page, f.err
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	var se *models.ServiceError
	require.True(t, errors.As(err, &se), "expected *models.ServiceError, got %v", err)
	return se.Code
}

func docxBytes(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText(t *testing.T) {
	e := New(nil, 0)

	doc, err := e.Extract(context.Background(), models.Source{Text: "  cafe\u0301 time.  "})
	require.NoError(t, err)
	assert.Equal(t, FormatText, doc.Format)
	assert.Equal(t, "caf\u00e9 time.", doc.Text)
	assert.Equal(t, 2, doc.Info().Words)
	assert.Equal(t, 3, doc.Info().Tokens)

	_, err = e.Extract(context.Background(), models.Source{Text: " \n "})
	assert.Equal(t, models.ErrCodeInvalidInput, errCode(t, err))
}

func TestExtractHTML(t *testing.T) {
	e := New(nil, 0)

	doc, err := e.Extract(context.Background(), models.Source{
		Format: FormatHTML,
		Text:   `<html><head><title>x</title></head><body><p>One.</p><p>Two!</p><script>var a = 1;</script></body></html>`,
	})
	require.NoError(t, err)
	assert.Equal(t, "One.\nTwo!", doc.Text)
}

func TestExtractHTMLSelector(t *testing.T) {
	e := New(nil, 0)

	doc, err := e.Extract(context.Background(), models.Source{
		Format:      FormatHTML,
		Text:        `<div class="a">Keep me.</div><div class="b">Drop me.</div>`,
		CSSSelector: ".a",
	})
	require.NoError(t, err)
	assert.Equal(t, "Keep me.", doc.Text)

	_, err = e.Extract(context.Background(), models.Source{Format: FormatHTML, Text: "<p>x</p>", CSSSelector: "[["})
	assert.Equal(t, models.ErrCodeInvalidInput, errCode(t, err))
}

func TestExtractHTMLMarkdown(t *testing.T) {
	e := New(nil, 0)

	doc, err := e.Extract(context.Background(), models.Source{
		Format:       FormatHTML,
		Text:         `<h1>Title</h1><p>Hello <b>world</b></p>`,
		OutputFormat: "markdown",
	})
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "# Title")
	assert.Contains(t, doc.Text, "**world**")
}

func TestExtractDOCX(t *testing.T) {
	e := New(nil, 0)
	data := docxBytes(t, `<w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:tab/><w:t>there.</w:t></w:r></w:p><w:p><w:r><w:t>Second</w:t></w:r></w:p>`)

	doc, err := e.Extract(context.Background(), models.Source{
		Format: FormatDOCX,
		Data:   base64.StdEncoding.EncodeToString(data),
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello there.\nSecond", doc.Text)
	assert.Equal(t, len(data), doc.Bytes)
}

func TestExtractDocumentErrors(t *testing.T) {
	e := New(nil, 0)

	tests := []struct {
		name string
		src  models.Source
		code string
	}{
		{"missing data", models.Source{Format: FormatPDF}, models.ErrCodeInvalidInput},
		{"bad base64", models.Source{Format: FormatPDF, Data: "%%%"}, models.ErrCodeInvalidInput},
		{"not a pdf", models.Source{Format: FormatPDF, Data: base64.StdEncoding.EncodeToString([]byte("hello"))}, models.ErrCodeExtraction},
		{"not a zip", models.Source{Format: FormatDOCX, Data: base64.StdEncoding.EncodeToString([]byte("hello"))}, models.ErrCodeExtraction},
		{"unknown format", models.Source{Format: "rtf", Text: "x"}, models.ErrCodeUnsupportedFormat},
		{"url without fetcher", models.Source{Format: FormatURL, URL: "https://example.com"}, models.ErrCodeUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(context.Background(), tt.src)
			assert.Equal(t, tt.code, errCode(t, err))
		})
	}
}

func TestExtractURL(t *testing.T) {
	f := &fakeFetcher{page: &fetch.Page{
		URL:      "https://x.test/start",
		FinalURL: "https://x.test/final",
		Title:    "Page title",
		HTML:     `<html><body><p>From the web.</p></body></html>`,
	}}
	e := New(f, 0)

	doc, err := e.Extract(context.Background(), models.Source{Format: FormatURL, URL: "https://x.test/start"})
	require.NoError(t, err)
	assert.Equal(t, "https://x.test/start", f.got)
	assert.Equal(t, "From the web.", doc.Text)
	assert.Equal(t, "https://x.test/final", doc.URL)
	assert.Equal(t, "Page title", doc.Title)
	assert.Equal(t, FormatURL, doc.Format)
}

func TestExtractURLErrors(t *testing.T) {
	f := &fakeFetcher{err: &fetch.StatusError{StatusCode: 404, URL: "https://x.test"}}
	e := New(f, 0)

	_, err := e.Extract(context.Background(), models.Source{Format: FormatURL, URL: "https://x.test"})
	var se *models.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, models.ErrCodeFetchFailed, se.Code)
	assert.Equal(t, "page returned status 404", se.Message)

	_, err = e.Extract(context.Background(), models.Source{Format: FormatURL})
	assert.Equal(t, models.ErrCodeInvalidInput, errCode(t, err))
}

func TestExtractSizeLimit(t *testing.T) {
	e := New(nil, 10)

	_, err := e.Extract(context.Background(), models.Source{Text: "this is more than ten bytes"})
	assert.Equal(t, models.ErrCodeInvalidInput, errCode(t, err))

	doc, err := e.Extract(context.Background(), models.Source{Text: "short"})
	require.NoError(t, err)
	assert.Equal(t, "short", doc.Text)
}

func TestExtractCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(nil, 0).Extract(ctx, models.Source{Text: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
