package kb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gopdf "github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// maxPDFPages bounds extraction work on pathological PDFs.
const maxPDFPages = 200

// extract reads one document and returns its plain text and format.
func extract(path string) (text, format string, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = extractPDF(path)
		return text, "pdf", err
	case ".html":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "html", err
		}
		return extractHTML(string(data)), "html", nil
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "text", err
		}
		return string(data), "text", nil
	default:
		return "", "", fmt.Errorf("unsupported document type: %s", path)
	}
}

// extractPDF pulls plain text from every page of the document.
func extractPDF(path string) (string, error) {
	pdfFile, reader, err := gopdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer pdfFile.Close()

	totalPages := reader.NumPage()
	if totalPages > maxPDFPages {
		totalPages = maxPDFPages
	}

	var b strings.Builder
	for p := 1; p <= totalPages; p++ {
		page := reader.Page(p)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue // skip pages that won't extract
		}
		b.WriteString(pageText)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// extractHTML strips tags and returns visible text.
func extractHTML(rawHTML string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(rawHTML))
	var b strings.Builder
	var skip bool

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			tag := string(tn)
			if tag == "script" || tag == "style" || tag == "noscript" || tag == "head" {
				skip = true
			}
			if isBlockTag(tag) {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			tag := string(tn)
			if tag == "script" || tag == "style" || tag == "noscript" || tag == "head" {
				skip = false
			}
		case html.TextToken:
			if !skip {
				text := strings.TrimSpace(string(tokenizer.Text()))
				if text != "" {
					if b.Len() > 0 {
						b.WriteByte(' ')
					}
					b.WriteString(text)
				}
			}
		}
	}
}

func isBlockTag(tag string) bool {
	switch tag {
	case "div", "p", "br", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "table", "tr", "td", "th",
		"section", "article", "header", "footer", "nav",
		"blockquote", "pre", "hr":
		return true
	}
	return false
}
