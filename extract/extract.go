package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"go.uber.org/zap"
)

const maxBodySize = 10 << 20

// Extractor fetches a job-posting page and reduces it to plain text.
// Extraction strategies are tried in order: trafilatura, readability, then a
// plain join of <p> elements. An empty result means no usable content; the
// caller decides how to surface that.
type Extractor struct {
	httpClient *http.Client
	logger     *zap.Logger
}

func New(timeout time.Duration, logger *zap.Logger) *Extractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (e *Extractor) Extract(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s returned status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", pageURL, err)
	}

	text := e.extractText(body, pageURL)
	e.logger.Debug("extracted page text",
		zap.String("url", pageURL),
		zap.Int("html_size", len(body)),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

func (e *Extractor) extractText(body []byte, pageURL string) string {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	if result, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
		OriginalURL: parsedURL,
	}); err == nil {
		if text := strings.TrimSpace(result.ContentText); text != "" {
			return text
		}
	} else {
		e.logger.Debug("trafilatura extraction failed", zap.String("url", pageURL), zap.Error(err))
	}

	if article, err := readability.FromReader(bytes.NewReader(body), parsedURL); err == nil {
		if text := strings.TrimSpace(article.TextContent); text != "" {
			return text
		}
	} else {
		e.logger.Debug("readability extraction failed", zap.String("url", pageURL), zap.Error(err))
	}

	text, err := Paragraphs(bytes.NewReader(body))
	if err != nil {
		e.logger.Debug("paragraph extraction failed", zap.String("url", pageURL), zap.Error(err))
		return ""
	}
	return text
}

// Paragraphs joins the text of every non-empty <p> element with single
// spaces.
func Paragraphs(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	var parts []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, " "), nil
}
