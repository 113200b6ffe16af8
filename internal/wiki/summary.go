// internal/wiki/summary.go
//
// Introductory extract lookup and first-sentence cutting.

package wiki

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// SummaryUnavailable is returned by FirstSentence when no usable extract
// exists. It is valid text, not an error signal.
const SummaryUnavailable = "Could not retrieve the first sentence for this location."

// missingPageID is the page key the API uses for titles that do not exist.
const missingPageID = "-1"

type extractsResponse struct {
	Query *struct {
		Pages map[string]struct {
			Title   string  `json:"title"`
			Extract string  `json:"extract"`
			Missing *string `json:"missing"`
		} `json:"pages"`
	} `json:"query"`
}

// FirstSentence fetches the introduction of title and returns its first
// sentence, or SummaryUnavailable.
func (c *Client) FirstSentence(ctx context.Context, title string) string {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	if !c.html {
		params.Set("explaintext", "1")
	}
	params.Set("redirects", "1")
	params.Set("titles", title)

	var res extractsResponse
	if err := c.get(ctx, params, &res); err != nil {
		log.Debug().Err(err).Str("title", title).Msg("extract lookup failed")
		return SummaryUnavailable
	}
	if res.Query == nil {
		return SummaryUnavailable
	}
	for id, page := range res.Query.Pages {
		if id == missingPageID || page.Missing != nil {
			return SummaryUnavailable
		}
		extract := page.Extract
		if c.html {
			extract = htmlToText(extract)
		}
		return FirstSentence(extract)
	}
	return SummaryUnavailable
}

// FirstSentence returns the text up to the first ". " with a trailing period.
// Text with no such boundary is returned whole, ending in exactly one period.
// Blank input yields SummaryUnavailable.
func FirstSentence(extract string) string {
	extract = strings.TrimSpace(extract)
	if extract == "" {
		return SummaryUnavailable
	}
	if i := strings.Index(extract, ". "); i >= 0 {
		return extract[:i] + "."
	}
	return strings.TrimSuffix(extract, ".") + "."
}

// htmlToText flattens an HTML extract to the text of its paragraphs.
func htmlToText(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return ""
	}
	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := strings.Join(strings.Fields(p.Text()), " "); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return strings.Join(strings.Fields(doc.Text()), " ")
	}
	return strings.Join(parts, " ")
}
