package feeds

import (
	"fmt"
	"strings"

	"folio/models"

	"github.com/mmcdole/gofeed/rss"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	// MaxArticles caps the number of records returned per feed
	MaxArticles = 12

	// UnknownAuthor is used when an item carries no author information
	UnknownAuthor = "Unknown"
)

// itemEnvelope wraps a lone <item> block so it can be parsed as a feed of its own
const itemEnvelope = `<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:content="http://purl.org/rss/1.0/modules/content/"><channel>%s</channel></rss>`

// Parse turns raw RSS markup into at most MaxArticles normalized articles, in document order.
//
// Items without a title, link or publication date are dropped. Markup that holds no items,
// or is not a feed at all, yields an empty slice rather than an error. When the document as
// a whole is malformed, every complete <item> block is still parsed on its own.
func Parse(raw string) []models.Article {
	feed, err := parseFeed(raw)
	if err == nil {
		return collect(feed.Items)
	}

	log.WithFields(log.Fields{
		"error": err,
		"bytes": len(raw),
	}).Warn("Could not parse feed markup, parsing items one by one")

	cleaned := strings.ToValidUTF8(raw, "")
	if feed, err := parseFeed(cleaned); err == nil {
		return collect(feed.Items)
	}

	items := make([]*rss.Item, 0, MaxArticles)
	for _, block := range itemBlocks(cleaned) {
		feed, err := parseFeed(fmt.Sprintf(itemEnvelope, block))
		if err != nil {
			log.WithFields(log.Fields{
				"error": err,
			}).Debug("Skipping unparseable item")
			continue
		}
		items = append(items, feed.Items...)
	}

	return collect(items)
}

func parseFeed(raw string) (*rss.Feed, error) {
	parser := &rss.Parser{}
	return parser.Parse(strings.NewReader(raw))
}

// collect keeps the first MaxArticles valid items
func collect(items []*rss.Item) []models.Article {
	articles := make([]models.Article, 0, MaxArticles)
	for _, item := range items {
		if len(articles) == MaxArticles {
			break
		}
		if article, ok := articleFromItem(item); ok {
			articles = append(articles, article)
		}
	}
	return articles
}

// itemBlocks returns every complete <item>...</item> block in document order. An
// unterminated trailing block is left out.
func itemBlocks(raw string) []string {
	var blocks []string
	rest := raw
	for {
		start := indexItemOpen(rest)
		if start < 0 {
			return blocks
		}
		end := strings.Index(rest[start:], "</item>")
		if end < 0 {
			return blocks
		}
		end += start + len("</item>")
		blocks = append(blocks, rest[start:end])
		rest = rest[end:]
	}
}

// indexItemOpen finds "<item>" or "<item " but not longer names like "<items>"
func indexItemOpen(s string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], "<item")
		if i < 0 {
			return -1
		}
		i += offset
		next := i + len("<item")
		if next < len(s) && (s[next] == '>' || s[next] == ' ' || s[next] == '\t' || s[next] == '\n' || s[next] == '\r') {
			return i
		}
		offset = next
	}
}

func articleFromItem(item *rss.Item) (models.Article, bool) {
	if item == nil {
		return models.Article{}, false
	}

	article := models.Article{
		Title:       strings.TrimSpace(item.Title),
		Link:        strings.TrimSpace(item.Link),
		PubDate:     strings.TrimSpace(item.PubDate),
		Author:      itemAuthor(item),
		Description: strings.TrimSpace(item.Description),
	}

	if article.Title == "" || article.Link == "" || article.PubDate == "" {
		return models.Article{}, false
	}

	return article, true
}

// itemAuthor prefers the namespaced dc:creator over the generic author element
func itemAuthor(item *rss.Item) string {
	if item.DublinCoreExt != nil {
		creator, ok := lo.Find(item.DublinCoreExt.Creator, func(c string) bool {
			return strings.TrimSpace(c) != ""
		})
		if ok {
			return strings.TrimSpace(creator)
		}
	}

	if author := strings.TrimSpace(item.Author); author != "" {
		return author
	}

	return UnknownAuthor
}
