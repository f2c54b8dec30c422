package web

import (
	"encoding/xml"
	"fmt"
	"time"

	"ai-blog/models"
)

// RSS ist das Wurzelelement eines RSS-2.0-Dokuments.
type RSS struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel RSSChannel `xml:"channel"`
}

// RSSChannel beschreibt den Blog als Feed.
type RSSChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []RSSItem `xml:"item"`
}

// RSSItem ist ein Artikel im Feed.
type RSSItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	Author      string  `xml:"author"`
	PubDate     string  `xml:"pubDate"`
	GUID        RSSGUID `xml:"guid"`
}

// RSSGUID ist die stabile Kennung eines Eintrags.
type RSSGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// BuildFeed erzeugt den RSS-Feed. Die Reihenfolge der Artikel bleibt erhalten.
func BuildFeed(siteURL string, articles []models.Article) ([]byte, error) {
	channel := RSSChannel{
		Title:       "AI Blog",
		Link:        siteURL + "/",
		Description: "Fresh articles generated daily by advanced AI.",
		Language:    "en",
	}
	if len(articles) > 0 {
		channel.LastBuildDate = articles[0].CreatedAt.UTC().Format(time.RFC1123Z)
	}

	for _, a := range articles {
		link := fmt.Sprintf("%s/article/%d", siteURL, a.ID)
		channel.Items = append(channel.Items, RSSItem{
			Title:       a.Title,
			Link:        link,
			Description: a.Excerpt,
			Author:      a.Author,
			PubDate:     a.CreatedAt.UTC().Format(time.RFC1123Z),
			GUID:        RSSGUID{IsPermaLink: true, Value: link},
		})
	}

	out, err := xml.MarshalIndent(RSS{Version: "2.0", Channel: channel}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
