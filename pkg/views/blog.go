package views

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/electa-dev/electa/pkg/catalog"
	. "github.com/electa-dev/electa/pkg/vdom"
)

// Blog texts.
const (
	NoArticlesTitle    = "No articles yet"
	NoArticlesText     = "Check back soon for new content!"
	ArticleNotFound    = "Article not found"
	AdPlaceholderText  = "Advertisement"
	minParagraphsForAd = 6
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	articlePolicy = bluemonday.UGCPolicy()
)

// BlogList renders the article cards, newest first as loaded.
func BlogList(articles []catalog.Article) *VNode {
	if len(articles) == 0 {
		return Div(ID(TargetArticles), Class("articles-grid"),
			Div(Class("empty-state"),
				H2(NoArticlesTitle),
				P(NoArticlesText),
			),
		)
	}
	return Div(ID(TargetArticles), Class("articles-grid"),
		Range(articles, func(a catalog.Article, _ int) *VNode {
			return Article(Class("article-card"), Data("article-id", a.ID),
				image(a.FeaturedImage, Alt(a.Title), Class("article-card-image"), Loading("lazy")),
				Div(Class("article-card-content"),
					H2(Class("article-card-title"), a.Title),
					P(Class("article-card-excerpt"), a.Excerpt),
					Div(Class("article-card-meta"),
						Span("By "+a.Author),
						Span(a.DisplayDate()),
					),
					A(Href(ArticlePath(a.ID)), Class("read-more-btn"), "Read More"),
				),
			)
		}),
	)
}

// BlogPage renders the blog index.
func BlogPage(articles []catalog.Article) *VNode {
	return Section(Class("page-section"),
		H1("Blog"),
		BlogList(articles),
	)
}

// ArticlePage renders a full article. pageURL is the canonical address
// used by the share links. adsAllowed marks the in-content ad slot as
// consented.
func ArticlePage(a catalog.Article, pageURL string, adsAllowed bool) *VNode {
	return Article(Class("article-page"), Data("article-id", a.ID),
		Header(Class("article-header"),
			H1(ID("articleHeading"), a.Title),
			P(Class("article-meta"),
				Span(ID("articleAuthor"), a.Author),
				" · ",
				Span(ID("articleDate"), a.DisplayDate()),
			),
		),
		Div(ID("articleFeaturedImage"), Class("article-featured-image"),
			image(a.FeaturedImage, Alt(a.Title)),
		),
		Div(ID("articleContent"), Class("article-content"),
			ArticleBody(a.Content, adsAllowed),
		),
		ShareLinks(a, pageURL),
		Div(Class("article-back"),
			A(Href("/blog"), Class("primary-btn"), "Back to Blog"),
		),
	)
}

// ArticleNotFoundPage is rendered for a missing or unknown article id.
func ArticleNotFoundPage() *VNode {
	return Section(Class("page-section"),
		H1(ArticleNotFound),
		A(Href("/blog"), "Back to Blog"),
	)
}

// ArticleBody converts markdown to sanitised HTML. When the body has at
// least six paragraphs an ad slot follows the middle one.
func ArticleBody(content string, adsAllowed bool) *VNode {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return P(content)
	}
	safe := string(articlePolicy.SanitizeBytes(buf.Bytes()))
	return Raw(insertAdSlot(safe, adsAllowed))
}

func insertAdSlot(body string, adsAllowed bool) string {
	n := strings.Count(body, "<p>")
	if n < minParagraphsForAd {
		return body
	}

	// Insert after the paragraph at index n/2.
	target := n/2 + 1
	pos := 0
	for i := 0; i < target; i++ {
		idx := strings.Index(body[pos:], "</p>")
		if idx < 0 {
			return body
		}
		pos += idx + len("</p>")
	}
	return body[:pos] + adSlotHTML(adsAllowed) + body[pos:]
}

func adSlotHTML(adsAllowed bool) string {
	class := "ad-slot ad-slot-middle ad-slot-google"
	if adsAllowed {
		class += " consent-given"
	}
	return `<div class="` + class + `" data-ad-position="middle"><div class="ad-placeholder">` + AdPlaceholderText + `</div></div>`
}

// ShareLinks renders the social share buttons for an article.
func ShareLinks(a catalog.Article, pageURL string) *VNode {
	u := url.QueryEscape(pageURL)
	title := url.QueryEscape(a.Title)
	return Div(Class("share-buttons"),
		A(Class("share-btn", "share-twitter"), Href("https://twitter.com/intent/tweet?url="+u+"&text="+title), ExternalLink(), "Share on X"),
		A(Class("share-btn", "share-facebook"), Href("https://www.facebook.com/sharer/sharer.php?u="+u), ExternalLink(), "Share on Facebook"),
		A(Class("share-btn", "share-linkedin"), Href("https://www.linkedin.com/sharing/share-offsite/?url="+u), ExternalLink(), "Share on LinkedIn"),
		Button(Class("share-btn", "share-copy"), Type("button"), Data("copy", pageURL), "Copy link"),
	)
}
