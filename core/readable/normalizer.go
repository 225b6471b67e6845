// ABOUTME: Normalization of cleaned article markup into typed content nodes
// ABOUTME: Walks the fragment in document order emitting paragraph/heading/quote/image nodes

package readable

import (
	"strings"

	"readwell-api/core/domain"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Normalize walks the cleaned HTML fragment and emits one ContentNode per
// matched element in document order: p and blockquote become text nodes,
// h1-h3 become headings, img with a non-empty src becomes an image node.
// Every other element is structurally transparent. Text is whitespace
// collapsed; elements whose collapsed text is empty emit nothing.
//
// Normalize is a pure function of the fragment: the same input always yields
// the same node sequence.
func Normalize(fragment string) ([]domain.ContentNode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}

	nodes := []domain.ContentNode{}
	doc.Find("p, blockquote, h1, h2, h3, img").Each(func(_ int, sel *goquery.Selection) {
		if len(sel.Nodes) == 0 {
			return
		}
		switch goquery.NodeName(sel) {
		case "img":
			src, _ := sel.Attr("src")
			if src == "" {
				return
			}
			alt, _ := sel.Attr("alt")
			nodes = append(nodes, domain.ContentNode{Kind: domain.NodeImage, Src: src, Alt: alt})
		default:
			kind := nodeKindForTag(sel.Nodes[0])
			text := collapseWhitespace(sel.Text())
			if text == "" {
				return
			}
			nodes = append(nodes, domain.ContentNode{Kind: kind, Text: text})
		}
	})

	return nodes, nil
}

func nodeKindForTag(n *html.Node) domain.NodeKind {
	switch n.Data {
	case "h1":
		return domain.NodeHeading1
	case "h2":
		return domain.NodeHeading2
	case "h3":
		return domain.NodeHeading3
	case "blockquote":
		return domain.NodeQuote
	default:
		return domain.NodeParagraph
	}
}

// collapseWhitespace trims the text and folds runs of whitespace into a
// single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
