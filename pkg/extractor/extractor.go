// Package extractor locates contact and biographical fields inside
// semi-structured faculty profile pages. Each extractor is a pure
// function over a parsed document and returns an empty result when the
// expected structure is missing; none of them fail.
package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)

	// A text node is a phone label only when it is nothing but the label.
	phoneLabelRe = regexp.MustCompile(`(?i)^(phone|telephone|telephone:)$`)

	// North-American-style number: optional (area), optional separator,
	// 3 digits, optional separator, 4 digits.
	phoneRe = regexp.MustCompile(`\(?\d{3}\)?[ \-.]?/?\d{3} ?[ \-.]? ?\d{4}`)
)

// Name returns the (last, first) name pair from the first h1 heading.
// "Last, First" headings split at the first comma; multi-word headings
// use the last word as last name and the first word as first name,
// dropping middle names. ok is false when the page has no h1 or the
// heading is a single token; such pages yield no output row.
// The returned parts are not trimmed; the caller trims each field.
func Name(doc *goquery.Document) (last, first string, ok bool) {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return "", "", false
	}
	name := strings.TrimSpace(h1.Text())
	if strings.Contains(name, ",") {
		parts := strings.SplitN(name, ",", 2)
		return parts[0], parts[1], true
	}
	if fields := strings.Fields(name); len(fields) > 1 {
		return fields[len(fields)-1], fields[0], true
	}
	return "", "", false
}

// Email returns the first email-shaped substring found in any text
// node, with surrounding commas stripped, or "" if none. The pattern
// is a loose shape match, not validation.
func Email(doc *goquery.Document) string {
	node := firstTextNode(doc, emailRe)
	if node == nil {
		return ""
	}
	return strings.Trim(emailRe.FindString(node.Data), ",")
}

// Phone returns the first phone number adjacent to a "Phone" /
// "Telephone" label, or "" when the label is absent or no number
// follows it. The number commonly sits in the node after the label, so
// the label text and the next node's text are matched together.
func Phone(doc *goquery.Document) string {
	label := firstTextNode(doc, phoneLabelRe)
	if label == nil {
		return ""
	}
	return phoneRe.FindString(label.Data + nextNodeText(label))
}

// Education returns the blurb following the "Education" h2 heading, or
// "" when the heading is absent. When the element after the heading is
// an unordered list, the text of the element following the list is read
// instead of the list itself. Commas become hyphens and newlines become
// spaces so the blurb stays in one CSV column.
func Education(doc *goquery.Document) string {
	var heading *html.Node
	doc.Find("h2").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.Text() == "Education" {
			heading = sel.Get(0)
			return false
		}
		return true
	})
	if heading == nil {
		return ""
	}

	target := nextElement(heading)
	if target == nil {
		return ""
	}
	if target.Data == "ul" {
		target = nextSiblingElement(target)
		if target == nil {
			return ""
		}
	}

	text := strings.ReplaceAll(nodeText(target), ",", "-")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}

// nextInDocument returns the successor of n in document order:
// first child, else next sibling, else the nearest ancestor's sibling.
func nextInDocument(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// firstTextNode returns the first text node in document order whose
// content matches re.
func firstTextNode(doc *goquery.Document, re *regexp.Regexp) *html.Node {
	if len(doc.Nodes) == 0 {
		return nil
	}
	for n := doc.Nodes[0]; n != nil; n = nextInDocument(n) {
		if n.Type == html.TextNode && re.MatchString(n.Data) {
			return n
		}
	}
	return nil
}

// nextNodeText returns the text of the node following n in document
// order: the node's own data for a text node, the full subtree text
// for an element.
func nextNodeText(n *html.Node) string {
	next := nextInDocument(n)
	if next == nil {
		return ""
	}
	if next.Type == html.TextNode {
		return next.Data
	}
	return nodeText(next)
}

// nextElement returns the first element node after n in document order.
func nextElement(n *html.Node) *html.Node {
	for n = nextInDocument(n); n != nil; n = nextInDocument(n) {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

// nextSiblingElement returns the first element among n's following
// siblings.
func nextSiblingElement(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// nodeText concatenates all text beneath n.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
