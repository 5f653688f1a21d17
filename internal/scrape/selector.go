package scrape

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Locator finds one candidate node in a parsed HTML tree and reports its
// trimmed text. A miss is ("", false); locators never fail. Site strategies
// list locators most-specific first and take the first non-empty hit, which
// keeps extraction working when a site drops or renames one selector.
type Locator interface {
	Match(root *html.Node) (string, bool)
}

// firstMatch tries each locator in order and returns the first non-empty
// trimmed text. An empty match continues the chain. Returns "" when every
// locator misses.
func firstMatch(root *html.Node, locators []Locator) string {
	if root == nil {
		return ""
	}
	for _, loc := range locators {
		if text, ok := loc.Match(root); ok && text != "" {
			return text
		}
	}
	return ""
}

// byID matches the element with the given id attribute.
type byID struct{ id string }

func (l byID) Match(root *html.Node) (string, bool) {
	n := findNode(root, func(n *html.Node) bool {
		return attrVal(n, "id") == l.id
	})
	if n == nil {
		return "", false
	}
	return nodeText(n), true
}

// byTag matches the first element with the given tag name.
type byTag struct{ tag string }

func (l byTag) Match(root *html.Node) (string, bool) {
	n := findNode(root, func(n *html.Node) bool {
		return strings.EqualFold(n.Data, l.tag)
	})
	if n == nil {
		return "", false
	}
	return nodeText(n), true
}

// byClass matches the first element carrying the given class token,
// optionally restricted to one tag name.
type byClass struct {
	tag   string // empty means any element
	class string
}

func (l byClass) Match(root *html.Node) (string, bool) {
	n := findNode(root, func(n *html.Node) bool {
		if l.tag != "" && !strings.EqualFold(n.Data, l.tag) {
			return false
		}
		return hasClassToken(n, l.class)
	})
	if n == nil {
		return "", false
	}
	return nodeText(n), true
}

// byAttr matches the first element whose attribute equals the given value,
// e.g. data-testid markers on Indeed.
type byAttr struct{ key, val string }

func (l byAttr) Match(root *html.Node) (string, bool) {
	n := findNode(root, func(n *html.Node) bool {
		return attrVal(n, l.key) == l.val
	})
	if n == nil {
		return "", false
	}
	return nodeText(n), true
}

// byClassContains matches the first element whose class attribute contains
// the substring anywhere. This is the broad catch-all used by the generic
// strategy on unrecognized sites.
type byClassContains struct{ substr string }

func (l byClassContains) Match(root *html.Node) (string, bool) {
	n := findNode(root, func(n *html.Node) bool {
		return strings.Contains(strings.ToLower(attrVal(n, "class")), l.substr)
	})
	if n == nil {
		return "", false
	}
	return nodeText(n), true
}

// byClassPattern matches the first element from the tag set whose class
// attribute matches the precompiled pattern. Patterns are compiled once at
// package init so evaluation itself cannot fail.
type byClassPattern struct {
	tags    []string // empty means any element
	pattern *regexp.Regexp
}

func (l byClassPattern) Match(root *html.Node) (string, bool) {
	n := findNode(root, func(n *html.Node) bool {
		if len(l.tags) > 0 && !tagIn(n, l.tags) {
			return false
		}
		return l.pattern.MatchString(strings.ToLower(attrVal(n, "class")))
	})
	if n == nil {
		return "", false
	}
	return nodeText(n), true
}

func tagIn(n *html.Node, tags []string) bool {
	for _, t := range tags {
		if strings.EqualFold(n.Data, t) {
			return true
		}
	}
	return false
}

// findNode walks the tree depth-first and returns the first element node
// satisfying pred.
func findNode(root *html.Node, pred func(*html.Node) bool) *html.Node {
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if res != nil {
			return
		}
		if cur.Type == html.ElementNode && pred(cur) {
			res = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != nil {
				return
			}
		}
	}
	dfs(root)
	return res
}

// nodeText concatenates the text content of a subtree, skipping script and
// style, with whitespace runs collapsed and the result trimmed.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if cur.Type == html.ElementNode {
			switch strings.ToLower(cur.Data) {
			case "script", "style", "noscript":
				return
			}
		}
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(n)
	return strings.TrimSpace(collapseSpaces(b.String()))
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func hasClassToken(n *html.Node, class string) bool {
	for _, tok := range strings.Fields(attrVal(n, "class")) {
		if tok == class {
			return true
		}
	}
	return false
}
