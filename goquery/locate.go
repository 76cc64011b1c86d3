package goquery

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/artex"
	"golang.org/x/net/html"
)

// Block elements whose text is scored as one unit.
var unitTags = map[string]bool{
	"p": true, "pre": true, "td": true, "blockquote": true, "li": true, "dd": true,
}

// Containers whose own inline text is scored when it is not wrapped in
// unit elements.
var containerTags = map[string]bool{
	"div": true, "section": true, "article": true, "main": true, "body": true,
}

var inlineTags = map[string]bool{
	"a": true, "span": true, "em": true, "strong": true, "b": true, "i": true,
	"u": true, "small": true, "code": true, "mark": true, "abbr": true,
	"cite": true, "q": true, "sub": true, "sup": true, "time": true, "font": true,
}

var (
	negativeTags = map[string]bool{"nav": true, "aside": true, "footer": true, "header": true, "form": true, "menu": true}
	positiveTags = map[string]bool{"article": true, "main": true}

	negativeClass = regexp.MustCompile(`nav|sidebar|footer|comment|advert|related|menu|share|social|promo|sponsor|breadcrumb|pagination|masthead|widget|popup|cookie|banner|subscribe|newsletter`)
	positiveClass = regexp.MustCompile(`article|content|story|main|entry|post|body|text|blog`)
)

// candidate is a node that received propagated content score.
type candidate struct {
	node       *html.Node
	score      float64
	paragraphs int
}

// scorer holds the scores of one document, keyed by node identity.
type scorer struct {
	d          *document
	candidates map[*html.Node]*candidate
	units      map[*html.Node]float64
}

// locate selects the article region: the best scoring candidate plus
// qualifying siblings, in document order. Returns nil when no candidate
// reaches the minimum score.
func (d *document) locate() []*html.Node {
	s := &scorer{
		d:          d,
		candidates: make(map[*html.Node]*candidate),
		units:      make(map[*html.Node]float64),
	}
	s.scoreUnits()

	top := s.top()
	if top == nil || top.score < d.cfg.MinCandidateScore {
		return nil
	}
	return s.withSiblings(top)
}

func (s *scorer) scoreUnits() {
	walk(s.d.doc.Nodes[0], func(n *html.Node, _ int) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch {
		case unitTags[n.Data] && !containsUnit(n):
			text := textOf(n)
			score := s.unitScore(text, linkDensity(n))
			if score <= 0 {
				return false
			}
			if n.Data == "p" {
				score++
			}
			s.units[n] = score
			s.propagate(n.Parent, score, n.Data == "p")
			return false
		case containerTags[n.Data]:
			text, linkLen := ownInlineText(n)
			density := 0.0
			if l := utf8.RuneCountInString(text); l > 0 {
				density = float64(linkLen) / float64(l)
			}
			if score := s.unitScore(text, density); score > 0 {
				s.propagate(n, score, false)
			}
		}
		return true
	})
}

// unitScore scores one block of text: stopword count (or a third of the
// word count for languages without stopwords), commas and a length bonus,
// scaled down by link density.
func (s *scorer) unitScore(text string, density float64) float64 {
	words := artex.Words(text)
	if words < s.d.cfg.MinParagraphWords {
		return 0
	}
	var base float64
	if len(s.d.lang.Stopwords) > 0 {
		base = float64(s.d.lang.StopwordCount(text))
	} else {
		base = float64(words) / 3
	}
	commas := strings.Count(text, ",") + strings.Count(text, "،") + strings.Count(text, "，")
	lengthBonus := math.Min(float64(utf8.RuneCountInString(text))/100, 3)
	return (1 + base + float64(commas) + lengthBonus) * (1 - density)
}

// propagate credits score to start and a decayed share to its ancestors.
func (s *scorer) propagate(start *html.Node, score float64, paragraph bool) {
	share := score
	level := 0
	for n := start; n != nil && n.Type == html.ElementNode && level < s.d.cfg.PropagationDepth; n = n.Parent {
		c := s.candidate(n)
		c.score += share
		if paragraph && level == 0 {
			c.paragraphs++
		}
		share *= s.d.cfg.DecayFactor
		level++
	}
}

func (s *scorer) candidate(n *html.Node) *candidate {
	if c, ok := s.candidates[n]; ok {
		return c
	}
	c := &candidate{node: n, score: s.classWeight(n)}
	s.candidates[n] = c
	return c
}

// classWeight adjusts a candidate by its tag, class and id.
func (s *scorer) classWeight(n *html.Node) float64 {
	var w float64
	if negativeTags[n.Data] {
		w -= s.d.cfg.NegativeWeight
	}
	if positiveTags[n.Data] {
		w += s.d.cfg.PositiveWeight
	}
	names := classAndID(n)
	if strings.TrimSpace(names) == "" {
		return w
	}
	if negativeClass.MatchString(names) {
		w -= s.d.cfg.NegativeWeight
	}
	if positiveClass.MatchString(names) {
		w += s.d.cfg.PositiveWeight
	}
	return w
}

// top returns the best candidate. Ties go to the greater depth-adjusted
// text length, then to the earliest node in document order.
func (s *scorer) top() *candidate {
	ordered := make([]*candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		ordered = append(ordered, c)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return s.d.before(ordered[i].node, ordered[j].node)
	})

	var best *candidate
	var bestLen float64
	for _, c := range ordered {
		if best == nil || c.score > best.score {
			best, bestLen = c, s.adjustedLen(c.node)
			continue
		}
		if c.score == best.score {
			if l := s.adjustedLen(c.node); l > bestLen {
				best, bestLen = c, l
			}
		}
	}
	return best
}

// adjustedLen is the non-link text length of n discounted by its depth.
func (s *scorer) adjustedLen(n *html.Node) float64 {
	l := utf8.RuneCountInString(textOf(n)) - linkTextLen(n)
	return float64(l) / (1 + 0.1*float64(s.d.index[n].depth))
}

// withSiblings returns top together with the siblings whose own score
// exceeds the sibling threshold, in document order.
func (s *scorer) withSiblings(top *candidate) []*html.Node {
	parent := top.node.Parent
	if parent == nil {
		return []*html.Node{top.node}
	}
	threshold := top.score * s.d.cfg.SiblingThreshold
	var nodes []*html.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c == top.node {
			nodes = append(nodes, c)
			continue
		}
		if c.Type == html.ElementNode && s.ownScore(c) > threshold {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

func (s *scorer) ownScore(n *html.Node) float64 {
	if c, ok := s.candidates[n]; ok {
		return c.score
	}
	return s.units[n]
}

// containsUnit reports whether n has a unit element below it.
func containsUnit(n *html.Node) bool {
	found := false
	for c := n.FirstChild; c != nil && !found; c = c.NextSibling {
		walk(c, func(x *html.Node, _ int) bool {
			if found {
				return false
			}
			if x.Type == html.ElementNode && unitTags[x.Data] {
				found = true
				return false
			}
			return true
		})
	}
	return found
}

// ownInlineText returns the text of the direct text and inline children of
// n, and the rune length of the link text among them.
func ownInlineText(n *html.Node) (string, int) {
	var b strings.Builder
	linkLen := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(c.Data)
		case c.Type == html.ElementNode && inlineTags[c.Data]:
			t := textOf(c)
			b.WriteString(" " + t + " ")
			if c.Data == "a" {
				linkLen += utf8.RuneCountInString(t)
			} else {
				linkLen += linkTextLen(c)
			}
		}
	}
	return collapse(b.String()), linkLen
}
