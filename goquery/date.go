package goquery

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/fwojciec/artex"
	"golang.org/x/net/html"
)

// visibleDateTolerance bounds future dates found in page text.
const visibleDateTolerance = 24 * time.Hour

var dateChain = []artex.Strategy[*document, time.Time]{
	{Name: "structured", Extract: (*document).structuredDate},
	{Name: "url", Extract: (*document).urlDate},
	{Name: "visible text", Extract: (*document).visibleDate},
}

// Meta keys carrying the publish date, most reliable first.
var dateMetaKeys = []string{
	"article:published_time",
	"og:article:published_time",
	"og:published_time",
	"datepublished",
	"article.published",
	"published_time",
	"publish-date",
	"publishdate",
	"publish_date",
	"pubdate",
	"publication_date",
	"parsely-pub-date",
	"sailthru.date",
	"dc.date.issued",
	"dcterms.issued",
	"dcterms.created",
	"dc.date",
	"date",
	"rnews:datepublished",
	"cxenseparse:recs:publishtime",
}

func (d *document) structuredDate() (time.Time, bool) {
	for _, key := range []string{"datePublished", "dateCreated"} {
		if v, ok := d.ld(key); ok {
			if t, ok := d.parseDate(ldText(v), d.cfg.FutureDateTolerance); ok {
				return t, true
			}
		}
	}
	for _, key := range dateMetaKeys {
		if t, ok := d.parseDate(d.meta(key), d.cfg.FutureDateTolerance); ok {
			return t, true
		}
	}
	for _, sel := range []string{"[itemprop~='datePublished']", "time[pubdate]"} {
		n := d.doc.Find(sel).First()
		if n.Length() == 0 {
			continue
		}
		for _, a := range []string{"datetime", "content"} {
			if v, ok := n.Attr(a); ok {
				if t, ok := d.parseDate(v, d.cfg.FutureDateTolerance); ok {
					return t, true
				}
			}
		}
		if t, ok := d.parseDate(n.Text(), d.cfg.FutureDateTolerance); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

var urlDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/((?:19|20)\d{2})/(\d{1,2})/(\d{1,2})(?:/|$|[-_.])`),
	regexp.MustCompile(`/((?:19|20)\d{2})-(\d{2})-(\d{2})(?:/|$|[-_.])`),
	regexp.MustCompile(`/((?:19|20)\d{2})(\d{2})(\d{2})(?:/|$|[-_.])`),
}

// urlDate reads a date from the page URL path, e.g. /2025/07/29/.
func (d *document) urlDate() (time.Time, bool) {
	if d.base == nil {
		return time.Time{}, false
	}
	for _, re := range urlDatePatterns {
		m := re.FindStringSubmatch(d.base.Path)
		if m == nil {
			continue
		}
		if t, ok := calendarDate(m[1], m[2], m[3]); ok && !d.inFuture(t, d.cfg.FutureDateTolerance) {
			return t, true
		}
	}
	return time.Time{}, false
}

// calendarDate builds a UTC midnight date, rejecting impossible days.
func calendarDate(year, month, day string) (time.Time, bool) {
	y, _ := dimension(year)
	m, _ := dimension(month)
	dd, _ := dimension(day)
	if m < 1 || m > 12 || dd < 1 || dd > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), dd, 0, 0, 0, 0, time.UTC)
	if t.Day() != dd {
		return time.Time{}, false
	}
	return t, true
}

var (
	publicationKeyword = regexp.MustCompile(`(?i)published|posted|updated|publicado|actualizado|veröffentlicht|aktualisiert|publié|pubblicato|نشر`)
	dateClassStrong    = regexp.MustCompile(`published|pubdate|publish`)
	dateClassMedium    = regexp.MustCompile(`date`)
	dateClassWeak      = regexp.MustCompile(`time|timestamp|meta|posted`)
)

// visibleDate scores short elements that look like publication lines and
// parses the best one.
func (d *document) visibleDate() (time.Time, bool) {
	var best time.Time
	bestScore := 0
	body := d.doc.Find("body").Nodes
	for _, root := range body {
		walk(root, func(n *html.Node, _ int) bool {
			if !isElement(n, "time", "p", "span", "div", "td", "li") {
				return true
			}
			text := textOf(n)
			l := utf8.RuneCountInString(text)
			if l > 200 {
				return true
			}
			value := text
			if n.Data == "time" {
				if dt := attr(n, "datetime"); dt != "" {
					value = dt
				}
			} else if l < 6 {
				return true
			}

			score := 0
			names := classAndID(n)
			switch {
			case dateClassStrong.MatchString(names):
				score += 120
			case dateClassMedium.MatchString(names):
				score += 80
			case dateClassWeak.MatchString(names):
				score += 50
			}
			if l < 40 {
				score += 40
			}
			if n.Data == "time" {
				score += 60
			}
			if publicationKeyword.MatchString(text) {
				score += 100
			}
			if hasAncestor(n, "nav", "aside", "footer") {
				score -= 20
			}
			if score <= bestScore {
				return true
			}
			if t, ok := d.parseFragment(value); ok {
				best, bestScore = t, score
			}
			return true
		})
	}
	return best, bestScore > 0
}

var datePrefix = regexp.MustCompile(`(?i)^\s*(?:last\s+updated|published|posted|updated|modified|date|publicado|actualizado|veröffentlicht|aktualisiert|publié|mis à jour|pubblicato|تاريخ النشر|نشر في|نشر|آخر تحديث)\s*(?:on|el|am|le|em|il|في)?\s*:?\s*`)

var ordinalSuffix = regexp.MustCompile(`(\d)(?:st|nd|rd|th)\b`)

var dateFragments = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}(?:[T ]\d{1,2}:\d{2}(?::\d{2})?(?:\.\d+)?(?:Z|[+-]\d{2}:?\d{2})?)?`),
	regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?\s+\d{4}`),
	regexp.MustCompile(`\b\d{4}/\d{1,2}/\d{1,2}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
}

// parseFragment finds a date inside free text.
func (d *document) parseFragment(text string) (time.Time, bool) {
	text = normalizeDateText(text)
	for _, re := range dateFragments {
		for _, m := range re.FindAllString(text, 3) {
			if t, ok := d.parseDate(m, visibleDateTolerance); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// parseDate parses a whole date value. Ambiguous day/month orders, dates
// before 1900 and dates beyond the future tolerance yield nothing. Values
// without a zone are read as UTC.
func (d *document) parseDate(value string, tolerance time.Duration) (time.Time, bool) {
	value = normalizeDateText(value)
	if value == "" {
		return time.Time{}, false
	}
	if _, err := dateparse.ParseStrict(value); err != nil {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil || t.Year() < 1900 || d.inFuture(t, tolerance) {
		return time.Time{}, false
	}
	return t, true
}

func (d *document) inFuture(t time.Time, tolerance time.Duration) bool {
	return t.After(d.now.Add(tolerance))
}

// Month names of supported languages, in their folded forms.
var foreignMonths = map[string]string{
	// es
	"enero": "January", "febrero": "February", "marzo": "March", "abril": "April", "mayo": "May", "junio": "June",
	"julio": "July", "agosto": "August", "septiembre": "September", "setiembre": "September", "octubre": "October",
	"noviembre": "November", "diciembre": "December",
	// de
	"januar": "January", "jänner": "January", "februar": "February", "märz": "March", "mai": "May", "juni": "June",
	"juli": "July", "oktober": "October", "dezember": "December",
	// fr
	"janvier": "January", "février": "February", "mars": "March", "avril": "April", "juin": "June",
	"juillet": "July", "août": "August", "septembre": "September", "octobre": "October", "novembre": "November",
	"décembre": "December",
	// pt
	"janeiro": "January", "fevereiro": "February", "março": "March", "maio": "May", "junho": "June",
	"julho": "July", "setembro": "September", "outubro": "October", "dezembro": "December",
	// it
	"gennaio": "January", "febbraio": "February", "aprile": "April", "maggio": "May", "giugno": "June",
	"luglio": "July", "settembre": "September", "ottobre": "October", "dicembre": "December",
	// ar
	"يناير": "January", "فبراير": "February", "مارس": "March", "أبريل": "April", "ابريل": "April", "مايو": "May",
	"يونيو": "June", "يوليو": "July", "أغسطس": "August", "اغسطس": "August", "سبتمبر": "September",
	"أكتوبر": "October", "اكتوبر": "October", "نوفمبر": "November", "ديسمبر": "December",
}

// Connecting words dropped from dates like "29 de julio de 2025".
var dateFillers = map[string]bool{"de": true, "del": true, "di": true, "le": true, "el": true}

var arabicDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// normalizeDateText strips publication prefixes, ordinal suffixes and
// filler words, and translates month names to English.
func normalizeDateText(s string) string {
	s = arabicDigits.Replace(cleanText(s))
	s = datePrefix.ReplaceAllString(s, "")
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		key := strings.ToLower(strings.Trim(f, ".,"))
		switch {
		case dateFillers[key]:
			continue
		case foreignMonths[key] != "":
			f = foreignMonths[key]
		case isDigits(strings.TrimSuffix(f, ".")):
			f = strings.TrimSuffix(f, ".")
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
