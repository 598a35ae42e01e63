package leetcode

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Markdown converts the HTML body of a question into markdown suitable for
// a terminal renderer. Unknown tags are dropped, their text kept.
func Markdown(src string) string {
	src = strings.NewReplacer(
		"<sup>", "^", "</sup>", "",
		"<sub>", "_", "</sub>", "",
		"&nbsp;", " ",
	).Replace(src)

	var (
		b      strings.Builder
		z      = html.NewTokenizer(strings.NewReader(src))
		inPre  int
		lists  []listState
		href   string
		skip   int
		inCode bool
	)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			out := blankRuns.ReplaceAllString(b.String(), "\n\n")
			return strings.TrimSpace(out) + "\n"
		case html.TextToken:
			if skip > 0 {
				continue
			}
			text := string(z.Text())
			if inPre == 0 {
				text = collapseSpace(text)
				if strings.TrimSpace(text) == "" && endsWithNewline(&b) {
					continue
				}
			}
			b.WriteString(text)
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			switch tag {
			case "script", "style":
				if tt == html.StartTagToken {
					skip++
				}
			case "p", "div":
				ensureBlankLine(&b)
			case "br":
				b.WriteString("\n")
			case "strong", "b":
				b.WriteString("**")
			case "em", "i":
				b.WriteString("*")
			case "code":
				if inPre == 0 {
					b.WriteString("`")
					inCode = true
				}
			case "pre":
				ensureBlankLine(&b)
				b.WriteString("```\n")
				inPre++
			case "ul", "ol":
				ensureNewline(&b)
				lists = append(lists, listState{ordered: tag == "ol"})
			case "li":
				ensureNewline(&b)
				if n := len(lists); n > 0 {
					b.WriteString(strings.Repeat("  ", n-1))
					if lists[n-1].ordered {
						lists[n-1].index++
						b.WriteString(itoa(lists[n-1].index) + ". ")
					} else {
						b.WriteString("- ")
					}
				} else {
					b.WriteString("- ")
				}
			case "h1", "h2", "h3", "h4":
				ensureBlankLine(&b)
				b.WriteString(strings.Repeat("#", int(tag[1]-'0')) + " ")
			case "a":
				href = ""
				for hasAttr {
					var key, val []byte
					key, val, hasAttr = z.TagAttr()
					if string(key) == "href" {
						href = string(val)
					}
				}
				b.WriteString("[")
			case "img":
				for hasAttr {
					var key, val []byte
					key, val, hasAttr = z.TagAttr()
					if string(key) == "src" {
						b.WriteString("![image](" + string(val) + ")")
					}
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			case "p", "div":
				ensureBlankLine(&b)
			case "strong", "b":
				b.WriteString("**")
			case "em", "i":
				b.WriteString("*")
			case "code":
				if inCode {
					b.WriteString("`")
					inCode = false
				}
			case "pre":
				ensureNewline(&b)
				b.WriteString("```\n\n")
				if inPre > 0 {
					inPre--
				}
			case "ul", "ol":
				if len(lists) > 0 {
					lists = lists[:len(lists)-1]
				}
				ensureBlankLine(&b)
			case "h1", "h2", "h3", "h4":
				ensureBlankLine(&b)
			case "a":
				b.WriteString("](" + href + ")")
				href = ""
			}
		}
	}
}

type listState struct {
	ordered bool
	index   int
}

func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(fields, " ")
	if s[0] == ' ' || s[0] == '\n' || s[0] == '\t' {
		out = " " + out
	}
	last := s[len(s)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		out += " "
	}
	return out
}

func endsWithNewline(b *strings.Builder) bool {
	s := b.String()
	return s == "" || strings.HasSuffix(s, "\n")
}

func ensureNewline(b *strings.Builder) {
	if !endsWithNewline(b) {
		b.WriteString("\n")
	}
}

func ensureBlankLine(b *strings.Builder) {
	s := b.String()
	switch {
	case s == "", strings.HasSuffix(s, "\n\n"):
	case strings.HasSuffix(s, "\n"):
		b.WriteString("\n")
	default:
		b.WriteString("\n\n")
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
