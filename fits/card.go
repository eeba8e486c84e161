package fits

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/metakit/internal/format"
)

// Card is one 80-byte header keyword record.
type Card struct {
	// Keyword is the record name, at most 8 ASCII characters.
	Keyword string

	// Value is the raw value text with string quoting removed.
	Value string

	// Comment is the free text after the value separator.
	Comment string

	// IsString records whether the value was quoted, so round trips
	// preserve the form.
	IsString bool
}

// commentaryKeyword reports whether the keyword carries free text with no
// value indicator.
func commentaryKeyword(k string) bool {
	return k == "COMMENT" || k == "HISTORY" || k == ""
}

// parseCard decodes one 80-byte record.
func parseCard(raw []byte) (Card, error) {
	if len(raw) != format.CardSize {
		return Card{}, fmt.Errorf("fits: card is %d bytes: %w", len(raw), ErrBadCard)
	}
	keyword := strings.TrimRight(string(raw[:format.KeywordSize]), " ")

	if commentaryKeyword(keyword) || string(raw[format.KeywordSize:format.KeywordSize+2]) != format.ValueIndicator {
		return Card{
			Keyword: keyword,
			Comment: strings.TrimRight(decodeText(raw[format.KeywordSize:]), " "),
		}, nil
	}

	body := raw[format.KeywordSize+2:]
	c := Card{Keyword: keyword}

	if i := indexNonSpace(body); i >= 0 && body[i] == '\'' {
		// Quoted string; '' is an escaped quote.
		var sb strings.Builder
		j := i + 1
		for {
			if j >= len(body) {
				return Card{}, fmt.Errorf("fits: unterminated string on %s: %w", keyword, ErrBadCard)
			}
			if body[j] == '\'' {
				if j+1 < len(body) && body[j+1] == '\'' {
					sb.WriteByte('\'')
					j += 2
					continue
				}
				j++
				break
			}
			sb.WriteByte(body[j])
			j++
		}
		c.IsString = true
		c.Value = strings.TrimRight(decodeText([]byte(sb.String())), " ")
		c.Comment = trailingComment(body[j:])
		return c, nil
	}

	text := string(body)
	if slash := strings.IndexByte(text, '/'); slash >= 0 {
		c.Comment = strings.TrimSpace(text[slash+1:])
		text = text[:slash]
	}
	c.Value = strings.TrimSpace(text)
	return c, nil
}

func indexNonSpace(b []byte) int {
	for i, c := range b {
		if c != ' ' {
			return i
		}
	}
	return -1
}

func trailingComment(rest []byte) string {
	text := string(rest)
	if slash := strings.IndexByte(text, '/'); slash >= 0 {
		return strings.TrimSpace(text[slash+1:])
	}
	return ""
}

// decodeText converts header bytes to a string. Plain ASCII passes through;
// high bytes decode as Latin-1, which some producers emit in comments.
func decodeText(b []byte) string {
	ascii := true
	for _, c := range b {
		if c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// encode renders the card as exactly 80 bytes.
func (c Card) encode() ([]byte, error) {
	if len(c.Keyword) > format.KeywordSize {
		return nil, fmt.Errorf("fits: keyword %q longer than %d: %w", c.Keyword, format.KeywordSize, ErrBadCard)
	}
	out := make([]byte, format.CardSize)
	for i := range out {
		out[i] = ' '
	}
	copy(out, c.Keyword)

	if c.Keyword == "END" {
		return out, nil
	}
	if commentaryKeyword(c.Keyword) {
		copy(out[format.KeywordSize:], c.Comment)
		return out, nil
	}

	copy(out[format.KeywordSize:], format.ValueIndicator)

	var body string
	if c.IsString {
		quoted := "'" + strings.ReplaceAll(c.Value, "'", "''") + "'"
		body = quoted
	} else {
		// Fixed format: right-justified so the value ends at column 30.
		width := format.FixedValueEnd - format.KeywordSize - len(format.ValueIndicator)
		body = fmt.Sprintf("%*s", width, c.Value)
	}
	if c.Comment != "" {
		body += " / " + c.Comment
	}
	if len(body) > format.CardSize-format.KeywordSize-len(format.ValueIndicator) {
		body = body[:format.CardSize-format.KeywordSize-len(format.ValueIndicator)]
	}
	copy(out[format.KeywordSize+len(format.ValueIndicator):], body)
	return out, nil
}
