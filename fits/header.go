package fits

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/metakit/internal/format"
)

// Header is an ordered list of keyword cards. The END record is implicit:
// it is appended on serialize and consumed on parse.
type Header struct {
	cards []Card
}

// Cards returns the card list in order.
func (h *Header) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards, excluding the implicit END record.
func (h *Header) Len() int { return len(h.cards) }

// Index returns the position of the first card with the keyword, or -1.
func (h *Header) Index(keyword string) int {
	for i, c := range h.cards {
		if c.Keyword == keyword {
			return i
		}
	}
	return -1
}

// Has reports whether a card with the keyword exists.
func (h *Header) Has(keyword string) bool { return h.Index(keyword) >= 0 }

// Value returns the raw value of the first card with the keyword.
func (h *Header) Value(keyword string) (string, error) {
	if i := h.Index(keyword); i >= 0 {
		return h.cards[i].Value, nil
	}
	return "", fmt.Errorf("fits: keyword %s: %w", keyword, ErrMissingKeyword)
}

// Set updates the first card with the keyword or appends a new one.
func (h *Header) Set(c Card) {
	if i := h.Index(c.Keyword); i >= 0 {
		h.cards[i] = c
		return
	}
	h.cards = append(h.cards, c)
}

// SetInt sets an integer-valued keyword.
func (h *Header) SetInt(keyword string, v int, comment string) {
	h.Set(Card{Keyword: keyword, Value: strconv.Itoa(v), Comment: comment})
}

// SetFloat sets a float-valued keyword.
func (h *Header) SetFloat(keyword string, v float64, comment string) {
	h.Set(Card{Keyword: keyword, Value: strconv.FormatFloat(v, 'G', -1, 64), Comment: comment})
}

// SetBool sets a logical keyword (T or F).
func (h *Header) SetBool(keyword string, v bool, comment string) {
	val := "F"
	if v {
		val = "T"
	}
	h.Set(Card{Keyword: keyword, Value: val, Comment: comment})
}

// SetString sets a quoted string keyword.
func (h *Header) SetString(keyword, v, comment string) {
	h.Set(Card{Keyword: keyword, Value: v, Comment: comment, IsString: true})
}

// AddComment appends a COMMENT card.
func (h *Header) AddComment(text string) {
	h.cards = append(h.cards, Card{Keyword: "COMMENT", Comment: text})
}

// AddHistory appends a HISTORY card.
func (h *Header) AddHistory(text string) {
	h.cards = append(h.cards, Card{Keyword: "HISTORY", Comment: text})
}

// Remove deletes the first card with the keyword. Removing a missing
// keyword is a no-op.
func (h *Header) Remove(keyword string) {
	if i := h.Index(keyword); i >= 0 {
		h.cards = append(h.cards[:i], h.cards[i+1:]...)
	}
}

// Int reads a keyword as an integer.
func (h *Header) Int(keyword string) (int, error) {
	raw, err := h.Value(keyword)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("fits: keyword %s = %q: %w", keyword, raw, ErrBadValue)
	}
	return n, nil
}

// IntOr reads a keyword as an integer, falling back when absent.
func (h *Header) IntOr(keyword string, fallback int) int {
	n, err := h.Int(keyword)
	if err != nil {
		return fallback
	}
	return n
}

// Float reads a keyword as a float.
func (h *Header) Float(keyword string) (float64, error) {
	raw, err := h.Value(keyword)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("fits: keyword %s = %q: %w", keyword, raw, ErrBadValue)
	}
	return f, nil
}

// FloatOr reads a keyword as a float, falling back when absent or
// malformed.
func (h *Header) FloatOr(keyword string, fallback float64) float64 {
	f, err := h.Float(keyword)
	if err != nil {
		return fallback
	}
	return f
}

// Bool reads a logical keyword.
func (h *Header) Bool(keyword string) (bool, error) {
	raw, err := h.Value(keyword)
	if err != nil {
		return false, err
	}
	switch strings.TrimSpace(raw) {
	case "T":
		return true, nil
	case "F":
		return false, nil
	}
	return false, fmt.Errorf("fits: keyword %s = %q: %w", keyword, raw, ErrBadValue)
}

// Text reads a keyword as text.
func (h *Header) Text(keyword string) (string, error) {
	return h.Value(keyword)
}

// parseHeader consumes whole blocks from data until the END record, and
// returns the header plus the number of bytes consumed.
func parseHeader(data []byte) (*Header, int, error) {
	h := &Header{}
	off := 0
	for {
		if off+format.BlockSize > len(data) {
			return nil, 0, fmt.Errorf("fits: header unit at byte %d: %w", off, ErrTruncated)
		}
		block := data[off : off+format.BlockSize]
		off += format.BlockSize

		for i := 0; i < format.CardsPerBlock; i++ {
			raw := block[i*format.CardSize : (i+1)*format.CardSize]
			keyword := strings.TrimRight(string(raw[:format.KeywordSize]), " ")
			if keyword == "END" {
				return h, off, nil
			}
			c, err := parseCard(raw)
			if err != nil {
				return nil, 0, err
			}
			// Skip fully blank padding records.
			if c.Keyword == "" && c.Value == "" && c.Comment == "" {
				continue
			}
			h.cards = append(h.cards, c)
		}
	}
}

// Serialize renders the header, END record included, padded with blank
// records to a whole number of blocks.
func (h *Header) Serialize() ([]byte, error) {
	var out []byte
	for _, c := range h.cards {
		enc, err := c.encode()
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	end, err := Card{Keyword: "END"}.encode()
	if err != nil {
		return nil, err
	}
	out = append(out, end...)

	padded := make([]byte, format.AlignBlock(len(out)))
	for i := range padded {
		padded[i] = ' '
	}
	copy(padded, out)
	return padded, nil
}
