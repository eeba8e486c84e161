package meta

import (
	"strconv"
	"strings"
)

// ToJSON renders the descriptor for diagnostics:
//
//	{"typeName":"[]int","bareTypeName":"[]int","traits":{"is_const":false,...}}
//
// Field order is fixed and the traits object lists every flag in bitset
// index order, so output is byte-stable for a given descriptor. Built by
// hand because encoding/json sorts map keys and the flag set is dynamic.
func (d Descriptor) ToJSON() string {
	var b strings.Builder
	b.WriteString(`{"typeName":`)
	b.WriteString(strconv.Quote(d.name))
	b.WriteString(`,"bareTypeName":`)
	b.WriteString(strconv.Quote(d.bare))
	b.WriteString(`,"traits":{`)
	for t := Trait(0); t < traitCount; t++ {
		if t > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(traitNames[t]))
		b.WriteByte(':')
		b.WriteString(strconv.FormatBool(d.traits.Has(t)))
	}
	b.WriteString("}}")
	return b.String()
}
