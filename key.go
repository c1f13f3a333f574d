package treeq

import (
	"strconv"
	"strings"

	"github.com/treeq-dev/treeq/token"
)

type KeyKind int

const (
	FieldKey KeyKind = iota
	IndexKey
)

// Key is one lookup step's key: a string field or an integer index.
type Key struct {
	Kind  KeyKind
	Field string
	Index int
}

func FieldOf(name string) Key {
	return Key{Kind: FieldKey, Field: name}
}

func IndexOf(i int) Key {
	return Key{Kind: IndexKey, Index: i}
}

func (k Key) String() string {
	if k.Kind == IndexKey {
		return "[" + strconv.Itoa(k.Index) + "]"
	}
	if token.QuoteField(k.Field) {
		return token.Quote(k.Field)
	}
	return k.Field
}

// appendPath renders k onto a path under construction, kinded-path
// style: fields are dot-joined, indices bracketed.
func (k Key) appendPath(b *strings.Builder) {
	if k.Kind == IndexKey {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(k.Index))
		b.WriteByte(']')
		return
	}
	if b.Len() > 0 {
		b.WriteByte('.')
	}
	if token.QuoteField(k.Field) {
		b.WriteString(token.Quote(k.Field))
		return
	}
	b.WriteString(k.Field)
}
