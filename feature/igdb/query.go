package igdb

import (
	"strconv"
	"strings"
)

// Query builds an Apicalypse request body.
type Query struct {
	fields string
	search string
	where  []string
	limit  int
}

// NewQuery starts a query selecting every field.
func NewQuery() *Query {
	return &Query{fields: "*"}
}

// Fields replaces the selected fields.
func (q *Query) Fields(fields ...string) *Query {
	q.fields = strings.Join(fields, ",")
	return q
}

// Search sets a full-text search term.
func (q *Query) Search(text string) *Query {
	q.search = text
	return q
}

// Where adds a filter; several filters are combined with "&".
func (q *Query) Where(clause string) *Query {
	q.where = append(q.where, clause)
	return q
}

// Limit sets the result limit.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func (q *Query) String() string {
	var b strings.Builder
	b.WriteString("fields ")
	b.WriteString(q.fields)
	b.WriteString(";")
	if q.search != "" {
		b.WriteString(" search ")
		b.WriteString(Quote(q.search))
		b.WriteString(";")
	}
	if len(q.where) > 0 {
		b.WriteString(" where ")
		b.WriteString(strings.Join(q.where, " & "))
		b.WriteString(";")
	}
	if q.limit > 0 {
		b.WriteString(" limit ")
		b.WriteString(strconv.Itoa(q.limit))
		b.WriteString(";")
	}
	return b.String()
}

// ByID selects a single record.
func ByID(id int64) *Query {
	return NewQuery().Where("id = " + strconv.FormatInt(id, 10)).Limit(1)
}

// ByIDs selects the given records.
func ByIDs(ids []int64) *Query {
	return NewQuery().Where("id = " + IDList(ids)).Limit(len(ids))
}

// IDList renders ids as "(1,2,3)".
func IDList(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Quote renders s as an Apicalypse string literal.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
