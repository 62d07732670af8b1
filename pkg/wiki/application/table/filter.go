package table

import (
	"fmt"
	"regexp"
	"strings"
)

type operator string

const (
	opIs     operator = "is"
	opIsNot  operator = "is not"
	opHas    operator = "has"
	opHasNot operator = "has not"
	opAnd    operator = "and"
	opOr     operator = "or"
)

// lowest precedence first: the expression is split on the first of these found
var operatorPrecedence = []operator{opOr, opAnd, opHas, opHasNot, opIs, opIsNot}

var operatorRegexp = regexp.MustCompile(` is not | is | has not | has | and | or `)

type filterToken struct {
	value    string
	operator bool
}

type filterNode struct {
	op          operator
	left, right *filterNode
	operand     *Format
}

// Filter is an infix expression without parentheses, for example
//
//	<<Type>> is OST and <<Track>> has not remix
type Filter struct {
	root *filterNode
}

func ParseFilter(s string) (Filter, error) {
	var tokens []filterToken
	index := 0
	for _, match := range operatorRegexp.FindAllStringIndex(s, -1) {
		tokens = append(tokens,
			filterToken{value: strings.TrimSpace(s[index:match[0]])},
			filterToken{value: strings.TrimSpace(s[match[0]:match[1]]), operator: true},
		)
		index = match[1]
	}
	tokens = append(tokens, filterToken{value: strings.TrimSpace(s[index:])})

	root, err := buildFilterTree(tokens)
	if err != nil {
		return Filter{}, err
	}
	if root.operand != nil {
		return Filter{}, fmt.Errorf("filter %q has no operator", s)
	}
	return Filter{root: root}, nil
}

func buildFilterTree(tokens []filterToken) (*filterNode, error) {
	for _, op := range operatorPrecedence {
		for i, token := range tokens {
			if !token.operator || operator(token.value) != op {
				continue
			}
			left, err := buildFilterTree(tokens[:i])
			if err != nil {
				return nil, err
			}
			right, err := buildFilterTree(tokens[i+1:])
			if err != nil {
				return nil, err
			}
			return &filterNode{op: op, left: left, right: right}, nil
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("operator is missing an operand")
	}
	operand := ParseFormat(tokens[0].value)
	return &filterNode{operand: &operand}, nil
}

func (f Filter) Apply(row Row) bool {
	return f.root.truth(row)
}

func (n *filterNode) value(row Row) string {
	if n.operand != nil {
		return n.operand.Apply(row)
	}
	return fmt.Sprint(n.truth(row))
}

func (n *filterNode) truth(row Row) bool {
	switch n.op {
	case opIs:
		return n.left.value(row) == n.right.value(row)
	case opIsNot:
		return n.left.value(row) != n.right.value(row)
	case opHas:
		return strings.Contains(n.left.value(row), n.right.value(row))
	case opHasNot:
		return !strings.Contains(n.left.value(row), n.right.value(row))
	case opAnd:
		return n.left.truth(row) && n.right.truth(row)
	case opOr:
		return n.left.truth(row) || n.right.truth(row)
	}
	return n.value(row) != ""
}
