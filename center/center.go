/*
Package center resolves a point in the xy plane from an arithmetic
expression over atom identifiers, to place the center of a localized mode on
the lattice ("(pos(10)+pos(20))/2" puts it halfway between atoms 10 and 20).

The grammar is deliberately tiny: numeric literals, the four arithmetic
operators, unary sign, parentheses, and exactly one function, pos(id), which
yields the 2-component position of the atom with that id. Anything else, any
identifier in particular, is rejected at parse time. The expression is parsed
by a small recursive-descent parser into a typed AST and evaluated by
tree-walking, so there is no uncontrolled evaluation surface at all.

Values are scalars or 2-vectors; scalars broadcast against vectors the way
the usual array libraries do, and vectors combine element-wise. Evaluation is
a pure function of the expression text and the dataset.
*/
package center

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	latt "github.com/mfuentealba/golatt"
)

// Reason tells apart the ways evaluating an expression can fail.
type Reason int

const (
	// BadExpression covers lexical and grammatical rejections, including
	// any identifier or call other than pos.
	BadExpression Reason = iota + 1
	// UnknownAtomID is returned when pos() names an id absent from the
	// dataset.
	UnknownAtomID
	// NonNumericResult is returned when the reduced value is not finite.
	NonNumericResult
	// InsufficientComponents is returned when the final value has fewer
	// than the 2 components a center needs.
	InsufficientComponents
)

// Error is the error type of this package. Evaluation has no side effects,
// so an Error never implies a state change anywhere.
type Error struct {
	Reason Reason
	msg    string
	deco   []string
}

func (err Error) Error() string { return err.msg }

// Decorate works as in the root package errors.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func badExpr(format string, args ...interface{}) Error {
	return Error{Reason: BadExpression, msg: "goLatt/center: " + fmt.Sprintf(format, args...)}
}

// Evaluator evaluates center expressions against one dataset. The id→index
// map is the dataset's own, built once per dataset.
type Evaluator struct {
	d *latt.DataSet
}

// NewEvaluator returns an Evaluator over the given dataset.
func NewEvaluator(d *latt.DataSet) (*Evaluator, error) {
	if d == nil {
		return nil, Error{Reason: BadExpression, msg: "goLatt/center: Nil dataset given"}
	}
	return &Evaluator{d: d}, nil
}

// Eval parses and evaluates the expression and returns the resulting
// center. The result must reduce to a finite value with at least two
// components; extra components are ignored.
func (E *Evaluator) Eval(expr string) (x, y float64, err error) {
	p := &parser{toks: nil, pos: 0}
	if err = p.lex(expr); err != nil {
		return 0, 0, err
	}
	root, err := p.parseExpr()
	if err != nil {
		return 0, 0, err
	}
	if p.peek().kind != tokEOF {
		return 0, 0, badExpr("unexpected %q after expression", p.peek().text)
	}
	v, err := root.eval(E)
	if err != nil {
		return 0, 0, err
	}
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return 0, 0, Error{Reason: NonNumericResult,
				msg: "goLatt/center: Expression did not reduce to a finite value"}
		}
	}
	if len(v) < 2 {
		return 0, 0, Error{Reason: InsufficientComponents,
			msg: "goLatt/center: Result must have at least two components (x and y)"}
	}
	return v[0], v[1], nil
}

/*Lexer*/

type tokKind int

const (
	tokEOF tokKind = iota
	tokNum
	tokPos
	tokLParen
	tokRParen
	tokOp //one of + - * /
)

type token struct {
	kind tokKind
	text string
	num  float64
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) lex(s string) error {
	i := 0
	for i < len(s) {
		c := rune(s[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case strings.ContainsRune("+-*/", c):
			p.toks = append(p.toks, token{kind: tokOp, text: string(c)})
			i++
		case c == '(':
			p.toks = append(p.toks, token{kind: tokLParen, text: "("})
			i++
		case c == ')':
			p.toks = append(p.toks, token{kind: tokRParen, text: ")"})
			i++
		case unicode.IsDigit(c) || c == '.':
			j := i
			for j < len(s) && (unicode.IsDigit(rune(s[j])) || s[j] == '.' ||
				s[j] == 'e' || s[j] == 'E' ||
				((s[j] == '+' || s[j] == '-') && j > i && (s[j-1] == 'e' || s[j-1] == 'E'))) {
				j++
			}
			f, err := strconv.ParseFloat(s[i:j], 64)
			if err != nil {
				return badExpr("bad numeric literal %q", s[i:j])
			}
			p.toks = append(p.toks, token{kind: tokNum, num: f, text: s[i:j]})
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(s) && (unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j])) || s[j] == '_') {
				j++
			}
			word := s[i:j]
			if word != "pos" {
				return badExpr("unknown identifier %q: only pos(id) is allowed", word)
			}
			p.toks = append(p.toks, token{kind: tokPos, text: word})
			i = j
		default:
			return badExpr("unexpected %q", string(c))
		}
	}
	p.toks = append(p.toks, token{kind: tokEOF})
	return nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

/*Typed AST and recursive-descent parser*/

type node interface {
	eval(E *Evaluator) ([]float64, error)
}

type numNode float64

type binNode struct {
	op          byte
	left, right node
}

type negNode struct{ arg node }

type posNode struct{ arg node }

// expr := term { (+|-) term }
func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOp && (p.peek().text == "+" || p.peek().text == "-") {
		op := p.next().text[0]
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &binNode{op: op, left: left, right: right}
	}
	return left, nil
}

// term := unary { (*|/) unary }
func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOp && (p.peek().text == "*" || p.peek().text == "/") {
		op := p.next().text[0]
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binNode{op: op, left: left, right: right}
	}
	return left, nil
}

// unary := [+|-] unary | primary
func (p *parser) parseUnary() (node, error) {
	if t := p.peek(); t.kind == tokOp && (t.text == "+" || t.text == "-") {
		p.next()
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if t.text == "-" {
			return &negNode{arg: arg}, nil
		}
		return arg, nil
	}
	return p.parsePrimary()
}

// primary := NUMBER | '(' expr ')' | 'pos' '(' expr ')'
func (p *parser) parsePrimary() (node, error) {
	switch t := p.next(); t.kind {
	case tokNum:
		return numNode(t.num), nil
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.next().kind != tokRParen {
			return nil, badExpr("missing closing parenthesis")
		}
		return inner, nil
	case tokPos:
		if p.next().kind != tokLParen {
			return nil, badExpr("pos must be called as pos(id)")
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.next().kind != tokRParen {
			return nil, badExpr("missing closing parenthesis in pos()")
		}
		return &posNode{arg: arg}, nil
	case tokEOF:
		return nil, badExpr("unexpected end of expression")
	default:
		return nil, badExpr("unexpected %q", t.text)
	}
}

/*Tree-walking evaluation*/

func (n numNode) eval(E *Evaluator) ([]float64, error) {
	return []float64{float64(n)}, nil
}

func (n *negNode) eval(E *Evaluator) ([]float64, error) {
	v, err := n.arg.eval(E)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(v))
	for i, c := range v {
		out[i] = -c
	}
	return out, nil
}

// broadcast brings a scalar up to the length of the other operand.
func broadcast(a, b []float64) ([]float64, []float64) {
	if len(a) == 1 && len(b) > 1 {
		aa := make([]float64, len(b))
		for i := range aa {
			aa[i] = a[0]
		}
		return aa, b
	}
	if len(b) == 1 && len(a) > 1 {
		bb := make([]float64, len(a))
		for i := range bb {
			bb[i] = b[0]
		}
		return a, bb
	}
	return a, b
}

func (n *binNode) eval(E *Evaluator) ([]float64, error) {
	l, err := n.left.eval(E)
	if err != nil {
		return nil, err
	}
	r, err := n.right.eval(E)
	if err != nil {
		return nil, err
	}
	l, r = broadcast(l, r)
	if len(l) != len(r) {
		return nil, badExpr("operands of %q have mismatched sizes", string(n.op))
	}
	out := make([]float64, len(l))
	for i := range l {
		switch n.op {
		case '+':
			out[i] = l[i] + r[i]
		case '-':
			out[i] = l[i] - r[i]
		case '*':
			out[i] = l[i] * r[i]
		case '/':
			out[i] = l[i] / r[i]
		}
	}
	return out, nil
}

func (n *posNode) eval(E *Evaluator) ([]float64, error) {
	v, err := n.arg.eval(E)
	if err != nil {
		return nil, err
	}
	if len(v) != 1 {
		return nil, badExpr("pos takes a scalar atom id, got a %d-vector", len(v))
	}
	if math.IsNaN(v[0]) || math.IsInf(v[0], 0) {
		return nil, Error{Reason: NonNumericResult,
			msg: "goLatt/center: pos argument did not reduce to a finite value"}
	}
	id := int64(math.Trunc(v[0])) //fractional ids truncate toward zero
	i, ok := E.d.IndexOf(id)
	if !ok {
		return nil, Error{Reason: UnknownAtomID,
			msg: fmt.Sprintf("goLatt/center: Atom id %d not found in dataset", id)}
	}
	return []float64{E.d.X(i), E.d.Y(i)}, nil
}
