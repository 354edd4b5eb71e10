package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-syntrophic/pkg/visibility"
)

// Evaluator is a small visibility evaluator for catalog rules.
//
// Supported syntax:
//   - presence checks: `role`
//   - comparisons against string literals: `accountType == "individual"`,
//     `role != 'investor'`
//   - composition: `!`, `&&`, `||` and parentheses
//
// Identifiers resolve against visibility.Context.Values using dotted paths;
// the `extras.` prefix reads from visibility.Context.Extras. Compiled rules are
// cached, so an Evaluator is safe to share.
type Evaluator struct {
	cache sync.Map // rule -> node
}

// New constructs an Evaluator.
func New() *Evaluator { return &Evaluator{} }

var _ visibility.Evaluator = (*Evaluator)(nil)

// Eval reports whether rule holds. An empty rule always holds.
func (e *Evaluator) Eval(_ string, rule string, ctx visibility.Context) (bool, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}
	program, err := e.compile(trimmed)
	if err != nil {
		return false, err
	}
	return program.eval(ctx), nil
}

// Check parses rule without evaluating it. Catalog loaders use it to reject
// broken rules at startup.
func (e *Evaluator) Check(rule string) error {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return nil
	}
	_, err := e.compile(trimmed)
	return err
}

func (e *Evaluator) compile(rule string) (node, error) {
	if e != nil {
		if cached, ok := e.cache.Load(rule); ok {
			return cached.(node), nil
		}
	}
	tokens, err := lex(rule)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	program, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("visibility/expr: unexpected %q", p.peek().text)
	}
	if e != nil {
		e.cache.Store(rule, program)
	}
	return program, nil
}

type kind int

const (
	kindIdent kind = iota
	kindString
	kindEq
	kindNeq
	kindAnd
	kindOr
	kindNot
	kindOpen
	kindClose
)

type lexeme struct {
	kind kind
	text string
}

func lex(input string) ([]lexeme, error) {
	var out []lexeme
	for i := 0; i < len(input); {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			out = append(out, lexeme{kindOpen, "("})
			i++
		case ch == ')':
			out = append(out, lexeme{kindClose, ")"})
			i++
		case ch == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				out = append(out, lexeme{kindNeq, "!="})
				i += 2
				continue
			}
			out = append(out, lexeme{kindNot, "!"})
			i++
		case ch == '=':
			if i+1 >= len(input) || input[i+1] != '=' {
				return nil, errors.New("visibility/expr: unexpected '='; use '=='")
			}
			out = append(out, lexeme{kindEq, "=="})
			i += 2
		case ch == '&':
			if i+1 >= len(input) || input[i+1] != '&' {
				return nil, errors.New("visibility/expr: unexpected '&'; use '&&'")
			}
			out = append(out, lexeme{kindAnd, "&&"})
			i += 2
		case ch == '|':
			if i+1 >= len(input) || input[i+1] != '|' {
				return nil, errors.New("visibility/expr: unexpected '|'; use '||'")
			}
			out = append(out, lexeme{kindOr, "||"})
			i += 2
		case ch == '"' || ch == '\'':
			end := strings.IndexByte(input[i+1:], ch)
			if end < 0 {
				return nil, errors.New("visibility/expr: unterminated string literal")
			}
			raw := input[i+1 : i+1+end]
			if ch == '"' {
				unquoted, err := strconv.Unquote(`"` + raw + `"`)
				if err != nil {
					return nil, fmt.Errorf("visibility/expr: invalid string literal: %w", err)
				}
				raw = unquoted
			}
			out = append(out, lexeme{kindString, raw})
			i += end + 2
		default:
			start := i
			for i < len(input) && isIdentByte(input[i]) {
				i++
			}
			if start == i {
				return nil, fmt.Errorf("visibility/expr: unexpected character %q", ch)
			}
			out = append(out, lexeme{kindIdent, input[start:i]})
		}
	}
	if len(out) == 0 {
		return nil, errors.New("visibility/expr: empty expression")
	}
	return out, nil
}

func isIdentByte(ch byte) bool {
	return ch == '.' || ch == '_' || ch == '-' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

type parser struct {
	tokens []lexeme
	pos    int
}

func (p *parser) done() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() lexeme {
	if p.done() {
		return lexeme{}
	}
	return p.tokens[p.pos]
}

func (p *parser) accept(k kind) (lexeme, bool) {
	if p.done() || p.tokens[p.pos].kind != k {
		return lexeme{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(kindOr); !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left, right}
	}
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(kindAnd); !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode{left, right}
	}
}

func (p *parser) parseUnary() (node, error) {
	if _, ok := p.accept(kindNot); ok {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	if _, ok := p.accept(kindOpen); ok {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, ok := p.accept(kindClose); !ok {
			return nil, errors.New("visibility/expr: missing closing ')'")
		}
		return inner, nil
	}

	ident, ok := p.accept(kindIdent)
	if !ok {
		if p.done() {
			return nil, errors.New("visibility/expr: unexpected end of expression")
		}
		return nil, fmt.Errorf("visibility/expr: expected identifier, got %q", p.peek().text)
	}

	negate := false
	if _, ok := p.accept(kindEq); !ok {
		if _, ok := p.accept(kindNeq); !ok {
			return presentNode{path: ident.text}, nil
		}
		negate = true
	}

	lit, ok := p.accept(kindString)
	if !ok {
		// bare words compare as strings: role == founder
		lit, ok = p.accept(kindIdent)
		if !ok {
			return nil, errors.New("visibility/expr: expected literal after comparison")
		}
	}
	return compareNode{path: ident.text, want: lit.text, negate: negate}, nil
}

type node interface {
	eval(ctx visibility.Context) bool
}

type orNode struct{ left, right node }

func (n orNode) eval(ctx visibility.Context) bool { return n.left.eval(ctx) || n.right.eval(ctx) }

type andNode struct{ left, right node }

func (n andNode) eval(ctx visibility.Context) bool { return n.left.eval(ctx) && n.right.eval(ctx) }

type notNode struct{ inner node }

func (n notNode) eval(ctx visibility.Context) bool { return !n.inner.eval(ctx) }

type presentNode struct{ path string }

func (n presentNode) eval(ctx visibility.Context) bool {
	value, ok := lookup(ctx, n.path)
	if !ok || value == nil {
		return false
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case bool:
		return v
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

type compareNode struct {
	path   string
	want   string
	negate bool
}

func (n compareNode) eval(ctx visibility.Context) bool {
	value, _ := lookup(ctx, n.path)
	got := ""
	if value != nil {
		got = fmt.Sprint(value)
	}
	return (got == n.want) != n.negate
}

func lookup(ctx visibility.Context, path string) (any, bool) {
	if rest, ok := strings.CutPrefix(path, "extras."); ok {
		return lookupPath(ctx.Extras, rest)
	}
	return lookupPath(ctx.Values, path)
}

func lookupPath(values map[string]any, path string) (any, bool) {
	if len(values) == 0 || path == "" {
		return nil, false
	}
	if v, ok := values[path]; ok {
		return v, true
	}
	var current any = values
	for _, part := range strings.Split(path, ".") {
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}
