package dom

import (
	"fmt"
	"strings"
)

// selectorList is a parsed, comma separated group of complex selectors.
type selectorList []complexSelector

// complexSelector is a chain of compound selectors. combinators[i] joins
// parts[i] and parts[i+1] and is one of ' ', '>', '+' or '~'.
type complexSelector struct {
	parts       []compoundSelector
	combinators []byte
}

// compoundSelector is a sequence of simple selectors with no combinator,
// e.g. "input.opt[type=checkbox]:checked".
type compoundSelector struct {
	tag     string // "" or "*" matches any element
	ids     []string
	classes []string
	attrs   []attrSelector
	pseudos []string
}

type attrSelector struct {
	name  string
	op    string // "" for presence, otherwise "=", "~=", "|=", "^=", "$=", "*="
	value string
}

var supportedPseudoClasses = map[string]bool{
	"checked":     true,
	"disabled":    true,
	"enabled":     true,
	"first-child": true,
	"last-child":  true,
}

// parseSelector parses a selector group. Errors are SyntaxError DOMErrors.
func parseSelector(selector string) (selectorList, error) {
	p := &selectorParser{src: strings.TrimSpace(selector)}
	if p.src == "" {
		return nil, ErrSyntax(fmt.Sprintf("'%s' is not a valid selector.", selector))
	}
	list, err := p.parseList()
	if err != nil {
		return nil, ErrSyntax(fmt.Sprintf("'%s' is not a valid selector: %s", selector, err.Error()))
	}
	return list, nil
}

type selectorParser struct {
	src string
	pos int
}

func (p *selectorParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *selectorParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

// skipSpace advances over whitespace and reports whether any was consumed.
func (p *selectorParser) skipSpace() bool {
	start := p.pos
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			p.pos++
		default:
			return p.pos > start
		}
	}
	return p.pos > start
}

func (p *selectorParser) parseList() (selectorList, error) {
	var list selectorList
	for {
		p.skipSpace()
		cs, err := p.parseComplex()
		if err != nil {
			return nil, err
		}
		list = append(list, cs)
		p.skipSpace()
		if p.eof() {
			return list, nil
		}
		if p.peek() != ',' {
			return nil, fmt.Errorf("unexpected %q at offset %d", p.peek(), p.pos)
		}
		p.pos++
	}
}

func (p *selectorParser) parseComplex() (complexSelector, error) {
	var cs complexSelector
	comp, err := p.parseCompound()
	if err != nil {
		return cs, err
	}
	cs.parts = append(cs.parts, comp)

	for {
		hadSpace := p.skipSpace()
		if p.eof() || p.peek() == ',' {
			return cs, nil
		}
		comb := byte(' ')
		switch c := p.peek(); c {
		case '>', '+', '~':
			comb = c
			p.pos++
			p.skipSpace()
		default:
			if !hadSpace {
				return cs, fmt.Errorf("unexpected %q at offset %d", c, p.pos)
			}
		}
		comp, err := p.parseCompound()
		if err != nil {
			return cs, err
		}
		cs.combinators = append(cs.combinators, comb)
		cs.parts = append(cs.parts, comp)
	}
}

func (p *selectorParser) parseCompound() (compoundSelector, error) {
	var c compoundSelector
	start := p.pos

	if p.peek() == '*' {
		c.tag = "*"
		p.pos++
	} else if isIdentChar(p.peek()) {
		c.tag = strings.ToLower(p.parseIdent())
	}

	for !p.eof() {
		switch p.peek() {
		case '#':
			p.pos++
			id := p.parseIdent()
			if id == "" {
				return c, fmt.Errorf("empty id selector at offset %d", p.pos)
			}
			c.ids = append(c.ids, id)
			continue
		case '.':
			p.pos++
			class := p.parseIdent()
			if class == "" {
				return c, fmt.Errorf("empty class selector at offset %d", p.pos)
			}
			c.classes = append(c.classes, class)
			continue
		case '[':
			p.pos++
			attr, err := p.parseAttribute()
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, attr)
			continue
		case ':':
			p.pos++
			name := strings.ToLower(p.parseIdent())
			if !supportedPseudoClasses[name] {
				return c, fmt.Errorf("unsupported pseudo-class %q", name)
			}
			c.pseudos = append(c.pseudos, name)
			continue
		}
		break
	}

	if p.pos == start {
		return c, fmt.Errorf("expected selector at offset %d", p.pos)
	}
	return c, nil
}

func (p *selectorParser) parseAttribute() (attrSelector, error) {
	var a attrSelector
	p.skipSpace()
	a.name = strings.ToLower(p.parseIdent())
	if a.name == "" {
		return a, fmt.Errorf("missing attribute name at offset %d", p.pos)
	}
	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		return a, nil
	}

	switch c := p.peek(); c {
	case '=':
		a.op = "="
		p.pos++
	case '~', '|', '^', '$', '*':
		if p.pos+1 >= len(p.src) || p.src[p.pos+1] != '=' {
			return a, fmt.Errorf("bad attribute operator at offset %d", p.pos)
		}
		a.op = string(c) + "="
		p.pos += 2
	default:
		return a, fmt.Errorf("unexpected %q in attribute selector", c)
	}

	p.skipSpace()
	switch q := p.peek(); q {
	case '"', '\'':
		p.pos++
		end := strings.IndexByte(p.src[p.pos:], q)
		if end < 0 {
			return a, fmt.Errorf("unterminated string in attribute selector")
		}
		a.value = p.src[p.pos : p.pos+end]
		p.pos += end + 1
	default:
		a.value = p.parseIdent()
		if a.value == "" {
			return a, fmt.Errorf("missing attribute value at offset %d", p.pos)
		}
	}

	p.skipSpace()
	if p.peek() != ']' {
		return a, fmt.Errorf("expected ']' at offset %d", p.pos)
	}
	p.pos++
	return a, nil
}

// parseIdent reads an identifier, honouring backslash escapes.
func (p *selectorParser) parseIdent() string {
	var sb strings.Builder
	for !p.eof() {
		c := p.peek()
		if c == '\\' && p.pos+1 < len(p.src) {
			sb.WriteByte(p.src[p.pos+1])
			p.pos += 2
			continue
		}
		if !isIdentChar(c) {
			break
		}
		sb.WriteByte(c)
		p.pos++
	}
	return sb.String()
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c >= 0x80
}

func (l selectorList) matches(el *Element) bool {
	for _, cs := range l {
		if cs.matchAt(el, len(cs.parts)-1) {
			return true
		}
	}
	return false
}

// matchAt matches parts[i] against el and the rest of the chain against
// el's ancestors or preceding siblings, right to left.
func (cs complexSelector) matchAt(el *Element, i int) bool {
	if !cs.parts[i].matches(el) {
		return false
	}
	if i == 0 {
		return true
	}
	switch cs.combinators[i-1] {
	case '>':
		parent := el.ParentElement()
		return parent != nil && cs.matchAt(parent, i-1)
	case '+':
		prev := el.PreviousElementSibling()
		return prev != nil && cs.matchAt(prev, i-1)
	case '~':
		for prev := el.PreviousElementSibling(); prev != nil; prev = prev.PreviousElementSibling() {
			if cs.matchAt(prev, i-1) {
				return true
			}
		}
		return false
	default:
		for anc := el.ParentElement(); anc != nil; anc = anc.ParentElement() {
			if cs.matchAt(anc, i-1) {
				return true
			}
		}
		return false
	}
}

func (c compoundSelector) matches(el *Element) bool {
	if c.tag != "" && c.tag != "*" && c.tag != el.LocalName() {
		return false
	}
	for _, id := range c.ids {
		if el.Id() != id {
			return false
		}
	}
	for _, class := range c.classes {
		if !el.HasClass(class) {
			return false
		}
	}
	for _, a := range c.attrs {
		if !a.matches(el) {
			return false
		}
	}
	for _, pseudo := range c.pseudos {
		if !matchesPseudoClass(el, pseudo) {
			return false
		}
	}
	return true
}

func (a attrSelector) matches(el *Element) bool {
	if !el.HasAttribute(a.name) {
		return false
	}
	attrValue := el.GetAttribute(a.name)
	switch a.op {
	case "":
		return true
	case "=":
		return attrValue == a.value
	case "~=":
		for _, word := range strings.Fields(attrValue) {
			if word == a.value {
				return true
			}
		}
		return false
	case "|=":
		return attrValue == a.value || strings.HasPrefix(attrValue, a.value+"-")
	case "^=":
		return a.value != "" && strings.HasPrefix(attrValue, a.value)
	case "$=":
		return a.value != "" && strings.HasSuffix(attrValue, a.value)
	case "*=":
		return a.value != "" && strings.Contains(attrValue, a.value)
	}
	return false
}

func matchesPseudoClass(el *Element, name string) bool {
	switch name {
	case "checked":
		switch el.LocalName() {
		case "input":
			t := el.inputType()
			return (t == "checkbox" || t == "radio") && el.Checked()
		case "option":
			return el.HasAttribute("selected")
		}
		return false
	case "disabled":
		return isFormControl(el) && el.HasAttribute("disabled")
	case "enabled":
		return isFormControl(el) && !el.HasAttribute("disabled")
	case "first-child":
		return el.ParentElement() != nil && el.PreviousElementSibling() == nil
	case "last-child":
		return el.ParentElement() != nil && el.NextElementSibling() == nil
	}
	return false
}
