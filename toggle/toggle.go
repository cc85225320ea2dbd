// Package toggle flips presentational properties of document elements
// between two states. The document is the only state store: every call reads
// the current value, compares it with the first of two alternates and writes
// either one back.
//
// Lookups are not guarded. ToggleDisplay and ToggleText dereference the
// element returned by the selector lookup, so a selector that matches nothing
// fails with a nil pointer panic, exactly as a null element would fail in a
// browser. ToggleCheckedAll iterates the match set and is a no-op when it is
// empty.
package toggle

import (
	log "github.com/go-pkgz/lgr"

	"github.com/chrisuehlinger/domtoggle/dom"
)

// Default alternates for ToggleDisplay.
const (
	DefaultFlip = "none"
	DefaultFlop = "block"
)

// Utility toggles elements of one document. It holds no state besides the
// document and the logger.
type Utility struct {
	doc *dom.Document
	log log.L
}

// Option configures a Utility.
type Option func(u *Utility)

// WithLogger sets the logger used for debug traces of each toggle. Without
// it the utility logs through lgr's default logger as configured at call time.
func WithLogger(l log.L) Option {
	return func(u *Utility) { u.log = l }
}

// New makes a Utility bound to doc.
func New(doc *dom.Document, opts ...Option) *Utility {
	u := &Utility{doc: doc}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Document returns the document the utility is bound to.
func (u *Utility) Document() *dom.Document {
	return u.doc
}

// SetDocument rebinds the utility, e.g. after a page is reloaded.
func (u *Utility) SetDocument(doc *dom.Document) {
	u.doc = doc
}

func (u *Utility) logger() log.L {
	if u.log == nil {
		return log.Default()
	}
	return u.log
}

// ToggleDisplay sets the inline display of the first element matching
// selector to flip, or to flop when it already equals flip.
// flipflop optionally overrides DefaultFlip and DefaultFlop, in that order.
func (u *Utility) ToggleDisplay(selector string, flipflop ...string) {
	flip, flop := DefaultFlip, DefaultFlop
	if len(flipflop) > 0 {
		flip = flipflop[0]
	}
	if len(flipflop) > 1 {
		flop = flipflop[1]
	}

	style := u.doc.QuerySelector(selector).Style()
	if style.Display() != flip {
		style.SetDisplay(flip)
	} else {
		style.SetDisplay(flop)
	}
	u.logger().Logf("[DEBUG] display of %s is now %q", selector, style.Display())
}

// ToggleText flips the first element matching selector between flip and
// flop twice over: once for its rendered text and, independently, once for
// its value property. Both writes happen for every element type.
func (u *Utility) ToggleText(selector, flip, flop string) {
	el := u.doc.QuerySelector(selector)

	if el.InnerText() != flip {
		el.SetInnerText(flip)
	} else {
		el.SetInnerText(flop)
	}

	if el.Value() != flip {
		el.SetValue(flip)
	} else {
		el.SetValue(flop)
	}
	u.logger().Logf("[DEBUG] text of %s is now %q, value %q", selector, el.InnerText(), el.Value())
}

// ToggleCheckedAll negates the checked state of every element matching
// selector.
func (u *Utility) ToggleCheckedAll(selector string) {
	elements := u.doc.QuerySelectorAll(selector).Elements()
	for _, el := range elements {
		el.SetChecked(!el.Checked())
	}
	u.logger().Logf("[DEBUG] toggled checked state of %d element(s) matching %s", len(elements), selector)
}
