package toggle

import (
	"github.com/chrisuehlinger/domtoggle/dom"
)

// Default is the shared instance used by the package level functions.
// Bind it to a page with SetDocument.
var Default = New(nil)

// SetDocument binds the shared instance to doc.
func SetDocument(doc *dom.Document) {
	Default.SetDocument(doc)
}

// ToggleDisplay calls ToggleDisplay on the shared instance.
func ToggleDisplay(selector string, flipflop ...string) {
	Default.ToggleDisplay(selector, flipflop...)
}

// ToggleText calls ToggleText on the shared instance.
func ToggleText(selector, flip, flop string) {
	Default.ToggleText(selector, flip, flop)
}

// ToggleCheckedAll calls ToggleCheckedAll on the shared instance.
func ToggleCheckedAll(selector string) {
	Default.ToggleCheckedAll(selector)
}
