package toggle

import (
	"bytes"
	"fmt"
	"testing"

	log "github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/domtoggle/dom"
)

const page = `<!DOCTYPE html>
<html><body>
<div id="panel" style="display: block">Panel</div>
<div id="plain">Plain</div>
<button id="btn">Show</button>
<input id="field" value="Show">
<input type="checkbox" id="agree">
<input type="checkbox" class="opt" id="o1" checked>
<input type="checkbox" class="opt" id="o2">
<input type="checkbox" class="opt" id="o3">
</body></html>`

func newUtility(t *testing.T) (*Utility, *dom.Document) {
	t.Helper()
	doc, err := dom.ParseHTML(page)
	require.NoError(t, err)
	return New(doc, WithLogger(log.Func(func(string, ...interface{}) {}))), doc
}

func TestToggleDisplay(t *testing.T) {
	u, doc := newUtility(t)
	panel := doc.GetElementById("panel")

	u.ToggleDisplay("#panel")
	assert.Equal(t, "none", panel.Style().Display())
	assert.Equal(t, "display: none;", panel.GetAttribute("style"))

	u.ToggleDisplay("#panel")
	assert.Equal(t, "block", panel.Style().Display())
}

func TestToggleDisplay_UnsetDisplay(t *testing.T) {
	u, doc := newUtility(t)
	plain := doc.GetElementById("plain")

	u.ToggleDisplay("#plain")
	assert.Equal(t, "none", plain.Style().Display(), "unset display differs from flip")

	u.ToggleDisplay("#plain")
	assert.Equal(t, "block", plain.Style().Display(), "second call goes to flop, not back to unset")
}

func TestToggleDisplay_CustomValues(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		flipflop []string
		want     []string
	}{
		{name: "flex and none", initial: "none", flipflop: []string{"flex", "none"}, want: []string{"flex", "none", "flex"}},
		{name: "already at flip", initial: "grid", flipflop: []string{"grid", "inline"}, want: []string{"inline", "grid", "inline"}},
		{name: "only flip given", initial: "inline", flipflop: []string{"inline"}, want: []string{"block", "inline", "block"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := dom.ParseHTML(fmt.Sprintf(`<p id="x" style="display: %s">x</p>`, tt.initial))
			require.NoError(t, err)
			u := New(doc)
			el := doc.GetElementById("x")

			for i, want := range tt.want {
				u.ToggleDisplay("#x", tt.flipflop...)
				assert.Equal(t, want, el.Style().Display(), "call %d", i+1)
			}
		})
	}
}

func TestToggleDisplay_RoundTrip(t *testing.T) {
	for _, initial := range []string{"block", "none", "inline-block", "flex"} {
		t.Run(initial, func(t *testing.T) {
			doc, err := dom.ParseHTML(fmt.Sprintf(`<p id="x" style="display: %s">x</p>`, initial))
			require.NoError(t, err)
			u := New(doc)
			el := doc.GetElementById("x")

			u.ToggleDisplay("#x", "none", initial)
			u.ToggleDisplay("#x", "none", initial)
			assert.Equal(t, initial, el.Style().Display())
		})
	}
}

func TestToggleDisplay_FirstMatchOnly(t *testing.T) {
	doc, err := dom.ParseHTML(`<p class="x">a</p><p class="x">b</p>`)
	require.NoError(t, err)
	u := New(doc)

	u.ToggleDisplay(".x")
	els := doc.QuerySelectorAll(".x").Elements()
	require.Len(t, els, 2)
	assert.Equal(t, "none", els[0].Style().Display())
	assert.Equal(t, "", els[1].Style().Display())
}

func TestToggleDisplay_MissingElementPanics(t *testing.T) {
	u, _ := newUtility(t)
	assert.Panics(t, func() { u.ToggleDisplay("#missing") })
	assert.Panics(t, func() { u.ToggleDisplay("#") }, "invalid selectors find nothing as well")
}

func TestToggleText_Button(t *testing.T) {
	u, doc := newUtility(t)
	btn := doc.GetElementById("btn")

	u.ToggleText("#btn", "Hide", "Show")
	assert.Equal(t, "Hide", btn.InnerText())
	assert.Equal(t, "Hide", btn.Value(), "value is written for buttons too")

	u.ToggleText("#btn", "Hide", "Show")
	assert.Equal(t, "Show", btn.InnerText())
	assert.Equal(t, "Show", btn.Value())
}

func TestToggleText_Input(t *testing.T) {
	u, doc := newUtility(t)
	field := doc.GetElementById("field")

	u.ToggleText("#field", "Show", "Hide")
	assert.Equal(t, "Hide", field.Value(), "value equal to flip goes to flop")
	assert.Equal(t, "Show", field.TextContent(), "text of an input differs from flip so it is written too")

	u.ToggleText("#field", "Show", "Hide")
	assert.Equal(t, "Show", field.Value())
	assert.Equal(t, "Show", field.TextContent(), "input text never reads back, so it is rewritten to flip")
}

func TestToggleText_BothPropertiesIndependent(t *testing.T) {
	doc, err := dom.ParseHTML(`<div id="d">On</div>`)
	require.NoError(t, err)
	u := New(doc)
	d := doc.GetElementById("d")

	u.ToggleText("#d", "On", "Off")
	assert.Equal(t, "Off", d.InnerText(), "text equal to flip goes to flop")
	assert.Equal(t, "On", d.Value(), "unset value differs from flip and goes to flip")

	u.ToggleText("#d", "On", "Off")
	assert.Equal(t, "On", d.InnerText())
	assert.Equal(t, "Off", d.Value())
}

func TestToggleText_MissingElementPanics(t *testing.T) {
	u, _ := newUtility(t)
	assert.Panics(t, func() { u.ToggleText("#missing", "a", "b") })
}

func TestToggleCheckedAll(t *testing.T) {
	u, doc := newUtility(t)
	agree := doc.GetElementById("agree")

	u.ToggleCheckedAll("#agree")
	assert.True(t, agree.Checked())

	u.ToggleCheckedAll("#agree")
	assert.False(t, agree.Checked())
}

func TestToggleCheckedAll_NegatesEach(t *testing.T) {
	u, doc := newUtility(t)
	ids := []string{"o1", "o2", "o3"}
	before := map[string]bool{}
	for _, id := range ids {
		before[id] = doc.GetElementById(id).Checked()
	}

	u.ToggleCheckedAll(".opt")
	for _, id := range ids {
		assert.Equal(t, !before[id], doc.GetElementById(id).Checked(), id)
	}

	u.ToggleCheckedAll(".opt")
	for _, id := range ids {
		assert.Equal(t, before[id], doc.GetElementById(id).Checked(), id)
	}
}

func TestToggleCheckedAll_EmptyMatch(t *testing.T) {
	u, doc := newUtility(t)
	before := doc.OuterHTML()

	assert.NotPanics(t, func() { u.ToggleCheckedAll(".nothing") })
	assert.NotPanics(t, func() { u.ToggleCheckedAll("[[") })
	assert.Equal(t, before, doc.OuterHTML())
	for _, el := range doc.QuerySelectorAll("input").Elements() {
		assert.Equal(t, el.HasAttribute("checked"), el.Checked())
	}
}

func TestToggleCheckedAll_NonCheckbox(t *testing.T) {
	doc, err := dom.ParseHTML(`<div id="d"></div>`)
	require.NoError(t, err)
	u := New(doc)

	u.ToggleCheckedAll("#d")
	assert.True(t, doc.GetElementById("d").Checked())
}

func TestUtility_Logging(t *testing.T) {
	doc, err := dom.ParseHTML(page)
	require.NoError(t, err)
	var lines []string
	u := New(doc, WithLogger(log.Func(func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})))

	u.ToggleDisplay("#panel")
	u.ToggleCheckedAll(".opt")
	require.Len(t, lines, 2)
	assert.Equal(t, `[DEBUG] display of #panel is now "none"`, lines[0])
	assert.Equal(t, "[DEBUG] toggled checked state of 3 element(s) matching .opt", lines[1])
}

func TestSharedInstance(t *testing.T) {
	doc, err := dom.ParseHTML(page)
	require.NoError(t, err)
	prev := Default.Document()
	SetDocument(doc)
	defer SetDocument(prev)

	ToggleDisplay("#panel")
	ToggleText("#btn", "Hide", "Show")
	ToggleCheckedAll("#agree")

	assert.Equal(t, "none", doc.GetElementById("panel").Style().Display())
	assert.Equal(t, "Hide", doc.GetElementById("btn").InnerText())
	assert.True(t, doc.GetElementById("agree").Checked())
}

func TestSharedInstance_Unbound(t *testing.T) {
	prev := Default.Document()
	SetDocument(nil)
	defer SetDocument(prev)

	assert.Panics(t, func() { ToggleDisplay("#panel") })
}

func TestSharedInstance_FollowsLoggerSetup(t *testing.T) {
	doc, err := dom.ParseHTML(page)
	require.NoError(t, err)
	prev := Default.Document()
	SetDocument(doc)
	defer SetDocument(prev)

	var buf bytes.Buffer
	log.Setup(log.Debug, log.Out(&buf), log.Err(&buf))
	defer log.Setup()

	ToggleDisplay("#panel")
	assert.Contains(t, buf.String(), `DEBUG display of #panel is now "none"`)
}
