package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElement_Value(t *testing.T) {
	doc, err := ParseHTML(`
<input id="text" value="initial">
<input id="bare">
<input id="box" type="checkbox">
<textarea id="area">notes</textarea>
<select id="sel"><option value="a">A</option><option selected>  B  choice </option></select>
<button id="btn" value="go">Go</button>
<div id="div">content</div>`)
	require.NoError(t, err)
	byID := doc.GetElementById

	assert.Equal(t, "initial", byID("text").Value())
	assert.Equal(t, "", byID("bare").Value())
	assert.Equal(t, "on", byID("box").Value())
	assert.Equal(t, "notes", byID("area").Value())
	assert.Equal(t, "B choice", byID("sel").Value())
	assert.Equal(t, "go", byID("btn").Value())
	assert.Equal(t, "", byID("div").Value())

	byID("text").SetValue("typed")
	assert.Equal(t, "typed", byID("text").Value())
	assert.Equal(t, "initial", byID("text").GetAttribute("value"), "writing the property leaves the attribute alone")

	byID("text").SetAttribute("value", "changed")
	assert.Equal(t, "typed", byID("text").Value(), "dirty value wins over the attribute")

	byID("area").SetValue("edited")
	assert.Equal(t, "edited", byID("area").Value())
	assert.Equal(t, "notes", byID("area").TextContent())

	byID("div").SetValue("expando")
	assert.Equal(t, "expando", byID("div").Value())
	assert.Equal(t, "content", byID("div").TextContent())

	byID("btn").SetValue("stop")
	assert.Equal(t, "stop", byID("btn").GetAttribute("value"))
}

func TestElement_SelectValue(t *testing.T) {
	doc, err := ParseHTML(`<select id="sel"><option value="a">A</option><option value="b">B</option></select>`)
	require.NoError(t, err)
	sel := doc.GetElementById("sel")

	assert.Equal(t, "a", sel.Value(), "first option is the implicit selection")

	sel.SetValue("b")
	assert.Equal(t, "b", sel.Value())
	assert.NotNil(t, doc.QuerySelector("option:checked[value=b]"))

	sel.SetValue("zzz")
	assert.Equal(t, "", sel.Value())
}

func TestElement_Checked(t *testing.T) {
	doc, err := ParseHTML(`
<input id="on" type="checkbox" checked>
<input id="off" type="checkbox">
<span id="span"></span>`)
	require.NoError(t, err)
	byID := doc.GetElementById

	assert.True(t, byID("on").Checked())
	assert.False(t, byID("off").Checked())
	assert.False(t, byID("span").Checked())

	byID("on").SetChecked(false)
	assert.False(t, byID("on").Checked())
	assert.True(t, byID("on").HasAttribute("checked"), "property writes do not touch the attribute")

	byID("off").RemoveAttribute("checked")
	byID("off").SetAttribute("checked", "")
	assert.True(t, byID("off").Checked(), "attribute drives checkedness until the property is written")

	byID("span").SetChecked(true)
	assert.True(t, byID("span").Checked())
}

func TestElement_RadioGroup(t *testing.T) {
	doc, err := ParseHTML(`
<input id="r1" type="radio" name="size" checked>
<input id="r2" type="radio" name="size">
<input id="other" type="radio" name="color" checked>`)
	require.NoError(t, err)
	byID := doc.GetElementById

	byID("r2").SetChecked(true)
	assert.False(t, byID("r1").Checked())
	assert.True(t, byID("r2").Checked())
	assert.True(t, byID("other").Checked(), "other groups are untouched")
}

func TestDocument_ReflectFormState(t *testing.T) {
	doc, err := ParseHTML(`<input id="a" type="checkbox" checked><input id="b" type="checkbox"><input id="c" value="x"><textarea id="t">old</textarea><input id="d" type="checkbox" checked>`)
	require.NoError(t, err)
	byID := doc.GetElementById

	byID("a").SetChecked(false)
	byID("b").SetChecked(true)
	byID("c").SetValue("typed")
	byID("t").SetValue("new")
	doc.ReflectFormState()

	assert.False(t, byID("a").HasAttribute("checked"))
	assert.True(t, byID("b").HasAttribute("checked"))
	assert.Equal(t, "typed", byID("c").GetAttribute("value"))
	assert.Equal(t, "new", byID("t").TextContent())
	assert.True(t, byID("d").HasAttribute("checked"), "untouched state is left alone")
	assert.False(t, byID("a").Checked())
	assert.True(t, byID("b").Checked())
}
