package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSSStyleDeclarationBasic(t *testing.T) {
	doc := NewDocument()
	sd := doc.CreateElement("div").Style()

	assert.Equal(t, 0, sd.Length())
	assert.Equal(t, "", sd.CSSText())
	assert.Equal(t, "", sd.Display())
}

func TestCSSStyleDeclarationSetProperty(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	sd := el.Style()

	sd.SetProperty("color", "red")
	assert.Equal(t, 1, sd.Length())
	assert.Equal(t, "red", sd.GetPropertyValue("color"))
	assert.Equal(t, "color", sd.Item(0))
	assert.Equal(t, "color: red;", sd.CSSText())
	assert.Equal(t, "color: red;", el.GetAttribute("style"))

	sd.SetProperty("margin", "0", "important")
	assert.Equal(t, "important", sd.GetPropertyPriority("margin"))
	assert.Equal(t, "color: red; margin: 0 !important;", el.GetAttribute("style"))
}

func TestCSSStyleDeclarationCamelCase(t *testing.T) {
	doc := NewDocument()
	sd := doc.CreateElement("div").Style()

	sd.SetProperty("backgroundColor", "#fff")
	assert.Equal(t, "#fff", sd.GetPropertyValue("background-color"))
	assert.Equal(t, "#fff", sd.GetPropertyValue("backgroundColor"))
	assert.Equal(t, "background-color: #fff;", sd.CSSText())

	assert.Equal(t, "backgroundColor", CamelCasePropertyName("background-color"))
	assert.Equal(t, "WebkitTransform", CamelCasePropertyName("-webkit-transform"))
	assert.Equal(t, "-webkit-transform", normalizeCSSPropertyName("WebkitTransform"))

	for _, name := range []string{"display", "background-color", "-webkit-transform", "-moz-user-select"} {
		assert.Equal(t, name, normalizeCSSPropertyName(CamelCasePropertyName(name)), name)
	}
}

func TestCSSStyleDeclarationRemoveProperty(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	sd := el.Style()

	sd.SetProperty("color", "blue")
	assert.Equal(t, "blue", sd.RemoveProperty("color"))
	assert.Equal(t, "", sd.RemoveProperty("color"))
	assert.False(t, el.HasAttribute("style"))

	sd.SetDisplay("none")
	sd.SetDisplay("")
	assert.False(t, el.HasAttribute("style"))
}

func TestCSSStyleDeclarationFromAttribute(t *testing.T) {
	doc, err := ParseHTML(`<div id="panel" style="display:block;color : red ! important;;bogus"></div>`)
	require.NoError(t, err)
	el := doc.GetElementById("panel")

	sd := el.Style()
	assert.Equal(t, "block", sd.Display())
	assert.Equal(t, "red", sd.GetPropertyValue("color"))
	assert.Equal(t, "important", sd.GetPropertyPriority("color"))
	assert.Equal(t, []string{"display", "color"}, sd.PropertyNames())

	el.SetAttribute("style", "display: flex")
	assert.Equal(t, "flex", sd.Display())
	assert.Equal(t, 1, sd.Length())

	el.RemoveAttribute("style")
	assert.Equal(t, "", sd.Display())
}

func TestCSSStyleDeclarationSetCSSText(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	sd := el.Style()
	sd.SetProperty("color", "red")

	sd.SetCSSText("display: none; width: 10px")
	assert.Equal(t, "", sd.GetPropertyValue("color"))
	assert.Equal(t, "none", sd.Display())
	assert.Equal(t, "display: none; width: 10px;", el.GetAttribute("style"))
}
