package js

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/domtoggle/dom"
)

const bindingsPage = `<!DOCTYPE html>
<html><head><title> Bindings </title></head><body>
<div id="panel" class="box main" style="display: block">Panel <span>text</span></div>
<ul><li>one</li><li>two</li><li>three</li></ul>
<input id="name" value="Ann">
<input type="checkbox" id="agree">
</body></html>`

func setupBindings(t *testing.T) (*Runtime, *dom.Document) {
	t.Helper()
	doc, err := dom.ParseHTML(bindingsPage)
	require.NoError(t, err)

	r := NewRuntime(quietLogger())
	NewDOMBinder(r).BindDocument(doc)
	return r, doc
}

func TestDocumentBinding(t *testing.T) {
	r, _ := setupBindings(t)

	result, err := r.Execute("document.title")
	require.NoError(t, err)
	assert.Equal(t, "Bindings", result.String())

	result, err = r.Execute("document.body.tagName")
	require.NoError(t, err)
	assert.Equal(t, "BODY", result.String())

	result, err = r.Execute("document.getElementById('missing') === null")
	require.NoError(t, err)
	assert.True(t, result.ToBoolean())
}

func TestQuerySelectorBinding(t *testing.T) {
	r, _ := setupBindings(t)

	result, err := r.Execute("document.querySelector('.box').id")
	require.NoError(t, err)
	assert.Equal(t, "panel", result.String())

	result, err = r.Execute("document.querySelector('#nothing') === null")
	require.NoError(t, err)
	assert.True(t, result.ToBoolean())

	result, err = r.Execute("document.querySelectorAll('li').length")
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.ToInteger())

	result, err = r.Execute(`
		var texts = [];
		document.querySelectorAll('li').forEach(function (li) { texts.push(li.textContent); });
		texts.join(',')
	`)
	require.NoError(t, err)
	assert.Equal(t, "one,two,three", result.String())

	result, err = r.Execute("document.querySelectorAll('li').item(5) === null")
	require.NoError(t, err)
	assert.True(t, result.ToBoolean())
}

func TestQuerySelectorSyntaxError(t *testing.T) {
	r, _ := setupBindings(t)

	result, err := r.Execute(`
		var name = '';
		try { document.querySelector('[['); } catch (e) { name = e.name; }
		name
	`)
	require.NoError(t, err)
	assert.Equal(t, "SyntaxError", result.String())
}

func TestElementIdentity(t *testing.T) {
	r, _ := setupBindings(t)

	result, err := r.Execute("document.getElementById('panel') === document.querySelector('#panel')")
	require.NoError(t, err)
	assert.True(t, result.ToBoolean())
}

func TestElementProperties(t *testing.T) {
	r, doc := setupBindings(t)

	_, err := r.Execute(`
		var panel = document.getElementById('panel');
		panel.className = 'box hidden';
		panel.setAttribute('data-state', 'closed');
		document.getElementById('name').value = 'Bob';
		document.getElementById('agree').checked = true;
	`)
	require.NoError(t, err)

	panel := doc.GetElementById("panel")
	assert.Equal(t, "box hidden", panel.GetAttribute("class"))
	assert.Equal(t, "closed", panel.GetAttribute("data-state"))
	assert.Equal(t, "Bob", doc.GetElementById("name").Value())
	assert.True(t, doc.GetElementById("agree").Checked())

	result, err := r.Execute("document.getElementById('panel').getAttribute('missing') === null")
	require.NoError(t, err)
	assert.True(t, result.ToBoolean())
}

func TestElementInnerText(t *testing.T) {
	r, doc := setupBindings(t)

	result, err := r.Execute("document.getElementById('panel').innerText")
	require.NoError(t, err)
	assert.Equal(t, "Panel text", result.String())

	_, err = r.Execute("document.getElementById('panel').innerText = 'Closed'")
	require.NoError(t, err)
	assert.Equal(t, "Closed", doc.GetElementById("panel").TextContent())
}

func TestStyleBinding(t *testing.T) {
	r, doc := setupBindings(t)

	result, err := r.Execute("document.getElementById('panel').style.display")
	require.NoError(t, err)
	assert.Equal(t, "block", result.String())

	_, err = r.Execute(`
		var style = document.getElementById('panel').style;
		style.display = 'none';
		style.backgroundColor = 'red';
	`)
	require.NoError(t, err)

	panel := doc.GetElementById("panel")
	assert.Equal(t, "none", panel.Style().Display())
	assert.Equal(t, "display: none; background-color: red;", panel.GetAttribute("style"))

	result, err = r.Execute("document.getElementById('panel').style.getPropertyValue('background-color')")
	require.NoError(t, err)
	assert.Equal(t, "red", result.String())

	result, err = r.Execute("document.querySelector('li').style.display")
	require.NoError(t, err)
	assert.Equal(t, "", result.String())
}

func TestStyleCSSText(t *testing.T) {
	r, doc := setupBindings(t)

	_, err := r.Execute("document.getElementById('panel').style.cssText = 'color: blue'")
	require.NoError(t, err)
	assert.Equal(t, "color: blue;", doc.GetElementById("panel").GetAttribute("style"))

	result, err := r.Execute("document.getElementById('panel').style.length")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ToInteger())
}

func TestAppendChildBinding(t *testing.T) {
	r, doc := setupBindings(t)

	_, err := r.Execute(`
		var li = document.createElement('li');
		li.textContent = 'four';
		document.querySelector('ul').appendChild(li);
	`)
	require.NoError(t, err)
	assert.Equal(t, 4, doc.QuerySelectorAll("li").Length())
}
