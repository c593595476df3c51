package server

import (
	"encoding/json"
	"fmt"

	"github.com/vcrobe/nojs-ssr/hydrate"
	"github.com/vcrobe/nojs-ssr/importmap"
	"github.com/vcrobe/nojs-ssr/vdom"
)

// page holds the parts of a server rendered document.
type page struct {
	lang      string
	importMap *importmap.Map
	head      []*vdom.VNode
	body      *vdom.VNode
	data      map[string]any

	wasmPath     string
	wasmExecPath string
}

// document builds the HTML document: the import map script comes first, the
// managed head tags sit between the head markers, and the hydration script
// closes the body.
func (p page) document() (*vdom.VNode, error) {
	importMapJSON, err := p.importMap.JSON()
	if err != nil {
		return nil, fmt.Errorf("encode import map: %w", err)
	}

	headChildren := []*vdom.VNode{
		vdom.Meta(map[string]any{"charset": "utf-8"}),
		vdom.Script(map[string]any{"type": "importmap"}, EscapeScriptJSON(string(importMapJSON))),
		vdom.Meta(map[string]any{"name": hydrate.HeadStartName}),
	}
	headChildren = append(headChildren, p.head...)
	headChildren = append(headChildren, vdom.Meta(map[string]any{"name": hydrate.HeadEndName}))

	script, err := p.hydrationScript()
	if err != nil {
		return nil, err
	}

	return vdom.Element("html", map[string]any{"lang": p.lang},
		vdom.Element("head", nil, headChildren...),
		vdom.Element("body", nil,
			vdom.Div(map[string]any{"id": hydrate.AppID}, p.body),
			vdom.Script(map[string]any{"type": "module"}, script),
		),
	), nil
}

func (p page) hydrationScript() (string, error) {
	data := p.data
	if data == nil {
		data = map[string]any{}
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode transfer data: %w", err)
	}
	wasm, err := json.Marshal(p.wasmPath)
	if err != nil {
		return "", err
	}
	wasmExec, err := json.Marshal(p.wasmExecPath)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`import %s;

window.%s = %s;

const go = new Go();
const { instance } = await WebAssembly.instantiateStreaming(fetch(%s), go.importObject);
go.run(instance);
`,
		EscapeScriptJSON(string(wasmExec)),
		hydrate.DataGlobal,
		EscapeScriptJSON(string(dataJSON)),
		EscapeScriptJSON(string(wasm)),
	), nil
}
