// Package view decouples handlers from page rendering. Handlers pass a
// template name and a view model; the renderer decides the representation.
package view

import (
	"encoding/json"
	"net/http"
)

type Data map[string]any

type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data Data) error
}

// Page is what JSONRenderer writes.
type Page struct {
	Template string `json:"template"`
	Data     Data   `json:"data"`
}

// JSONRenderer emits the view model as JSON. It is the default renderer and
// what the handler tests decode.
type JSONRenderer struct{}

func (JSONRenderer) Render(w http.ResponseWriter, status int, name string, data Data) error {
	if data == nil {
		data = Data{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(Page{Template: name, Data: data})
}
