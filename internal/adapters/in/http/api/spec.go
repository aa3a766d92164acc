// Package api holds the HTTP contract of the service: the OpenAPI document,
// its request and response types, and the echo routing that binds path,
// query and header parameters before calling a ServerInterface.
package api

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiDocument []byte

var (
	loadOnce   sync.Once
	loadedSpec *openapi3.T
	loadErr    error
)

// GetSwagger returns the parsed and validated OpenAPI document. Callers get
// their own copy and may modify it.
func GetSwagger() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(openapiDocument)
		if err != nil {
			loadErr = fmt.Errorf("load openapi document: %w", err)
			return
		}
		if err = doc.Validate(loader.Context); err != nil {
			loadErr = fmt.Errorf("validate openapi document: %w", err)
			return
		}
		loadedSpec = doc
	})
	if loadErr != nil {
		return nil, loadErr
	}

	raw, err := json.Marshal(loadedSpec)
	if err != nil {
		return nil, err
	}
	loader := openapi3.NewLoader()
	return loader.LoadFromData(raw)
}

type swaggerDoc struct{}

// ReadDoc serves the document as JSON to the swagger UI.
func (swaggerDoc) ReadDoc() string {
	doc, err := GetSwagger()
	if err != nil {
		return "{}"
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}
