package api

import (
	_ "embed"
	"log"
	"net/http"
)

var (
	//go:embed docs/index.html
	docsIndex []byte
	//go:embed docs/openapi.json
	openAPISpec []byte
)

func serveDocsUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(docsIndex); err != nil {
		log.Printf("Error writing docs page: %v", err)
	}
}

func serveOpenAPISpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(openAPISpec); err != nil {
		log.Printf("Error writing OpenAPI document: %v", err)
	}
}
