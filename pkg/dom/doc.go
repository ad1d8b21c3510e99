// Package dom provides Lumen's server-side document tree: mutable elements
// with attributes, classes and event listeners, a Document with selector
// queries, and the NodeRef forward-declared handle bound by the mounting
// layer.
//
// The tree follows the runtime's single logical stream: all structural
// mutation of a document happens on one goroutine at a time. NodeRef binding
// is backed by a reactive signal, so handle reads participate in dependency
// tracking and rebinds notify dependents.
//
// Selector queries are synchronous and side-effect-free:
//
//	doc := dom.NewDocument()
//	doc.Root().AppendChild(dom.NewElement("div").SetID("main"))
//	el, ok := doc.Query("#main")
//
// Supported selectors: tag, #id, .class, compound forms like "div.card#main",
// and the descendant combinator ("section .item"). Query returns the first
// match in document order; QueryAll returns every match.
package dom
