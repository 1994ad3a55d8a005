// Package webfetch fetches web pages and converts their HTML to Markdown.
//
// [NewWebFetchTool] exposes the fetch to a model as a tool. [FetchDocument]
// uses the same path to load a page as a [document.Document] whose content is
// the Markdown and whose metadata records where it came from.
package webfetch
