// Package htmltable extracts line items from HTML documents.
//
// Budget spreadsheets delivered by email or exported from web systems often
// arrive as HTML files with one or more <table> elements. This backend
// parses them with x/net/html, flattens each table into rows and hands the
// rows to the shared extraction engine's structured path.
package htmltable
