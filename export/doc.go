// Package export writes reconciled record lists out as XLSX workbooks or
// CSV files, the two formats the downstream budgeting tools consume.
package export
