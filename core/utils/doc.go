// Package utils provides helpers for reading loosely typed JSON documents, such as
// change feed items whose identifiers and counts may arrive as strings or numbers.
package utils
