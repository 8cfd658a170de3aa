// Package archive is the driven adapter that unpacks downloaded ZIP
// archives and normalises their payload to UTF-8.
package archive
