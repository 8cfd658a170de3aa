// Package localstore is the driven adapter that persists synced data
// files on the local filesystem with atomic write-then-rename.
package localstore
