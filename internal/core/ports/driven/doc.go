// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ArchiveFetcher: Retrieves the remote archive for a period
//   - ArchiveExtractor: Unpacks the data file from an archive
//   - Transcoder: Normalises payload bytes to UTF-8
//   - FileStore: Local presence checks and atomic writes
//   - ConfigStore: Persistent tool configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
