// Package services contains the core business logic of the downloader.
//
// Services implement the driving ports and depend only on domain types
// and driven ports. The single service here is SyncService, the driver
// of a synchronisation run.
//
// # Import Rules
//
//   - Can Import: domain, ports packages
//   - Cannot Import: Any adapter package
package services
