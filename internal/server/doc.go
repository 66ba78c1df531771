// Package server binds and runs the HTTP listener of a node service.
//
// It reports bind failures with dedicated diagnostics and routes OS signals,
// reported errors and context cancellation into a [ShutdownController],
// which drains connections before releasing caller resources and then exits
// the process with the conventional status.
package server
