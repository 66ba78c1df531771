// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Amir Ossanloo

package server

import "errors"

var (
	// ErrBind wraps every failure to open the listening socket.
	ErrBind = errors.New("cannot bind listener")

	ErrAddressInUse     = errors.New("address already in use")
	ErrPermissionDenied = errors.New("binding requires elevated privileges")

	// ErrMissingTLSFiles is returned when https is enabled without certFile
	// and keyFile options.
	ErrMissingTLSFiles = errors.New("https requires certFile and keyFile options")

	errShutdownFailed = errors.New("graceful shutdown failed")
)
