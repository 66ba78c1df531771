package server

//go:generate mockgen -source=interfaces.go -destination=../mock/server_mock.go -package=mock

import (
	"context"
	"os"
)

// Drainer stops accepting connections and waits for in-flight requests.
// *http.Server satisfies it.
type Drainer interface {
	Shutdown(ctx context.Context) error
}

// Exiter terminates the process once shutdown is done.
type Exiter interface {
	// Exit ends the process with code.
	Exit(code int)

	// Raise delivers sig to the current process.
	Raise(sig os.Signal) error
}
