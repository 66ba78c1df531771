package server

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ProcessExiter is the default [Exiter]; it acts on the running process.
type ProcessExiter struct{}

func (ProcessExiter) Exit(code int) {
	os.Exit(code)
}

// Raise restores the default disposition of sig before sending it so that
// the process terminates with the conventional signal status.
func (ProcessExiter) Raise(sig os.Signal) error {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return fmt.Errorf("cannot raise %v", sig)
	}
	signal.Reset(s)
	return syscall.Kill(os.Getpid(), s)
}

var signalsByName = map[string]os.Signal{
	"SIGTERM": syscall.SIGTERM,
	"SIGINT":  syscall.SIGINT,
	"SIGHUP":  syscall.SIGHUP,
	"SIGQUIT": syscall.SIGQUIT,
	"SIGUSR1": syscall.SIGUSR1,
	"SIGUSR2": syscall.SIGUSR2,
}

// ParseSignals maps configured signal names to os.Signal values.
func ParseSignals(names []string) ([]os.Signal, error) {
	signals := make([]os.Signal, 0, len(names))
	for _, name := range names {
		sig, ok := signalsByName[name]
		if !ok {
			return nil, fmt.Errorf("unsupported shutdown signal %q", name)
		}
		signals = append(signals, sig)
	}
	return signals, nil
}

// signalName returns the configuration spelling of sig, e.g. "SIGTERM".
func signalName(sig os.Signal) string {
	for name, s := range signalsByName {
		if s == sig {
			return name
		}
	}
	return sig.String()
}
