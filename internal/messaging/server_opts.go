package messaging

import "time"

type NatsOpt func(*NatsServer)

// WithStartTimeout bounds how long Start waits for the broker to accept
// connections.
func WithStartTimeout(d time.Duration) NatsOpt {
	return func(s *NatsServer) { s.startTimeout = d }
}

// WithHost sets the interface the broker binds to. Defaults to loopback.
func WithHost(host string) NatsOpt {
	return func(s *NatsServer) { s.host = host }
}

// WithPort sets the broker port. -1 picks a random free port.
func WithPort(port int) NatsOpt {
	return func(s *NatsServer) { s.port = port }
}
