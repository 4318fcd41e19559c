package stream

import (
	"time"

	"github.com/pixil98/go-stash/internal/commands"
)

type ServerOpt func(*Server)

// WithEventSubject overrides the subject relayed to clients.
func WithEventSubject(subject string) ServerOpt {
	return func(s *Server) {
		s.eventSubject = subject
	}
}

// WithRequestSubject overrides where client requests are forwarded.
func WithRequestSubject(subject string) ServerOpt {
	return func(s *Server) {
		s.requestSubject = subject
	}
}

func WithPingPeriod(d time.Duration) ServerOpt {
	return func(s *Server) {
		s.pingPeriod = d
	}
}

// WithParser enables plain text commands alongside JSON requests.
func WithParser(p *commands.Parser) ServerOpt {
	return func(s *Server) {
		s.parser = p
	}
}
