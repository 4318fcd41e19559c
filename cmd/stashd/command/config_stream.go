package command

import (
	"fmt"
	"net"

	"github.com/pixil98/go-stash/internal/commands"
	"github.com/pixil98/go-stash/internal/stream"
)

type StreamConfig struct {
	Addr         string `json:"addr"`
	TextCommands bool   `json:"text_commands"`
}

func (c *StreamConfig) validate() error {
	if c.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("stream addr: %w", err)
	}
	return nil
}

// enabled reports whether the websocket stream should run.
func (c *StreamConfig) enabled() bool {
	return c.Addr != ""
}

func (c *StreamConfig) buildServer(broker stream.Broker) (*stream.Server, error) {
	var opts []stream.ServerOpt
	if c.TextCommands {
		parser, err := commands.NewParser(commands.Builtin())
		if err != nil {
			return nil, fmt.Errorf("building command parser: %w", err)
		}
		opts = append(opts, stream.WithParser(parser))
	}
	return stream.NewServer(c.Addr, broker, opts...), nil
}
