package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pixil98/go-stash/internal/game"
)

// Parser turns text commands into world requests.
type Parser struct {
	commands map[string]*Command
}

// NewParser validates and registers the given verbs.
func NewParser(cmds map[string]*Command) (*Parser, error) {
	p := &Parser{commands: make(map[string]*Command, len(cmds))}
	for verb, cmd := range cmds {
		if err := cmd.Validate(); err != nil {
			return nil, fmt.Errorf("command %q: %w", verb, err)
		}
		p.commands[strings.ToLower(verb)] = cmd
	}
	return p, nil
}

// Verbs returns the registered verbs in sorted order.
func (p *Parser) Verbs() []string {
	verbs := make([]string, 0, len(p.commands))
	for v := range p.commands {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)
	return verbs
}

// Parse converts a line such as "move pantry 0 backpack 3" into a request.
func (p *Parser) Parse(line string) (game.Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return game.Request{}, NewUserError("Empty command")
	}

	cmd, ok := p.commands[strings.ToLower(fields[0])]
	if !ok {
		return game.Request{}, NewUserError(fmt.Sprintf("Unknown command: %s", fields[0]))
	}

	args, err := parseArgs(cmd, fields[1:])
	if err != nil {
		return game.Request{}, err
	}

	req := game.Request{Op: cmd.Op}
	for name, value := range args {
		switch name {
		case InputInventory:
			req.Inventory = value.(string)
		case InputItem:
			req.Item = value.(string)
		case InputTarget:
			req.Target = value.(string)
		case InputCount:
			req.Count = value.(int)
		case InputIndex:
			n := value.(int)
			req.Index = &n
		case InputTargetIndex:
			n := value.(int)
			req.TargetIndex = &n
		}
	}

	return req, nil
}

func parseArgs(cmd *Command, raw []string) (map[string]any, error) {
	requiredCount := 0
	for _, spec := range cmd.Inputs {
		if spec.Required {
			requiredCount++
		}
	}

	if len(raw) < requiredCount {
		return nil, NewUserError(fmt.Sprintf("Expected at least %d argument(s), got %d. Usage: %s", requiredCount, len(raw), cmd.Usage))
	}
	if len(raw) > len(cmd.Inputs) {
		return nil, NewUserError(fmt.Sprintf("Expected at most %d argument(s), got %d. Usage: %s", len(cmd.Inputs), len(raw), cmd.Usage))
	}

	args := make(map[string]any, len(raw))
	for i, r := range raw {
		spec := cmd.Inputs[i]
		value, err := parseValue(spec.Type, r)
		if err != nil {
			return nil, err
		}
		args[spec.Name] = value
	}

	return args, nil
}

func parseValue(t InputType, raw string) (any, error) {
	switch t {
	case InputTypeString:
		return raw, nil

	case InputTypeNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, NewUserError(fmt.Sprintf("%q is not a valid number", raw))
		}
		return n, nil

	default:
		return nil, fmt.Errorf("unknown input type %q", t)
	}
}
