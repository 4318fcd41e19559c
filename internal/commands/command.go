package commands

import (
	"fmt"

	"github.com/pixil98/go-stash/internal/game"
)

// InputType is the type of a command argument.
type InputType string

const (
	InputTypeString InputType = "string"
	InputTypeNumber InputType = "number"
)

// Input names map onto request fields.
const (
	InputInventory   = "inventory"
	InputItem        = "item"
	InputCount       = "count"
	InputIndex       = "index"
	InputTarget      = "target"
	InputTargetIndex = "target_index"
)

// InputSpec describes one positional argument.
type InputSpec struct {
	Name     string    `json:"name"`
	Type     InputType `json:"type"`
	Required bool      `json:"required"`
}

// Command maps a verb onto a request operation.
type Command struct {
	Op     string      `json:"op"`
	Usage  string      `json:"usage"`
	Inputs []InputSpec `json:"inputs"`
}

func (c *Command) Validate() error {
	if c.Op == "" {
		return fmt.Errorf("command op not set")
	}

	optional := false
	for i, input := range c.Inputs {
		if input.Name == "" {
			return fmt.Errorf("input %d: name is required", i)
		}
		switch input.Type {
		case InputTypeString, InputTypeNumber:
		case "":
			return fmt.Errorf("input %q: type is required", input.Name)
		default:
			return fmt.Errorf("input %q: unknown type %q", input.Name, input.Type)
		}
		// Positional arguments cannot skip an optional one.
		if input.Required && optional {
			return fmt.Errorf("input %q: required input follows an optional one", input.Name)
		}
		if !input.Required {
			optional = true
		}
	}

	return nil
}

func required(name string, t InputType) InputSpec {
	return InputSpec{Name: name, Type: t, Required: true}
}

func optional(name string, t InputType) InputSpec {
	return InputSpec{Name: name, Type: t}
}

// Builtin returns the default verbs.
func Builtin() map[string]*Command {
	add := []InputSpec{
		required(InputInventory, InputTypeString),
		required(InputItem, InputTypeString),
		optional(InputCount, InputTypeNumber),
		optional(InputIndex, InputTypeNumber),
	}

	return map[string]*Command{
		"add": {
			Op:     game.OpAdd,
			Usage:  "add <inventory> <item> [count] [slot]",
			Inputs: add,
		},
		"tryadd": {
			Op:     game.OpTryAdd,
			Usage:  "tryadd <inventory> <item> [count] [slot]",
			Inputs: add,
		},
		"remove": {
			Op:    game.OpRemove,
			Usage: "remove <inventory> <slot> [count]",
			Inputs: []InputSpec{
				required(InputInventory, InputTypeString),
				required(InputIndex, InputTypeNumber),
				optional(InputCount, InputTypeNumber),
			},
		},
		"delete": {
			Op:    game.OpDelete,
			Usage: "delete <inventory> <slot>",
			Inputs: []InputSpec{
				required(InputInventory, InputTypeString),
				required(InputIndex, InputTypeNumber),
			},
		},
		"move": {
			Op:    game.OpMove,
			Usage: "move <inventory> <slot> <target> <target slot>",
			Inputs: []InputSpec{
				required(InputInventory, InputTypeString),
				required(InputIndex, InputTypeNumber),
				required(InputTarget, InputTypeString),
				required(InputTargetIndex, InputTypeNumber),
			},
		},
		"clear": {
			Op:     game.OpClear,
			Usage:  "clear <inventory>",
			Inputs: []InputSpec{required(InputInventory, InputTypeString)},
		},
		"look": {
			Op:     game.OpLook,
			Usage:  "look <inventory>",
			Inputs: []InputSpec{required(InputInventory, InputTypeString)},
		},
		"examine": {
			Op:    game.OpExamine,
			Usage: "examine <inventory> <slot>",
			Inputs: []InputSpec{
				required(InputInventory, InputTypeString),
				required(InputIndex, InputTypeNumber),
			},
		},
		"pickup": {
			Op:    game.OpPickup,
			Usage: "pickup <inventory> <item> [slot]",
			Inputs: []InputSpec{
				required(InputInventory, InputTypeString),
				required(InputItem, InputTypeString),
				optional(InputIndex, InputTypeNumber),
			},
		},
	}
}
