package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
)

const confirmYes = "yes"

var errUnknownCommand = errors.New("unknown command")

// Command is a devtool subcommand. Usage lists its arguments, empty when it takes none.
type Command interface {
	Name() string
	Usage() string
	Description() string
	Run(args []string) error
}

// Registry dispatches command-line arguments to registered commands
type Registry struct {
	commands map[string]Command
}

func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		r.commands[cmd.Name()] = cmd
	}
	return r
}

// Dispatch runs the command named by args[0] with the remaining arguments.
func (r *Registry) Dispatch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: none given", errUnknownCommand)
	}
	cmd, ok := r.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownCommand, args[0])
	}
	if err := cmd.Run(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return nil
}

// Names returns the registered command names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) PrintHelp() {
	fmt.Println("Usage: devtool <command> [args...]")
	fmt.Println("\nCommands:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range r.Names() {
		cmd := r.commands[name]
		fmt.Fprintf(w, "  %s %s\t%s\n", name, cmd.Usage(), cmd.Description())
	}
	_ = w.Flush()
}
