package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCommand struct {
	name string
	args []string
	err  error
}

func (c *recordingCommand) Name() string        { return c.name }
func (c *recordingCommand) Usage() string       { return "" }
func (c *recordingCommand) Description() string { return "records its arguments" }

func (c *recordingCommand) Run(args []string) error {
	c.args = args
	return c.err
}

func TestRegistryDispatch(t *testing.T) {
	ok := &recordingCommand{name: "ok"}
	failing := &recordingCommand{name: "fail", err: errors.New("boom")}
	r := NewRegistry(ok, failing)

	require.NoError(t, r.Dispatch([]string{"ok", "a", "b"}))
	assert.Equal(t, []string{"a", "b"}, ok.args)

	err := r.Dispatch([]string{"fail"})
	assert.EqualError(t, err, "fail: boom")
	assert.NotErrorIs(t, err, errUnknownCommand)

	assert.ErrorIs(t, r.Dispatch([]string{"nope"}), errUnknownCommand)
	assert.ErrorIs(t, r.Dispatch(nil), errUnknownCommand)
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry(&recordingCommand{name: "reset"}, &recordingCommand{name: "migrate"}, &recordingCommand{name: "health-check"})

	assert.Equal(t, []string{"health-check", "migrate", "reset"}, r.Names())
}
