package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubCommand struct{ name string }

func (s stubCommand) Name() string        { return s.name }
func (s stubCommand) Description() string { return "stub " + s.name }
func (s stubCommand) Run([]string) error  { return nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(stubCommand{name: "seed"})
	r.Register(stubCommand{name: "migrate"})
	r.Register(stubCommand{name: "check-config"})

	cmd, ok := r.Get("seed")
	assert.True(t, ok)
	assert.Equal(t, "seed", cmd.Name())

	_, ok = r.Get("deploy")
	assert.False(t, ok)

	var names []string
	for _, c := range r.List() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"check-config", "migrate", "seed"}, names)
}

func TestMigrateRequiresSubcommand(t *testing.T) {
	assert.Error(t, (&MigrateCommand{}).Run(nil))
}
