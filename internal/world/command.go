package world

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Command is one client request. Which fields apply depends on Op.
type Command struct {
	Op string `json:"op" validate:"required,oneof=equip unequip eat enchant bloodsuck pvp game found_achievement finish_achievements guild_create guild_invite guild_reply guild_leave"`

	// Kind and Index address an inventory slot and the item expected there
	Kind  int `json:"kind" validate:"min=0"`
	Index int `json:"index" validate:"min=-4"`
	// Slot is a negative equip slot selector
	Slot int `json:"slot" validate:"min=-4,max=0"`

	Enabled bool `json:"enabled"`
	// Achievement is the achievement id
	Achievement int `json:"achievement" validate:"min=0"`

	Name    string `json:"name" validate:"required_if=Op guild_create,max=32"`
	Target  string `json:"target" validate:"required_if=Op guild_invite,max=32"`
	GuildID int64  `json:"guild_id" validate:"required_if=Op guild_reply,min=0"`
	Accept  bool   `json:"accept"`
}

// DecodeCommand parses and validates a client payload
func DecodeCommand(payload []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return Command{}, fmt.Errorf("failed to decode command: %w", err)
	}
	if err := validate.Struct(cmd); err != nil {
		return Command{}, fmt.Errorf("invalid %q command: %w", cmd.Op, err)
	}
	return cmd, nil
}
