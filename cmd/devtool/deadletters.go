package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osse101/realmkeeper/internal/bootstrap"
	"github.com/osse101/realmkeeper/internal/config"
	"github.com/osse101/realmkeeper/internal/event"
)

type DeadLettersCommand struct{}

func (c *DeadLettersCommand) Name() string {
	return "dead-letters"
}

func (c *DeadLettersCommand) Description() string {
	return "List events that exhausted their publish retries [file]"
}

func (c *DeadLettersCommand) Run(args []string) error {
	path, err := c.path(args)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			PrintSuccess("No dead-letter file at %s", path)
			return nil
		}
		return err
	}
	defer f.Close()

	entries, err := event.ReadDeadLetters(f)
	PrintHeader(fmt.Sprintf("%d dead-lettered events in %s", len(entries), path))
	for _, e := range entries {
		PrintWarning("%s %s attempts=%d error=%q",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Event.Type, e.Attempts, e.LastError)
	}
	return err
}

func (c *DeadLettersCommand) path(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return filepath.Join(cfg.LogDir, bootstrap.EventDeadLetterFile), nil
}
