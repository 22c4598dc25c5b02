package progression

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/validation"
)

type achievementsFile struct {
	Version      string       `json:"version"`
	Achievements []Definition `json:"achievements"`
}

// LoadCatalog reads and validates the achievement definitions at path
func LoadCatalog(ctx context.Context, path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadAchievementsFailed, err)
	}

	if err := validation.NewSchemaValidator().ValidateBytes(data, validation.SchemaAchievements); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var file achievementsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf(ErrMsgParseAchievementsFailed, err)
	}

	catalog, err := NewCatalog(file.Achievements)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgAchievementsLoaded, "path", path, "count", catalog.Len())
	return catalog, nil
}
