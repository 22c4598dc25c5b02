package item

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/validation"
)

// Sentinel errors for item loader
var (
	ErrDuplicateKind = errors.New("duplicate item kind")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the JSON configuration for items
type Config struct {
	Version string                  `json:"version"`
	Items   []domain.ItemDefinition `json:"items"`
}

// Loader handles loading and validating item configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
}

type itemLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &itemLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads and parses an items JSON file
func (l *itemLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, validation.SchemaItems); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks the item configuration for errors
func (l *itemLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	if len(config.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}

	seen := make(map[int]bool, len(config.Items))
	for i := range config.Items {
		def := &config.Items[i]

		if seen[def.Kind] {
			return fmt.Errorf(ErrFmtDuplicateKind, ErrDuplicateKind, def.Kind)
		}
		seen[def.Kind] = true

		if def.Name == "" {
			return fmt.Errorf(ErrFmtEmptyName, ErrInvalidConfig, def.Kind)
		}
		if def.Level < 0 {
			return fmt.Errorf(ErrFmtNegativeLevel, ErrInvalidConfig, def.Name)
		}
		switch def.Category {
		case domain.CategoryWeapon, domain.CategoryArmor, domain.CategoryPendant, domain.CategoryRing,
			domain.CategoryConsumable, domain.CategoryEnchant, domain.CategoryOther:
		default:
			return fmt.Errorf(ErrFmtUnknownCategory, ErrInvalidConfig, def.Name, def.Category)
		}
	}

	return nil
}

// LoadCatalog loads, validates and indexes the item file at path
func LoadCatalog(ctx context.Context, path string) (*Catalog, error) {
	loader := NewLoader()

	config, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	if err := loader.Validate(config); err != nil {
		return nil, err
	}

	catalog := NewCatalog(config.Items)
	logger.FromContext(ctx).Info(LogMsgCatalogLoaded, "path", path, "items", catalog.Len())
	return catalog, nil
}
