package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the fully resolved configuration for one scaffolding run. It is
// built once from flags and defaults, then passed by value; nothing mutates
// it after construction.
type Config struct {
	Name      string // Project name (directory and npm scope)
	TargetDir string // Absolute path the project is created in

	// Collection defaults baked into the generated contracts and env files
	Collection CollectionConfig

	Minimal     bool // Skip frontend and backend packages
	SkipPrereqs bool // Skip external tool checks
	SkipInstall bool // Skip `pnpm install`
	SkipGit     bool // Skip `git init`
	DryRun      bool // Report operations without writing
}

// CollectionConfig holds the NFT collection values rendered into templates.
type CollectionConfig struct {
	Symbol    string
	MaxSupply int
	MintPrice float64 // In ether
	Network   string
}

// defaultCollection is used when no mintforge.yml overrides exist.
var defaultCollection = CollectionConfig{
	Symbol:    "MFT",
	MaxSupply: 10000,
	MintPrice: 0.05,
	Network:   "sepolia",
}

// LoadDefaults resolves collection defaults, in precedence order: environment
// variables (MINTFORGE_*), an optional mintforge.yml in the current
// directory, then built-in values. A malformed config file is an error; a
// missing one is not.
func LoadDefaults() (CollectionConfig, error) {
	v := viper.New()
	v.SetConfigName("mintforge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MINTFORGE")
	// Maps collection.max_supply to MINTFORGE_COLLECTION_MAX_SUPPLY.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("collection.symbol", defaultCollection.Symbol)
	v.SetDefault("collection.max_supply", defaultCollection.MaxSupply)
	v.SetDefault("collection.mint_price", defaultCollection.MintPrice)
	v.SetDefault("collection.network", defaultCollection.Network)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return CollectionConfig{}, fmt.Errorf("failed to read mintforge.yml: %w", err)
		}
	}

	// Read key by key: unmarshaling the collection sub-tree would bypass the
	// env layer, which viper only consults through Get.
	cfg := CollectionConfig{
		Symbol:    v.GetString("collection.symbol"),
		MaxSupply: v.GetInt("collection.max_supply"),
		MintPrice: v.GetFloat64("collection.mint_price"),
		Network:   v.GetString("collection.network"),
	}

	if cfg.MaxSupply <= 0 {
		return CollectionConfig{}, fmt.Errorf("collection.max_supply must be positive, got %d", cfg.MaxSupply)
	}
	if cfg.MintPrice < 0 {
		return CollectionConfig{}, fmt.Errorf("collection.mint_price must not be negative, got %g", cfg.MintPrice)
	}

	return cfg, nil
}

// NewConfig builds a run configuration from CLI inputs. targetParent is where
// the project directory will be created ("." for the current directory).
func NewConfig(name, targetParent string, collection CollectionConfig) (Config, error) {
	if name == "" {
		return Config{}, fmt.Errorf("project name is required")
	}
	if filepath.Base(name) != name || name == "." || name == ".." {
		return Config{}, fmt.Errorf("project name %q must be a plain directory name", name)
	}

	parent, err := filepath.Abs(targetParent)
	if err != nil {
		return Config{}, fmt.Errorf("resolving target directory: %w", err)
	}

	return Config{
		Name:       name,
		TargetDir:  filepath.Join(parent, name),
		Collection: collection,
	}, nil
}

// TargetExists reports whether the target directory already exists and
// whether it contains any entries.
func (c Config) TargetExists() (exists, nonEmpty bool) {
	entries, err := os.ReadDir(c.TargetDir)
	if err != nil {
		return false, false
	}
	return true, len(entries) > 0
}
