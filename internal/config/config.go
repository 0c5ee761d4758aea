// Package config defines the engine's runtime configuration and loads it
// with viper, layering built-in defaults, a config file, and environment
// variables. Command-line flags are not bound into this layering.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config mirrors the recognized runtime options and their effects.
type Config struct {
	ChunkSizeXZ       int    `mapstructure:"chunk_size_xz"`
	ChunkSizeY        int    `mapstructure:"chunk_size_y"`
	RenderDistanceXZ  int    `mapstructure:"render_distance_xz"`
	RenderDistanceY   int    `mapstructure:"render_distance_y"`
	MaxChunksPerFrame int    `mapstructure:"max_chunks_per_frame"`
	GenerateCollision bool   `mapstructure:"generate_collision"`
	AutoSaveChunks    bool   `mapstructure:"auto_save_chunks"`
	SaveDirectory     string `mapstructure:"save_directory"`
	CompressChunks    bool   `mapstructure:"compress_chunks"`
	LogFormat         string `mapstructure:"log_format"`
	VSync             bool   `mapstructure:"vsync"`
}

// Default returns the engine's default configuration.
func Default() Config {
	return Config{
		ChunkSizeXZ:       16,
		ChunkSizeY:        128,
		RenderDistanceXZ:  8,
		RenderDistanceY:   4,
		MaxChunksPerFrame: 4,
		GenerateCollision: true,
		AutoSaveChunks:    true,
		SaveDirectory:     "./world",
		CompressChunks:    true,
		LogFormat:         "text",
		VSync:             true,
	}
}

// Validate checks every field against its documented range and returns a
// single error listing every violation, rather than failing on the first.
func (c Config) Validate() error {
	var problems []string

	if c.ChunkSizeXZ < 8 || c.ChunkSizeXZ > 64 || c.ChunkSizeXZ%8 != 0 {
		problems = append(problems, "chunk_size_xz must be a multiple of 8 in [8, 64]")
	}
	if c.ChunkSizeY < 8 || c.ChunkSizeY > 256 || c.ChunkSizeY%8 != 0 {
		problems = append(problems, "chunk_size_y must be a multiple of 8 in [8, 256]")
	}
	if c.RenderDistanceXZ < 2 || c.RenderDistanceXZ > 32 {
		problems = append(problems, "render_distance_xz must be in [2, 32]")
	}
	if c.RenderDistanceY < 1 || c.RenderDistanceY > 16 {
		problems = append(problems, "render_distance_y must be in [1, 16]")
	}
	if c.MaxChunksPerFrame < 0 || c.MaxChunksPerFrame > 10 {
		problems = append(problems, "max_chunks_per_frame must be in [0, 10]")
	}
	if c.SaveDirectory == "" {
		problems = append(problems, "save_directory must not be empty")
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

// Load builds a viper instance layered as defaults < file < environment
// (later layers override earlier ones), reads the optional config file at path (ignored if empty or missing),
// and unmarshals the result into a Config seeded with Default().
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VOXELSTREAM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	def := Default()
	v.SetDefault("chunk_size_xz", def.ChunkSizeXZ)
	v.SetDefault("chunk_size_y", def.ChunkSizeY)
	v.SetDefault("render_distance_xz", def.RenderDistanceXZ)
	v.SetDefault("render_distance_y", def.RenderDistanceY)
	v.SetDefault("max_chunks_per_frame", def.MaxChunksPerFrame)
	v.SetDefault("generate_collision", def.GenerateCollision)
	v.SetDefault("auto_save_chunks", def.AutoSaveChunks)
	v.SetDefault("save_directory", def.SaveDirectory)
	v.SetDefault("compress_chunks", def.CompressChunks)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("vsync", def.VSync)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			_, notFound := err.(viper.ConfigFileNotFoundError)
			if !notFound && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
