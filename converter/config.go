package converter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the optional converter configuration file.
type Config struct {
	DefaultTexture string `yaml:"default_texture"`
	TextureExt     string `yaml:"texture_ext"`

	// Directory to write converted textures to. Empty disables export.
	ExportTextures string `yaml:"export_textures"`
	TexturePow2    bool   `yaml:"texture_pow2"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

func DefaultConfig() *Config {
	return &Config{
		DefaultTexture: DefaultTextureName,
		TextureExt:     DefaultTextureExt,
		LogLevel:       "info",
	}
}

// LoadConfig reads a yaml config file over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()
	if path == "" {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if conf.TextureExt != "" && conf.TextureExt[0] != '.' {
		conf.TextureExt = "." + conf.TextureExt
	}
	return conf, nil
}

func (conf *Config) ConverterOption() *GLTFToV3DOption {
	return &GLTFToV3DOption{
		DefaultTexture: conf.DefaultTexture,
		TextureExt:     conf.TextureExt,
	}
}
