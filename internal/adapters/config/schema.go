package config

import (
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Document represents the structure of the mirror configuration file.
// JSON documents are valid YAML and decode through the same tags.
type Document struct {
	InputDir                  string   `yaml:"input_dir"`
	OutputDir                 string   `yaml:"output_dir"`
	Threads                   int      `yaml:"threads"`
	Overwrite                 bool     `yaml:"is_overwrite"`
	Sync                      bool     `yaml:"sync"`
	CopyOtherFiles            bool     `yaml:"copy_other_files"`
	Bitrate                   Bitrate  `yaml:"bitrate"`
	FromExtensions            []string `yaml:"from_extensions"`
	ToExtension               string   `yaml:"to_extension"`
	CacheFile                 string   `yaml:"cache_file"`
	CaseInsensitiveExtensions bool     `yaml:"case_insensitive_extensions"`
	Tool                      string   `yaml:"tool"`
	ConvertArgs               []string `yaml:"convert_args"`
	ValidateArgs              []string `yaml:"validate_args"`
}

// Bitrate accepts either a string ("192k") or a number (192000).
type Bitrate string

// UnmarshalYAML keeps the scalar text as written.
func (b *Bitrate) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return zerr.With(zerr.New("bitrate must be a string or a number"), "line", value.Line)
	}
	*b = Bitrate(value.Value)
	return nil
}
