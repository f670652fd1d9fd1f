// Package config provides the configuration loader for mirror.
package config

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML or JSON file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the document at path and returns a validated configuration.
// Relative paths in the document are resolved against the document's directory.
func (l *Loader) Load(path string) (*domain.Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var doc Document
	if err := readAndUnmarshalYAML(absPath, &doc); err != nil {
		return nil, zerr.With(err, "path", absPath)
	}

	cfg, err := l.build(filepath.Dir(absPath), &doc)
	if err != nil {
		return nil, zerr.With(err, "path", absPath)
	}
	return cfg, nil
}

func (l *Loader) build(baseDir string, doc *Document) (*domain.Config, error) {
	if err := requireFields(doc); err != nil {
		return nil, err
	}

	from, err := normalizeExtensions(doc.FromExtensions)
	if err != nil {
		return nil, err
	}
	to, err := normalizeExtension(doc.ToExtension)
	if err != nil {
		return nil, err
	}

	threads := doc.Threads
	switch {
	case threads < 0:
		return nil, zerr.With(domain.ErrInvalidThreads, "threads", threads)
	case threads == 0:
		threads = runtime.NumCPU()
	}

	cfg := &domain.Config{
		InputDir:                  resolvePath(baseDir, doc.InputDir),
		OutputDir:                 resolvePath(baseDir, doc.OutputDir),
		Threads:                   threads,
		Overwrite:                 doc.Overwrite,
		Sync:                      doc.Sync,
		CopyOtherFiles:            doc.CopyOtherFiles,
		Bitrate:                   strings.TrimSpace(string(doc.Bitrate)),
		FromExtensions:            from,
		ToExtension:               to,
		CacheFile:                 resolvePath(baseDir, cmp.Or(doc.CacheFile, domain.DefaultCachePath())),
		CaseInsensitiveExtensions: doc.CaseInsensitiveExtensions,
		Tool:                      buildTool(doc),
	}

	if err := validateDirectories(cfg.InputDir, cfg.OutputDir); err != nil {
		return nil, err
	}
	if err := validateTool(cfg.Tool); err != nil {
		return nil, err
	}

	if slices.Contains(cfg.FromExtensions, cfg.ToExtension) {
		l.Logger.Warn(fmt.Sprintf("from_extensions lists %q; those files are re-encoded into the same format", cfg.ToExtension))
	}

	// Wiping output_dir would unlink a held lock and let a second run in.
	if cfg.Overwrite && contains(cfg.OutputDir, cfg.CacheFile) {
		return nil, zerr.With(zerr.With(domain.ErrCacheInWipedOutput, "cache_file", cfg.CacheFile), "output_dir", cfg.OutputDir)
	}

	return cfg, nil
}

func requireFields(doc *Document) error {
	missing := func(field string) error {
		return zerr.With(domain.ErrMissingField, "field", field)
	}

	switch {
	case strings.TrimSpace(doc.InputDir) == "":
		return missing("input_dir")
	case strings.TrimSpace(doc.OutputDir) == "":
		return missing("output_dir")
	case strings.TrimSpace(string(doc.Bitrate)) == "":
		return missing("bitrate")
	case len(doc.FromExtensions) == 0:
		return missing("from_extensions")
	case strings.TrimSpace(doc.ToExtension) == "":
		return missing("to_extension")
	}
	return nil
}

func normalizeExtensions(exts []string) ([]string, error) {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		n, err := normalizeExtension(ext)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// normalizeExtension strips surrounding spaces and a single leading dot.
func normalizeExtension(ext string) (string, error) {
	n := strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if n == "" || strings.ContainsAny(n, `/\`) {
		return "", zerr.With(domain.ErrInvalidExtension, "extension", ext)
	}
	return n, nil
}

func buildTool(doc *Document) domain.Tool {
	tool := domain.Tool{
		Name:         cmp.Or(strings.TrimSpace(doc.Tool), domain.DefaultToolName),
		ConvertArgs:  slices.Clone(domain.DefaultConvertArgs),
		ValidateArgs: slices.Clone(domain.DefaultValidateArgs),
	}
	if len(doc.ConvertArgs) > 0 {
		tool.ConvertArgs = doc.ConvertArgs
	}
	if len(doc.ValidateArgs) > 0 {
		tool.ValidateArgs = doc.ValidateArgs
	}
	return tool
}

func validateTool(tool domain.Tool) error {
	for _, p := range []string{domain.PlaceholderInput, domain.PlaceholderOutput} {
		if !hasPlaceholder(tool.ConvertArgs, p) {
			return zerr.With(zerr.With(domain.ErrInvalidToolArgs, "field", "convert_args"), "placeholder", p)
		}
	}
	if !hasPlaceholder(tool.ValidateArgs, domain.PlaceholderInput) {
		return zerr.With(zerr.With(domain.ErrInvalidToolArgs, "field", "validate_args"), "placeholder", domain.PlaceholderInput)
	}
	return nil
}

func hasPlaceholder(args []string, placeholder string) bool {
	return slices.ContainsFunc(args, func(arg string) bool {
		return strings.Contains(arg, placeholder)
	})
}

func validateDirectories(input, output string) error {
	info, err := os.Stat(input)
	if err != nil {
		if os.IsNotExist(err) {
			return zerr.With(domain.ErrInputNotFound, "input_dir", input)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrInputNotFound.Error()), "input_dir", input)
	}
	if !info.IsDir() {
		return zerr.With(domain.ErrInputNotDirectory, "input_dir", input)
	}

	if input == output {
		return zerr.With(domain.ErrSameDirectories, "input_dir", input)
	}
	if contains(input, output) || contains(output, input) {
		return zerr.With(zerr.With(domain.ErrNestedDirectories, "input_dir", input), "output_dir", output)
	}
	return nil
}

// contains reports whether path lies strictly below dir. Both must be clean and absolute.
func contains(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func resolvePath(baseDir, p string) string {
	p = strings.TrimSpace(p)
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	return filepath.Clean(p)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is supplied by the operator
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
