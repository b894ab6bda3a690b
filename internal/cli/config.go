package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gedgraph/pkg/errors"
	"github.com/matzehuels/gedgraph/pkg/selection"
)

// Config holds defaults read from config.toml (or config.yaml). Every field
// is optional and a flag given on the command line always wins.
//
//	format        = "dot2"
//	include       = "descendants"
//	iditem        = "refn"
//	dates         = true
//	reverse       = false
//	thickness     = 2
//	cache         = true
//	cache_backend = "badger"
type Config struct {
	Format       string `toml:"format" yaml:"format" validate:"omitempty,oneof=graphml dot dot2 json svg"`
	Include      string `toml:"include" yaml:"include" validate:"omitempty,include"`
	IDItem       string `toml:"iditem" yaml:"iditem" validate:"omitempty,excludesall= @"`
	Dates        *bool  `toml:"dates" yaml:"dates"`
	Reverse      *bool  `toml:"reverse" yaml:"reverse"`
	Thickness    int    `toml:"thickness" yaml:"thickness" validate:"gte=0"`
	Cache        *bool  `toml:"cache" yaml:"cache"`
	CacheBackend string `toml:"cache_backend" yaml:"cache_backend" validate:"omitempty,oneof=file badger"`
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their config key
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		return name
	})
	// include accepts whatever --include accepts
	_ = v.RegisterValidation("include", func(fl validator.FieldLevel) bool {
		_, err := selection.ParseMode(fl.Field().String())
		return err == nil
	})
	return v
}

// configKeys lists the keys Config understands, for unknown-key warnings on
// YAML files. TOML reports undecoded keys itself.
func configKeys() []string {
	t := reflect.TypeOf(Config{})
	keys := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		keys = append(keys, t.Field(i).Tag.Get("yaml"))
	}
	return keys
}

// configCandidates are the default config file names, in lookup order.
var configCandidates = []string{"config.toml", "config.yaml", "config.yml"}

// defaultConfigPath returns the first existing default config file, or the
// TOML path when there is none.
func defaultConfigPath() string {
	path, err := configPath()
	if err != nil {
		return ""
	}
	dir := filepath.Dir(path)
	for _, name := range configCandidates {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}

// loadConfig reads the config file at path. A missing file is not an error
// unless the path was given explicitly. Keys the tool does not know are
// logged and ignored. Files ending in .yaml or .yml are read as YAML,
// anything else as TOML.
func loadConfig(path string, explicit bool, logger *log.Logger) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeConfiguration, err, "read config")
	}

	var unknown []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		unknown, err = decodeYAML(data, &cfg)
	default:
		unknown, err = decodeTOML(data, &cfg)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeConfiguration, err, "parse config %s", path)
	}
	if len(unknown) > 0 {
		logger.Warn("ignoring unknown config keys", "path", path, "keys", strings.Join(unknown, ", "))
	}

	if err := configValidator.Struct(cfg); err != nil {
		return cfg, errors.New(errors.ErrCodeConfiguration, "config %s: %s", path, describeValidation(err))
	}

	logger.Debug("loaded config", "path", path)
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) ([]string, error) {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, err
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	return unknown, nil
}

func decodeYAML(data []byte, cfg *Config) ([]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	known := configKeys()
	var unknown []string
	for k := range raw {
		if !slices.Contains(known, k) {
			unknown = append(unknown, k)
		}
	}
	slices.Sort(unknown)
	return unknown, nil
}

// describeValidation turns validator errors into one readable line.
func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs[i] = fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
		case "gte":
			msgs[i] = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		case "excludesall":
			msgs[i] = fmt.Sprintf("%s must not contain spaces or '@'", fe.Field())
		case "include":
			msgs[i] = fmt.Sprintf("%s must be one of: all, ancestors, descendants, branch", fe.Field())
		default:
			msgs[i] = fmt.Sprintf("%s is invalid", fe.Field())
		}
	}
	return strings.Join(msgs, "; ")
}
