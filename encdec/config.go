package encdec

import (
	"os"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/ttcn-runtime/errors"
)

// Setting assigns one behavior to one error type.
type Setting struct {
	Type     ErrorType
	Behavior Behavior
}

// Config is the on-disk form of the error behavior table.
//
//	errorBehavior:
//	  ALL: WARNING
//	  TAG: IGNORE
type Config struct {
	ErrorBehavior map[string]string `yaml:"errorBehavior"`
}

// ParseSettings parses a comma separated list of TYPE:BEHAVIOR pairs,
// e.g. "ET_ALL:EB_WARNING, ET_TAG:EB_IGNORE". Every malformed entry is
// reported, not just the first.
func ParseSettings(s string) ([]Setting, error) {
	var (
		out  []Setting
		errs error
	)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, behavior, ok := strings.Cut(item, ":")
		if !ok {
			errs = multierr.Append(errs, errors.InvalidInput(errors.PhaseConfig,
				"error behavior setting "+item+" is not of the form TYPE:BEHAVIOR"))
			continue
		}
		st, err := parseSetting(name, behavior)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, st)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func parseSetting(name, behavior string) (Setting, error) {
	t, terr := ParseErrorType(name)
	b, berr := ParseBehavior(behavior)
	if err := multierr.Combine(terr, berr); err != nil {
		return Setting{}, err
	}
	return Setting{Type: t, Behavior: b}, nil
}

// Settings converts the config into settings ordered so that an ALL entry
// is applied before the individual types it would otherwise override.
// Two keys naming the same type (TAG and ET_TAG) are rejected.
func (c *Config) Settings() ([]Setting, error) {
	names := make([]string, 0, len(c.ErrorBehavior))
	for name := range c.ErrorBehavior {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		out  []Setting
		errs error
		seen = make(map[ErrorType]string, len(names))
	)
	for _, name := range names {
		st, err := parseSetting(name, c.ErrorBehavior[name])
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if prev, dup := seen[st.Type]; dup {
			errs = multierr.Append(errs, errors.InvalidInput(errors.PhaseConfig,
				"error behavior keys "+prev+" and "+name+" both name "+st.Type.String()))
			continue
		}
		seen[st.Type] = name
		out = append(out, st)
	}
	if errs != nil {
		return nil, errs
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

// LoadConfig reads a YAML error behavior file.
func LoadConfig(path string) ([]Setting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read "+path)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse "+path)
	}
	return cfg.Settings()
}

// Apply installs settings in order.
func (r *Registry) Apply(settings []Setting) error {
	var errs error
	for _, s := range settings {
		errs = multierr.Append(errs, r.SetBehavior(s.Type, s.Behavior))
	}
	return errs
}
