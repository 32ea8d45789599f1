package datadir

import (
	"os"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/titellus/geonetwork-pnf/lib/handler"
)

// SourceType identifies a configuration source. The declaration order is the
// lookup precedence.
type SourceType int

const (
	RuntimeProperty SourceType = iota
	HostContextParameter
	HandlerConfigParameter
	ProcessEnvironmentVariable
)

func (s SourceType) String() string {
	switch s {
	case RuntimeProperty:
		return "runtime property"
	case HostContextParameter:
		return "host context parameter"
	case HandlerConfigParameter:
		return "handler configuration parameter"
	case ProcessEnvironmentVariable:
		return "environment variable"
	default:
		return "unknown source"
	}
}

// Source answers a single name lookup. An unavailable source reports absent.
type Source interface {
	Type() SourceType
	Lookup(name string) (string, bool)
}

// Properties are the process-local runtime properties, set with -D on the command line.
type Properties map[string]string

func (Properties) Type() SourceType { return RuntimeProperty }

func (p Properties) Lookup(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// ParseProperties turns "key=value" assignments into Properties. An assignment
// without "=" sets the key to the empty string.
func ParseProperties(assignments []string) (Properties, error) {
	props := make(Properties, len(assignments))
	for _, a := range assignments {
		key, value, _ := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, oops.Errorf("invalid property assignment %q", a)
		}
		props[key] = value
	}
	return props, nil
}

// ContextParams are the init parameters of the hosting container. A nil
// ContextParams means no host context is present.
type ContextParams map[string]string

func (ContextParams) Type() SourceType { return HostContextParameter }

func (c ContextParams) Lookup(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c[name]
	return v, ok
}

// LoadContextParams reads host context parameters from a flat YAML mapping.
// A missing file is not an error and yields nil (no host context).
func LoadContextParams(path string) (ContextParams, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, oops.Wrapf(err, "reading context parameters %s", path)
	}
	params := ContextParams{}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, oops.Wrapf(err, "parsing context parameters %s", path)
	}
	return params, nil
}

// handlerSource exposes handler configuration parameters as a Source.
type handlerSource struct {
	params *handler.Params
}

// HandlerSource adapts handler parameters to a Source; nil params are absent.
func HandlerSource(params *handler.Params) Source {
	return handlerSource{params: params}
}

func (handlerSource) Type() SourceType { return HandlerConfigParameter }

func (h handlerSource) Lookup(name string) (string, bool) {
	if h.params == nil {
		return "", false
	}
	return h.params.Value(name)
}

// EnvSource queries environment variables. Dots are not allowed in POSIX
// variable names, so "geonetwork.dir" is looked up as "geonetwork_dir" and
// then as "GEONETWORK_DIR".
type EnvSource struct {
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

func (EnvSource) Type() SourceType { return ProcessEnvironmentVariable }

func (e EnvSource) Lookup(name string) (string, bool) {
	lookup := e.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	envName := EnvName(name)
	if v, ok := lookup(envName); ok && v != "" {
		return v, true
	}
	if upper := strings.ToUpper(envName); upper != envName {
		return lookup(upper)
	}
	return "", false
}

// EnvName maps a configuration key to its environment variable name.
func EnvName(key string) string {
	return strings.ReplaceAll(key, ".", "_")
}
