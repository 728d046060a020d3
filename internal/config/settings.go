package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override settings,
// e.g. THEIA_BUILDER_MODULE_DIR or THEIA_BUILDER_ENDPOINT.
const EnvPrefix = "THEIA_BUILDER"

// Settings are tool options resolved from defaults, environment and flags.
type Settings struct {
	// ModuleDir overrides the builder root; empty means the app dir's parent.
	ModuleDir string

	// Endpoint is the container engine URI; empty means the Docker environment default.
	Endpoint string

	// Latest additionally tags the image as latest.
	Latest bool

	// Cache allows the engine to reuse cached layers.
	Cache bool

	// Pull always attempts to pull a newer base image.
	Pull bool

	TLSCACert string
	TLSCert   string
	TLSKey    string

	Verbose bool
}

// LoadSettings resolves settings. Precedence: flags > environment > defaults.
// The negated flags --no-latest and --no-cache win over their positive form.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("module-dir", "")
	v.SetDefault("endpoint", "")
	v.SetDefault("latest", true)
	v.SetDefault("cache", true)
	v.SetDefault("pull", false)
	v.SetDefault("tlscacert", "")
	v.SetDefault("tlscert", "")
	v.SetDefault("tlskey", "")
	v.SetDefault("verbose", false)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	s := &Settings{
		ModuleDir: v.GetString("module-dir"),
		Endpoint:  v.GetString("endpoint"),
		Latest:    v.GetBool("latest"),
		Cache:     v.GetBool("cache"),
		Pull:      v.GetBool("pull"),
		TLSCACert: v.GetString("tlscacert"),
		TLSCert:   v.GetString("tlscert"),
		TLSKey:    v.GetString("tlskey"),
		Verbose:   v.GetBool("verbose"),
	}

	if changedTrue(flags, "no-latest") {
		s.Latest = false
	}
	if changedTrue(flags, "no-cache") {
		s.Cache = false
	}

	return s, nil
}

func changedTrue(flags *pflag.FlagSet, name string) bool {
	if flags == nil {
		return false
	}
	f := flags.Lookup(name)
	return f != nil && f.Changed && f.Value.String() == "true"
}
