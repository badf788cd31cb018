// Package config loads settings from an optional config file, the
// VBOXCTL_* environment and command line flags.
package config

import (
	"os"
	"strings"
	"time"

	"vboxctl/internal/constants"
	"vboxctl/internal/helpers"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Clients struct {
	Ssh string
	Rdp string
	Vnc string
}

type Wait struct {
	Attempts int
	Interval time.Duration
}

type Events struct {
	NatsURL string
	Subject string
}

type Telemetry struct {
	ApiKey string
}

type Config struct {
	VBoxManage string

	// Host runs VBoxManage over ssh when set, as user@host:port.
	Host          string
	SshUser       string
	SshKey        string
	SshPassword   string
	SshKnownHosts string

	LogLevel string
	LogJSON  bool

	Clients   Clients
	Wait      Wait
	Events    Events
	Telemetry Telemetry

	// File is the config file that was read, empty when none was.
	File string
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("vboxmanage", constants.VBoxManageExecutable)
	v.SetDefault("clients.ssh", constants.DefaultSshClient)
	v.SetDefault("clients.rdp", constants.DefaultRdpClient)
	v.SetDefault("clients.vnc", constants.DefaultVncClient)
	v.SetDefault("wait.attempts", constants.DEFAULT_WAIT_ATTEMPTS)
	v.SetDefault("wait.interval", constants.DEFAULT_WAIT_INTERVAL)
	v.SetDefault("events.subject", constants.DefaultEventsSubject)
}

// Load reads cfgFile, or the default config file when it exists, on top of
// the defaults and environment. A missing default file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return nil, errors.Wrapf(err, "expanding %s", cfgFile)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	} else {
		if dir, err := homedir.Expand(constants.DefaultConfigDir); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "reading config")
			}
		}
	}

	cfg := &Config{
		VBoxManage:    v.GetString("vboxmanage"),
		Host:          v.GetString("host"),
		SshUser:       v.GetString("ssh_user"),
		SshPassword:   v.GetString("ssh_password"),
		SshKnownHosts: v.GetString("ssh_known_hosts"),
		LogLevel:      helpers.FirstNonEmpty(v.GetString("log_level"), os.Getenv("LOG_LEVEL"), "warn"),
		LogJSON:       v.GetBool("log_json"),
		Clients: Clients{
			Ssh: v.GetString("clients.ssh"),
			Rdp: v.GetString("clients.rdp"),
			Vnc: v.GetString("clients.vnc"),
		},
		Wait: Wait{
			Attempts: v.GetInt("wait.attempts"),
			Interval: helpers.ParseDurationOr(v.GetString("wait.interval"), 2*time.Second),
		},
		Events: Events{
			NatsURL: v.GetString("events.nats_url"),
			Subject: v.GetString("events.subject"),
		},
		Telemetry: Telemetry{
			ApiKey: v.GetString("telemetry.api_key"),
		},
		File: v.ConfigFileUsed(),
	}

	var err error
	if cfg.SshKey, err = expand(v.GetString("ssh_key")); err != nil {
		return nil, err
	}
	if cfg.SshKnownHosts, err = expand(cfg.SshKnownHosts); err != nil {
		return nil, err
	}
	if cfg.VBoxManage, err = expand(cfg.VBoxManage); err != nil {
		return nil, err
	}

	if cfg.Wait.Attempts < 1 {
		cfg.Wait.Attempts = constants.DEFAULT_WAIT_ATTEMPTS
	}

	return cfg, nil
}

func expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	out, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(err, "expanding %s", path)
	}
	return out, nil
}

// IsRemote reports whether VBoxManage runs on another host.
func (c *Config) IsRemote() bool {
	return c.Host != ""
}
