// Package config holds the command-line configuration and its file and
// environment overlay.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Amr-9/VanityHunter/internal/ui"
	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/generator/cpu"
	"github.com/Amr-9/VanityHunter/pkg/generator/gpu"
	"github.com/Amr-9/VanityHunter/pkg/match"
)

// EnvPrefix prefixes environment overrides, e.g. VANITY_CPU_THREADS.
const EnvPrefix = "VANITY"

// DefaultLiskLength is the address length searched when lisk gets no pattern.
const DefaultLiskLength = "14"

// Errors
var (
	ErrNoPattern      = errors.New("must specify a pattern")
	ErrInvalidLength  = fmt.Errorf("address length must be a number between 1 and %d", match.MaxDecimalLen)
	ErrInvalidThreads = errors.New("thread counts must not be negative")
	ErrInvalidSetting = errors.New("invalid setting")
)

// Config holds the application configuration
type Config struct {
	Network    string
	Pattern    string
	CPUThreads int
	Limit      uint64

	GPU              bool
	GPUPlatform      int
	GPUDevice        int
	GPUThreads       int
	GPULocalWorkSize int
	GPUKernelDir     string
	GPUEmulate       bool
	ListGPUs         bool

	NoProgress       bool
	ProgressInterval time.Duration
	Output           string
	LogLevel         string
	ConfigFile       string

	network generator.Network
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Network:          "algorand",
		CPUThreads:       cpu.DefaultWorkers(),
		Limit:            1,
		GPUThreads:       gpu.DefaultThreads,
		ProgressInterval: ui.DefaultProgressInterval,
		LogLevel:         "info",
	}
}

// BindFlags registers every option on fs, using c's values as defaults.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Network, "network", "n", c.Network, "Address scheme: algorand, lisk, solana, aptos, sui, ethereum, bitcoin")
	fs.IntVarP(&c.CPUThreads, "cpu-threads", "t", c.CPUThreads, "Number of CPU worker goroutines")
	fs.Uint64VarP(&c.Limit, "limit", "l", c.Limit, "Stop after this many matches (0 = unbounded)")

	fs.BoolVarP(&c.GPU, "gpu", "g", c.GPU, "Search on an OpenCL device")
	fs.IntVar(&c.GPUPlatform, "gpu-platform", c.GPUPlatform, "OpenCL platform index")
	fs.IntVar(&c.GPUDevice, "gpu-device", c.GPUDevice, "OpenCL device index")
	fs.IntVar(&c.GPUThreads, "gpu-threads", c.GPUThreads, "Keys per kernel launch")
	fs.IntVar(&c.GPULocalWorkSize, "gpu-local-work-size", c.GPULocalWorkSize, "OpenCL local work size (0 = driver default)")
	fs.StringVar(&c.GPUKernelDir, "gpu-kernel-dir", c.GPUKernelDir, "Directory holding the OpenCL kernel sources")
	fs.BoolVar(&c.GPUEmulate, "gpu-emulate", c.GPUEmulate, "Run the GPU batch protocol on the host")
	fs.BoolVar(&c.ListGPUs, "list-gpus", c.ListGPUs, "List OpenCL devices and exit")

	fs.BoolVar(&c.NoProgress, "no-progress", c.NoProgress, "Do not print the progress line")
	fs.DurationVar(&c.ProgressInterval, "progress-interval", c.ProgressInterval, "Progress refresh period")
	fs.StringVarP(&c.Output, "output", "o", c.Output, "Also append matches to this file")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Optional config file (yaml, toml or json)")
}

// Load overlays the config file and VANITY_* environment onto flags that
// were not set on the command line.
func (c *Config) Load(fs *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	if c.ConfigFile != "" {
		v.SetConfigFile(c.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	d := decoder{v: v}
	c.Network = v.GetString("network")
	c.CPUThreads = d.getInt("cpu-threads")
	c.Limit = d.getUint64("limit")
	c.GPU = d.getBool("gpu")
	c.GPUPlatform = d.getInt("gpu-platform")
	c.GPUDevice = d.getInt("gpu-device")
	c.GPUThreads = d.getInt("gpu-threads")
	c.GPULocalWorkSize = d.getInt("gpu-local-work-size")
	c.GPUKernelDir = v.GetString("gpu-kernel-dir")
	c.GPUEmulate = d.getBool("gpu-emulate")
	c.NoProgress = d.getBool("no-progress")
	c.ProgressInterval = d.getDuration("progress-interval")
	c.Output = v.GetString("output")
	c.LogLevel = v.GetString("log-level")
	if d.err != nil {
		return d.err
	}
	if c.Pattern == "" {
		c.Pattern = v.GetString("pattern")
	}
	return nil
}

// Validate validates the configuration. A lisk search without a pattern
// falls back to DefaultLiskLength.
func (c *Config) Validate() error {
	network, err := generator.ParseNetwork(c.Network)
	if err != nil {
		return err
	}
	c.network = network

	if c.Pattern == "" {
		if network != generator.Lisk {
			return ErrNoPattern
		}
		c.Pattern = DefaultLiskLength
	}
	if network == generator.Lisk {
		n, err := strconv.Atoi(c.Pattern)
		if err != nil || n < 1 || n > match.MaxDecimalLen {
			return fmt.Errorf("%w: %q", ErrInvalidLength, c.Pattern)
		}
	}

	if c.CPUThreads < 0 || c.GPUThreads < 0 || c.GPULocalWorkSize < 0 {
		return ErrInvalidThreads
	}
	if c.GPU && c.GPUThreads == 0 {
		c.GPUThreads = gpu.DefaultThreads
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = ui.DefaultProgressInterval
	}
	return nil
}

// NetworkID returns the parsed network. It is valid after Validate.
func (c *Config) NetworkID() generator.Network {
	return c.network
}

// decoder reads typed settings and records the first value that does not
// parse.
type decoder struct {
	v   *viper.Viper
	err error
}

func (d *decoder) fail(key string, err error) {
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("%w %s=%v: %v", ErrInvalidSetting, key, d.v.Get(key), err)
	}
}

func (d *decoder) getInt(key string) int {
	n, err := cast.ToIntE(d.v.Get(key))
	d.fail(key, err)
	return n
}

func (d *decoder) getUint64(key string) uint64 {
	n, err := cast.ToUint64E(d.v.Get(key))
	d.fail(key, err)
	return n
}

func (d *decoder) getBool(key string) bool {
	b, err := cast.ToBoolE(d.v.Get(key))
	d.fail(key, err)
	return b
}

func (d *decoder) getDuration(key string) time.Duration {
	t, err := cast.ToDurationE(d.v.Get(key))
	d.fail(key, err)
	return t
}
