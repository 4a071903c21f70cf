package dash

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/midbel/titledash/fetch"
)

const (
	ModeSplit    = "split"
	ModeCombined = "combined"
)

type Config struct {
	Backend struct {
		URL   string  `mapstructure:"url"`
		Mode  string  `mapstructure:"mode"`
		Rate  float64 `mapstructure:"rate"`
		Burst int     `mapstructure:"burst"`
	} `mapstructure:"backend"`
	Source struct {
		Workbook string `mapstructure:"workbook"`
	} `mapstructure:"source"`
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	IMDb struct {
		Year int `mapstructure:"year"`
	} `mapstructure:"imdb"`
	Log struct {
		JSON  bool   `mapstructure:"json"`
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend.url", "http://localhost:5000")
	v.SetDefault("backend.mode", ModeSplit)
	v.SetDefault("backend.rate", 0)
	v.SetDefault("backend.burst", 4)

	v.SetDefault("source.workbook", "")

	v.SetDefault("server.addr", "localhost:8080")

	// 0 selects the latest year returned by the backend
	v.SetDefault("imdb.year", 0)

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")
}

// NewViper prepares a viper instance reading the environment (TITLEDASH_
// prefix) and the configuration file, either the given one or titledash.* in
// the working directory or in the user config directory.
func NewViper(file string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("TITLEDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("titledash")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "titledash"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notfound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notfound) {
			return nil, errors.Wrap(err, "read configuration")
		}
	}
	return v, nil
}

func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "unmarshal configuration")
	}
	return cfg, cfg.Validate()
}

func Default() Config {
	v := viper.New()
	SetDefaults(v)
	cfg, _ := Load(v)
	return cfg
}

func (c Config) Validate() error {
	switch c.Backend.Mode {
	case ModeSplit, ModeCombined:
	default:
		return errors.WithHint(errors.Newf("backend.mode: unknown mode %q", c.Backend.Mode), "use split or combined")
	}
	if c.Source.Workbook == "" && c.Backend.URL == "" {
		return errors.WithHint(errors.New("no data source configured"), "set backend.url or source.workbook")
	}
	if c.Backend.Rate < 0 {
		return errors.Newf("backend.rate: negative rate %.2f", c.Backend.Rate)
	}
	if c.IMDb.Year < 0 {
		return errors.Newf("imdb.year: invalid year %d", c.IMDb.Year)
	}
	return nil
}

// DataSource gives the data source selected by the configuration: the workbook
// when one is set, the backend otherwise.
func (c Config) DataSource() (DataSource, error) {
	if c.Source.Workbook != "" {
		return WorkbookSource{Path: c.Source.Workbook}, nil
	}
	client, err := fetch.NewClient(c.Backend.URL, fetch.WithRate(c.Backend.Rate, c.Backend.Burst))
	if err != nil {
		return nil, err
	}
	return NewHttpSource(client, c.Backend.Mode), nil
}
