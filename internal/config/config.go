package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "TIMESHEET_"

type SourceKind string

const (
	ApiSource      SourceKind = "api"
	PostgresSource SourceKind = "postgres"
)

type Application struct {
	Host     string   `koanf:"host"`
	Port     int      `koanf:"port"`
	Locale   string   `koanf:"locale"`
	Timezone string   `koanf:"timezone"`
	Source   Source   `koanf:"source"`
	Tracker  Tracker  `koanf:"tracker"`
	Cache    Cache    `koanf:"cache"`
	Database Database `koanf:"db"`
}

// Source selects where time entries and the user directory are read from.
type Source struct {
	Kind SourceKind `koanf:"kind"`
}

// Tracker configures the time tracker REST API used by the api source.
type Tracker struct {
	BaseUrl     string `koanf:"baseurl"`
	Email       string `koanf:"email"`
	Password    string `koanf:"password"`
	SessionFile string `koanf:"sessionfile"`
	TimeoutSec  int    `koanf:"timeoutsec"`
}

type Cache struct {
	Size int `koanf:"size"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Defaults() Application {
	return Application{
		Host:     "",
		Port:     8181,
		Locale:   "en-US",
		Timezone: "Local",
		Source: Source{
			Kind: ApiSource,
		},
		Tracker: Tracker{
			BaseUrl:     "http://localhost:3000",
			SessionFile: "storage/session.json",
			TimeoutSec:  15,
		},
		Cache: Cache{
			Size: 64,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "timesheet",
			Pass:   "",
			Name:   "timesheet",
			Schema: "public",
		},
	}
}

// Load reads defaults, then the YAML file at path if present, then TIMESHEET_*
// environment variables, each layer overriding the previous one.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
