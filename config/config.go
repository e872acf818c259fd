package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/smartlib/circulation-service/pkg/kafka"
	"github.com/smartlib/circulation-service/pkg/logger"
	"github.com/smartlib/circulation-service/pkg/mailer"
	"github.com/smartlib/circulation-service/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration
}

// BootstrapAdmin seeds the first account on an empty admins table.
type BootstrapAdmin struct {
	Username string `envconfig:"ADMIN_BOOTSTRAP_USERNAME"`
	Password string `json:"-" envconfig:"ADMIN_BOOTSTRAP_PASSWORD"`
	Email    string `envconfig:"ADMIN_BOOTSTRAP_EMAIL"`
}

type Config struct {
	Server    HTTPServer `yaml:"server"`
	Database  postgres.Config
	Kafka     kafka.Config
	SMTP      mailer.Config
	Bootstrap BootstrapAdmin
	Log       logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return &cfg
}

func printConfig(cfg Config) {
	c := cfg
	c.Database.Password = "***"
	c.SMTP.Password = "***"
	jscfg, _ := json.MarshalIndent(c, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
