package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "CAKESHOP_CONFIG_FILE"

type catalog struct {
	ListURL       string `mapstructure:"list_url"`
	DetailURL     string `mapstructure:"detail_url"`
	Limit         int    `mapstructure:"limit"`
	PageSize      int    `mapstructure:"page_size"`
	PageIncrement int    `mapstructure:"page_increment"`
}

type testimonials struct {
	UsersURL       string        `mapstructure:"users_url"`
	QuotesURL      string        `mapstructure:"quotes_url"`
	RotateInterval time.Duration `mapstructure:"rotate_interval"`
}

type search struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

type topics struct {
	ClientEvents         string `mapstructure:"client_events"`
	PopularityGroupTable string `mapstructure:"popularity_group_table"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
}

type Config struct {
	LogLevel       slog.Level   `mapstructure:"log_level"`
	HTTPServerAddr string       `mapstructure:"http_server_addr"`
	Catalog        catalog      `mapstructure:"catalog"`
	Testimonials   testimonials `mapstructure:"testimonials"`
	Search         search       `mapstructure:"search"`
	Broker         broker       `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Catalog:
	ListURL=%q
	DetailURL=%q
	Limit=%d
	PageSize=%d
	PageIncrement=%d

	Testimonials:
	UsersURL=%q
	QuotesURL=%q
	RotateInterval=%s

	Search:
	Debounce=%s

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		ClientEvents=%q
		PopularityGroupTable=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Catalog.ListURL,
		c.Catalog.DetailURL,
		c.Catalog.Limit,
		c.Catalog.PageSize,
		c.Catalog.PageIncrement,
		c.Testimonials.UsersURL,
		c.Testimonials.QuotesURL,
		c.Testimonials.RotateInterval,
		c.Search.Debounce,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.ClientEvents,
		c.Broker.Topics.PopularityGroupTable,
	)
}
