package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type AuctionConfig struct {
	Env           string `yaml:"env"`
	HTTPServer    `yaml:"http_server"`
	AuctionDB     `yaml:"auction_db"`
	LogConfig     `yaml:"log_config"`
	PaymentRail   `yaml:"payment-rail"`
	KafkaService  `yaml:"kafka-service"`
	MetricsServer `yaml:"metrics_server"`
	Platform      `yaml:"platform"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AuctionDB struct {
	Dsn string `yaml:"dsn"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type PaymentRail struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type MetricsServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Platform struct {
	AuthorityID    string `yaml:"authority_id"`
	FeeCollectorID string `yaml:"fee_collector_id"`
}

func MustLoad() *AuctionConfig {

	// Processing env config variable and file
	configPath := os.Getenv("AUCTION_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("AUCTION_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg AuctionConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
