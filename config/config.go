package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

type (
	APP struct {
		Name       string
		Host       string
		Port       string
		Env        string
		JWTSecret  string
		BcryptCost int
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	Storage struct {
		UploadDir    string
		PublicPrefix string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App     APP
		DB      DB
		Storage Storage
		MQ      MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

// Load reads the whole configuration from the environment. Every value the
// server needs to boot has a working local/dev default, so a bare `go run`
// starts against localhost.
func Load() Config {
	app := APP{
		Name:       getEnv("SERVICE_NAME", "instaserver"),
		Host:       getEnv("SERVICE_HOST", "0.0.0.0"),
		Port:       getEnv("SERVICE_PORT", "3001"),
		Env:        getEnv("SERVICE_ENV", "dev"),
		JWTSecret:  getEnv("SERVICE_JWT_SECRET", "supersecret"),
		BcryptCost: getEnvInt("SERVICE_BCRYPT_COST", 10),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", "insta"),
		Password: getEnv("POSTGRES_PASSWORD", "insta"),
		Name:     getEnv("POSTGRES_DB", "instaserver"),
		Host:     getEnv("POSTGRES_HOST", "localhost"),
		Port:     getEnv("POSTGRES_PORT", "5432"),
	}
	storage := Storage{
		UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
		PublicPrefix: getEnv("UPLOAD_PUBLIC_PREFIX", "/uploads"),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", "5672"),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "instaserver.events"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "instaserver.audit"),
	}

	return Config{
		App:     app,
		DB:      db,
		Storage: storage,
		MQ:      mq,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

// MQEnabled reports whether event publishing is configured. The server runs
// fine without a broker; domain events are simply not emitted.
func (c Config) MQEnabled() bool { return c.MQ.Host != "" }
