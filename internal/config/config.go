package config

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Kafka    KafkaConfig
	Minio    MinioConfig
}

var (
	configInstance *Config
	once           sync.Once
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
}

type JWTConfig struct {
	Secret         string
	ExpirationTime time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether the Kafka archive is configured
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether the media store is configured
func (m MinioConfig) Enabled() bool {
	return m.Endpoint != ""
}

func LoadConfig() (*Config, error) {
	once.Do(func() {
		viper.SetDefault("CHAT_HOST", "")
		viper.SetDefault("CHAT_PORT", "8080")
		viper.SetDefault("CHAT_READ_TIMEOUT", 30*time.Second)
		viper.SetDefault("CHAT_WRITE_TIMEOUT", 30*time.Second)
		viper.SetDefault("CHAT_IDLE_TIMEOUT", 60*time.Second)
		viper.SetDefault("CHAT_JWT_SECRET", "secret")
		viper.SetDefault("CHAT_JWT_EXPIRE", "24h")
		viper.SetDefault("MYSQL_USER", "root")
		viper.SetDefault("MYSQL_PASSWORD", "password")
		viper.SetDefault("MYSQL_HOST", "localhost")
		viper.SetDefault("MYSQL_PORT", "3306")
		viper.SetDefault("MYSQL_DB", "instacord")
		viper.SetDefault("REDIS_HOST", "localhost")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("REDIS_MAX_RETRIES", 3)
		viper.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
		viper.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
		viper.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)
		viper.SetDefault("REDIS_POOL_SIZE", 100)
		viper.SetDefault("REDIS_MIN_IDLE_CONNS", 10)
		viper.SetDefault("KAFKA_BROKERS", "")
		viper.SetDefault("KAFKA_TOPIC", "chat-messages")
		viper.SetDefault("MINIO_ENDPOINT", "")
		viper.SetDefault("MINIO_ACCESS_KEY", "")
		viper.SetDefault("MINIO_SECRET_KEY", "")
		viper.SetDefault("MINIO_BUCKET", "chat-media")
		viper.SetDefault("MINIO_USE_SSL", false)
		viper.AutomaticEnv()

		var brokers []string
		if raw := viper.GetString("KAFKA_BROKERS"); raw != "" {
			for _, b := range strings.Split(raw, ",") {
				brokers = append(brokers, strings.TrimSpace(b))
			}
		}

		configInstance = &Config{
			Server: ServerConfig{
				Host:         viper.GetString("CHAT_HOST"),
				Port:         viper.GetString("CHAT_PORT"),
				ReadTimeout:  viper.GetDuration("CHAT_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("CHAT_WRITE_TIMEOUT"),
				IdleTimeout:  viper.GetDuration("CHAT_IDLE_TIMEOUT"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("MYSQL_HOST"),
				Port:     viper.GetString("MYSQL_PORT"),
				User:     viper.GetString("MYSQL_USER"),
				Password: viper.GetString("MYSQL_PASSWORD"),
				DBName:   viper.GetString("MYSQL_DB"),
			},
			Redis: RedisConfig{
				Host:         viper.GetString("REDIS_HOST"),
				Port:         viper.GetString("REDIS_PORT"),
				Password:     viper.GetString("REDIS_PASSWORD"),
				DB:           viper.GetInt("REDIS_DB"),
				MaxRetries:   viper.GetInt("REDIS_MAX_RETRIES"),
				DialTimeout:  viper.GetDuration("REDIS_DIAL_TIMEOUT"),
				ReadTimeout:  viper.GetDuration("REDIS_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("REDIS_WRITE_TIMEOUT"),
				PoolSize:     viper.GetInt("REDIS_POOL_SIZE"),
				MinIdleConns: viper.GetInt("REDIS_MIN_IDLE_CONNS"),
			},
			JWT: JWTConfig{
				Secret:         viper.GetString("CHAT_JWT_SECRET"),
				ExpirationTime: viper.GetDuration("CHAT_JWT_EXPIRE"),
			},
			Kafka: KafkaConfig{
				Brokers: brokers,
				Topic:   viper.GetString("KAFKA_TOPIC"),
			},
			Minio: MinioConfig{
				Endpoint:  viper.GetString("MINIO_ENDPOINT"),
				AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
				SecretKey: viper.GetString("MINIO_SECRET_KEY"),
				Bucket:    viper.GetString("MINIO_BUCKET"),
				UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			},
		}
	})

	return configInstance, nil
}
