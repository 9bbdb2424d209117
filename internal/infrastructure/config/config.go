package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env     string
	Server  ServerConfig
	Mongo   MongoConfig
	Logging LoggingConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port    string
	Host    string
	BaseURL string // URL base da API para construir URIs RFC 7807
}

type MongoConfig struct {
	URI                string
	Database           string
	ReadingsCollection string
	UsersCollection    string
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

// Load carrega as configurações do arquivo .env e do ambiente.
// O arquivo é opcional: em produção o processo roda só com variáveis
// de ambiente, como o sistema original.
func Load() (*Config, error) {
	// godotenv popula o ambiente para scripts que leem os.Getenv
	_ = godotenv.Load()

	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			return nil, err
		}
	}

	viper.SetDefault("ENV", "development")
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("API_BASE_URL", "http://localhost:5000")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("DB_NAME", "sensordash")
	viper.SetDefault("COLLECTION_NAME", "sensor_data")
	viper.SetDefault("USERS_COLLECTION_NAME", "usuarios")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	config := &Config{
		Env: viper.GetString("ENV"),
		Server: ServerConfig{
			Port:    viper.GetString("PORT"),
			Host:    viper.GetString("HOST"),
			BaseURL: viper.GetString("API_BASE_URL"),
		},
		Mongo: MongoConfig{
			URI:                viper.GetString("MONGO_URI"),
			Database:           viper.GetString("DB_NAME"),
			ReadingsCollection: viper.GetString("COLLECTION_NAME"),
			UsersCollection:    viper.GetString("USERS_COLLECTION_NAME"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetString("CORS_ALLOWED_ORIGINS"),
		},
	}

	return config, nil
}
