package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no se pudo cargar el fichero .env, se usan las variables de entorno: %v", err)
	}
	return nil
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvDefault devuelve la variable de entorno o el valor por defecto
func GetEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
