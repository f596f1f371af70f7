package configuration

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	Properties struct {
		LogLevel string `env:"LOG_LEVEL" envDefault:"DEBUG"`

		S3      S3Properties         `envPrefix:"S3_"`
		Server  HttpServerProperties `envPrefix:"HTTP_"`
		Gallery GalleryProperties    `envPrefix:"GALLERY_"`
	}

	HttpServerProperties struct {
		Name        string        `env:"NAME" envDefault:"galleryserv"`
		Port        string        `env:"PORT" envDefault:"8088"`
		ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	}

	S3Properties struct {
		Host      string `env:"HOST" envDefault:"s3.minio.com:9000"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		Bucket    string `env:"BUCKET" envDefault:"gallery"`
		UseSSL    bool   `env:"USE_SSL" envDefault:"true"`
	}

	GalleryProperties struct {
		// Folder scopes both upload destinations and listing queries.
		Folder           string        `env:"FOLDER" envDefault:"default-folder"`
		MaxResults       int           `env:"MAX_RESULTS" envDefault:"400"`
		PlaceholderWidth int           `env:"PLACEHOLDER_WIDTH" envDefault:"16"`
		URLExpiry        time.Duration `env:"URL_EXPIRY" envDefault:"168h"`
	}
)

func ReadProperties() *Properties {
	config := &Properties{}

	if err := env.Parse(config); err != nil {
		panic(fmt.Errorf("read config error: %w", err))
	}
	return config
}
