package nube

import (
	"fmt"
	"net/url"

	"github.com/kelseyhightower/envconfig"
)

// ConfiguracionS3 define la conexión a un almacenamiento compatible con S3
type ConfiguracionS3 struct {
	Endpoint        string `envconfig:"ENDPOINT"`          // URL del servicio (default: http://localhost:3900)
	Region          string `envconfig:"REGION"`            // Región (default: us-east-1)
	Bucket          string `envconfig:"BUCKET"`            // Bucket de destino (default: visol-resultados)
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`     // Requerido
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"` // Requerido
}

// AplicarDefaults completa los valores no especificados
func (c *ConfiguracionS3) AplicarDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "http://localhost:3900"
	}
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.Bucket == "" {
		c.Bucket = "visol-resultados"
	}
}

// Validar comprueba que la configuración está completa
func (c *ConfiguracionS3) Validar() error {
	if c.AccessKeyID == "" || c.SecretAccessKey == "" {
		return fmt.Errorf("credenciales S3 incompletas (AccessKeyID y SecretAccessKey son requeridos)")
	}
	if c.Bucket == "" {
		return fmt.Errorf("Bucket es requerido")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("Endpoint S3 inválido: %q", c.Endpoint)
	}
	return nil
}

// ConfiguracionS3DesdeEntorno lee las variables S3_ENDPOINT, S3_REGION, S3_BUCKET,
// S3_ACCESS_KEY_ID y S3_SECRET_ACCESS_KEY y aplica los valores por defecto
func ConfiguracionS3DesdeEntorno() (ConfiguracionS3, error) {
	var cfg ConfiguracionS3
	if err := envconfig.Process("S3", &cfg); err != nil {
		return ConfiguracionS3{}, fmt.Errorf("error al leer configuración S3: %w", err)
	}
	cfg.AplicarDefaults()
	return cfg, nil
}
