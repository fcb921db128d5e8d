package env

import (
	"net"
	"os"

	"github.com/DoyleJ11/spin-wheel/internal/config"
)

const (
	portEnvName = "PORT"
	defaultPort = "8080"
)

type httpConfig struct {
	address string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	port := os.Getenv(portEnvName)
	if len(port) == 0 {
		port = defaultPort
	}
	return &httpConfig{address: net.JoinHostPort("", port)}, nil
}

func (cfg *httpConfig) Address() string {
	return cfg.address
}
