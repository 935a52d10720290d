// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"codeberg.org/oliverandrich/go-random-image/internal/config"
	"golang.org/x/crypto/acme/autocert"
)

// tlsSetup is the resolved TLS configuration for the listener.
type tlsSetup struct {
	Mode        string
	Config      *tls.Config  // nil when TLS is off
	HTTPHandler http.Handler // ACME challenge and HTTP→HTTPS redirect, nil otherwise
}

// setupTLS resolves the TLS mode and prepares certificates for it.
func setupTLS(cfg *config.Config) (*tlsSetup, error) {
	mode := cfg.ResolveTLSMode()

	switch mode {
	case config.TLSModeOff:
		slog.Info("TLS mode: off")
		return &tlsSetup{Mode: mode}, nil

	case config.TLSModeManual:
		slog.Info("TLS mode: manual", "cert", cfg.TLS.CertFile, "key", cfg.TLS.KeyFile)
		return setupManual(cfg)

	case config.TLSModeACME:
		slog.Info("TLS mode: acme (Let's Encrypt)", "host", cfg.Server.Host, "email", cfg.TLS.Email)
		return setupACME(cfg)

	default:
		return nil, fmt.Errorf("unknown TLS mode: %s", mode)
	}
}

// setupManual loads user-provided certificate files.
func setupManual(cfg *config.Config) (*tlsSetup, error) {
	if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
		return nil, errors.New("manual TLS mode requires both cert-file and key-file")
	}

	cert, err := tls.LoadX509KeyPair(cfg.TLS.CertFile, cfg.TLS.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}

	return &tlsSetup{
		Mode: config.TLSModeManual,
		Config: &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		},
	}, nil
}

// setupACME configures Let's Encrypt with autocert.
func setupACME(cfg *config.Config) (*tlsSetup, error) {
	if cfg.TLS.Email == "" {
		return nil, errors.New("ACME mode requires TLS_EMAIL to be set")
	}
	if cfg.Server.Port != 443 {
		slog.Warn("ACME mode uses port 443, configured port will be ignored",
			"configured_port", cfg.Server.Port,
		)
	}

	certDir := filepath.Join(cfg.TLS.CertDir, "acme")
	if err := os.MkdirAll(certDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create ACME cert directory: %w", err)
	}

	manager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Email:      cfg.TLS.Email,
		Cache:      autocert.DirCache(certDir),
		HostPolicy: autocert.HostWhitelist(cfg.Server.Host),
	}

	tlsConfig := manager.TLSConfig()
	tlsConfig.MinVersion = tls.VersionTLS12

	return &tlsSetup{
		Mode:        config.TLSModeACME,
		Config:      tlsConfig,
		HTTPHandler: manager.HTTPHandler(nil),
	}, nil
}
