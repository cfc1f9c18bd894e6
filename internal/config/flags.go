// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the daemon command line.
//
// Flags:
//
//	-a               HTTP API address in format [host]:[port]
//	-d               database DSN
//	-db-driver       store driver: memory, postgres or sqlite
//	-c/-config       JSON file path with configs
//	-remote          remote gateway base URL
//	-token-sign-key  bearer token verification key
//	-credential-key  credential sealing passphrase
//	-log-level       zerolog level name
//	-probe-interval  farming probe interval (e.g. "10s")
//	-sync-interval   reconciliation interval (e.g. "1m")
//	-auto-start      start farming right after an account is added
//	-resume          resume accounts that were active before restart
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("glory-keeper", flag.ContinueOnError)

	var (
		serverAddress  NetAddress
		databaseDSN    string
		dbDriver       string
		jsonConfigPath string
		remoteURL      string
		tokenSignKey   string
		credentialKey  string
		logLevel       string
		probeInterval  time.Duration
		syncInterval   time.Duration
		autoStart      bool
		resumeOnBoot   bool
	)

	fs.Var(&serverAddress, "a", "HTTP API address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&dbDriver, "db-driver", "", "Store driver: memory, postgres or sqlite")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&remoteURL, "remote", "", "Remote gateway base URL")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Bearer token verification key")
	fs.StringVar(&credentialKey, "credential-key", "", "Credential sealing passphrase")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.DurationVar(&probeInterval, "probe-interval", 0, "Farming probe interval (e.g., 10s)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Reconciliation interval (e.g., 1m)")
	fs.BoolVar(&autoStart, "auto-start", false, "Start farming right after an account is added")
	fs.BoolVar(&resumeOnBoot, "resume", false, "Resume accounts that were active before restart")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			CredentialKey: credentialKey,
			LogLevel:      logLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: dbDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Adapter: Adapter{
			BaseURL: remoteURL,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		Farming: Farming{
			ProbeInterval: probeInterval,
			AutoStart:     autoStart,
			ResumeOnBoot:  resumeOnBoot,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means all interfaces.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
