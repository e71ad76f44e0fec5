// Package testinfra starts disposable database servers for conntest suites.
package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mssql"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

const (
	PostgresImage = "postgres:17-alpine"
	MySQLImage    = "mysql:8.4"
	MSSQLImage    = "mcr.microsoft.com/mssql/server:2022-latest"

	PostgresUser     = "postgres"
	PostgresPassword = "postgres"
	MySQLUser        = "root"
	MySQLPassword    = "mkdb-test"
	MSSQLUser        = "sa"
	MSSQLPassword    = "Mkdb-Test-Passw0rd!"

	startupTimeout = 120 * time.Second
)

// Server is a running container plus what a connection profile needs to reach it.
type Server struct {
	testcontainers.Container
	Provider mkdb.ProviderKind
	Host     string
	Port     string
	User     string
	Password string
}

// Connection returns a profile for the server with the given id.
func (s *Server) Connection(id string) *mkdb.Connection {
	return &mkdb.Connection{
		ID:           id,
		ProviderName: s.Provider.String(),
		Options: map[string]string{
			mkdb.OptionServer:   s.Host,
			mkdb.OptionPort:     s.Port,
			mkdb.OptionUser:     s.User,
			mkdb.OptionPassword: s.Password,
		},
	}
}

// StartPostgres starts a PostgreSQL server.
func StartPostgres(ctx context.Context) (*Server, error) {
	ctr, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithUsername(PostgresUser),
		postgres.WithPassword(PostgresPassword),
		postgres.WithDatabase("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}
	return newServer(ctx, ctr, mkdb.ProviderPostgres, "5432/tcp", PostgresUser, PostgresPassword)
}

// StartMySQL starts a MySQL server.
func StartMySQL(ctx context.Context) (*Server, error) {
	ctr, err := mysql.Run(ctx,
		MySQLImage,
		mysql.WithUsername(MySQLUser),
		mysql.WithPassword(MySQLPassword),
		mysql.WithDatabase("mkdb"),
	)
	if err != nil {
		return nil, fmt.Errorf("start mysql: %w", err)
	}
	return newServer(ctx, ctr, mkdb.ProviderMySQL, "3306/tcp", MySQLUser, MySQLPassword)
}

// StartMSSQL starts a SQL Server instance. The image only runs on amd64 hosts.
func StartMSSQL(ctx context.Context) (*Server, error) {
	ctr, err := mssql.Run(ctx,
		MSSQLImage,
		mssql.WithAcceptEULA(),
		mssql.WithPassword(MSSQLPassword),
	)
	if err != nil {
		return nil, fmt.Errorf("start mssql: %w", err)
	}
	return newServer(ctx, ctr, mkdb.ProviderMSSQL, "1433/tcp", MSSQLUser, MSSQLPassword)
}

func newServer(ctx context.Context, ctr testcontainers.Container, kind mkdb.ProviderKind, port, user, password string) (*Server, error) {
	host, err := ctr.Host(ctx)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get %s host: %w", kind, err)
	}
	mapped, err := ctr.MappedPort(ctx, port)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get %s port: %w", kind, err)
	}

	return &Server{
		Container: ctr,
		Provider:  kind,
		Host:      host,
		Port:      mapped.Port(),
		User:      user,
		Password:  password,
	}, nil
}
