// Package postgres connects the service to PostgreSQL through GORM. The
// snapshot tables live in the snapshotrepo subpackage.
package postgres

import (
	"fmt"
	"net/url"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Settings holds the connection parameters.
type Settings struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the settings as a libpq connection URL.
func (s Settings) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(s.User, s.Password),
		Host:   s.Host + ":" + s.Port,
		Path:   "/" + s.Name,
	}
	if s.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{s.SSLMode}}.Encode()
	}
	return u.String()
}

// Open connects and pings the database.
func Open(s Settings) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(s.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres %s/%s: %w", s.Host, s.Name, err)
	}
	return db, nil
}
