package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"parcels/internal/frame"
	"parcels/internal/types"

	_ "github.com/sijms/go-ora/v2"
)

// dsn builds a properly encoded connection string for Oracle Autonomous Database
func dsn(username, password, host, port, service string, walletLocation string) string {
	if walletLocation != "" {
		// Use wallet-based mTLS connection
		return fmt.Sprintf(
			"oracle://%s:%s@%s:%s/%s?ssl=true&wallet_location=%s",
			url.PathEscape(username), url.PathEscape(password), host, port, service, url.PathEscape(walletLocation))
	}

	return (&url.URL{
		Scheme:   "oracle",
		User:     url.UserPassword(username, password),
		Host:     host + ":" + port,
		Path:     "/" + service,
		RawQuery: "ssl=true", // ADB requires TCPS on 1522
	}).String()
}

// DBConfig holds database connection configuration
type DBConfig struct {
	Host           string
	Port           string
	Service        string
	Username       string
	Password       string
	WalletLocation string
	Table          string
}

// LoadDatabaseConfig reads the DB_* settings from the environment, falling
// back to envFile and then to defaults. A missing envFile is not an error.
func LoadDatabaseConfig(envFile string) (DBConfig, error) {
	fileEnv, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return DBConfig{}, fmt.Errorf("read %s: %w", envFile, err)
		}
		fileEnv = map[string]string{}
	}
	get := func(key, defaultValue string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		if value := fileEnv[key]; value != "" {
			return value
		}
		return defaultValue
	}
	return DBConfig{
		Host:           get("DB_HOST", "localhost"),
		Port:           get("DB_PORT", "1521"),
		Service:        get("DB_SERVICE", "XE"),
		Username:       get("DB_USERNAME", ""),
		Password:       get("DB_PASSWORD", ""),
		WalletLocation: get("DB_WALLET_LOCATION", ""),
		Table:          get("DB_TABLE", "PARCELS"),
	}, nil
}

// Database holds the database connection and configuration
type Database struct {
	db     *sql.DB
	config DBConfig
}

// NewDatabase opens and pings the parcel database.
func NewDatabase(ctx context.Context, config DBConfig) (*Database, error) {
	if !validTable.MatchString(config.Table) {
		return nil, fmt.Errorf("invalid table name %q", config.Table)
	}
	connStr := dsn(config.Username, config.Password, config.Host, config.Port, config.Service, config.WalletLocation)

	db, err := sql.Open("oracle", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		db:     db,
		config: config,
	}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

var validTable = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_$#]{0,127}$`)

func insertStatement(table string, columns []string) string {
	binds := make([]string, len(columns))
	for i := range columns {
		binds[i] = fmt.Sprintf(":%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(binds, ", "))
}

// rowArgs converts a parcel row into bind values. Oracle has no boolean
// column type before 23c, so flags are stored as 0/1.
func rowArgs(r frame.Row, columns []string) []any {
	args := make([]any, len(columns))
	for i, c := range columns {
		switch v := r[c].(type) {
		case bool:
			if v {
				args[i] = 1
			} else {
				args[i] = 0
			}
		case decimal.Decimal:
			args[i] = v.String()
		default:
			args[i] = v
		}
	}
	return args
}

// InsertParcels inserts every row of a canonical parcel table in one
// transaction and returns the number of rows written.
func (d *Database) InsertParcels(ctx context.Context, parcels *frame.Frame) (int, error) {
	columns := types.CanonicalColumns
	for _, c := range columns {
		if !parcels.Has(c) {
			return 0, fmt.Errorf("insert parcels: %w: %s", frame.ErrMissingColumn, c)
		}
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, insertStatement(d.config.Table, columns))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range parcels.Rows() {
		if _, err := stmt.ExecContext(ctx, rowArgs(r, columns)...); err != nil {
			return 0, fmt.Errorf("failed to insert row %d (%v): %w", i, r[types.ParcelNumber], err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit parcels: %w", err)
	}
	return parcels.Len(), nil
}

// CountParcelsByCounty returns the number of stored parcels per county.
func (d *Database) CountParcelsByCounty(ctx context.Context) (map[string]int, error) {
	query := fmt.Sprintf("SELECT %s, COUNT(*) FROM %s GROUP BY %s", types.County, d.config.Table, types.County)

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count parcels: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var county sql.NullString
		var n int
		if err := rows.Scan(&county, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[county.String] = n
	}
	return counts, rows.Err()
}
