package db

import (
	"net"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/shinyyama/catalog-backend/internal/config"
	"github.com/shinyyama/catalog-backend/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSNConfig resolves DB_HOST, which may be a bare host, a socket path, an
// already wrapped tcp(...)/unix(...) address, or overridden by a Cloud SQL
// instance name.
func DSNConfig(cfg *config.Config) *mysqldrv.Config {
	dc := mysqldrv.NewConfig()
	dc.User = cfg.DBUser
	dc.Passwd = cfg.DBPassword
	dc.DBName = cfg.DBName
	dc.ParseTime = true
	dc.Loc = time.UTC
	dc.Params = map[string]string{"charset": "utf8mb4"}

	host := strings.TrimSpace(cfg.DBHost)
	switch {
	case cfg.InstanceConnectionName != "":
		dc.Net, dc.Addr = "unix", "/cloudsql/"+cfg.InstanceConnectionName
	case strings.HasPrefix(host, "unix(") && strings.HasSuffix(host, ")"):
		dc.Net, dc.Addr = "unix", host[len("unix("):len(host)-1]
	case strings.HasPrefix(host, "tcp(") && strings.HasSuffix(host, ")"):
		dc.Net, dc.Addr = "tcp", host[len("tcp("):len(host)-1]
	case strings.HasPrefix(host, "/"):
		dc.Net, dc.Addr = "unix", host
	default:
		dc.Net, dc.Addr = "tcp", net.JoinHostPort(host, cfg.DBPort)
	}
	return dc
}

func BuildDSN(cfg *config.Config) string {
	return DSNConfig(cfg).FormatDSN()
}

func LogLevel(name string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)
	gcfg := &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(LogLevel(cfg.DBLogLevel)),
	}
	db, err := gorm.Open(mysql.Open(dsn), gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)

	return db, nil
}

// Migrate creates the catalog tables. No foreign key constraints are declared:
// relations are plain id columns and a dangling reference is legal.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Category{},
		&model.User{},
		&model.Product{},
		&model.ProductImage{},
	)
}
