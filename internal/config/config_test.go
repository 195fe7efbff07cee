package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "SQLITE_PATH", "REDIS_ADDR", "OP_TIMEOUT", "OVERDUE_SWEEP", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	c := Load()

	if c.AppPort != "8080" || c.DBDriver != DriverSQLite || c.SQLitePath != "biblios.db" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.OpTimeout != 5*time.Second {
		t.Fatalf("OpTimeout = %v", c.OpTimeout)
	}
	if c.RedisAddr != "" || c.OverdueSweep != "" {
		t.Fatalf("optional services should default off: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("MYSQL_HOST", "db.local")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")
	t.Setenv("OP_TIMEOUT", "750ms")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("OVERDUE_SWEEP", "@every 5m")

	c := Load()
	if c.DBDriver != DriverMySQL || c.MySQLHost != "db.local" || c.RedisDB != 3 {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.IdempotencyTTL() != time.Minute {
		t.Fatalf("IdempotencyTTL = %v", c.IdempotencyTTL())
	}
	if c.OpTimeout != 750*time.Millisecond || c.RateLimitRPS != 2.5 {
		t.Fatalf("timeout/rate: %+v", c)
	}
	if !strings.Contains(c.MySQLDSN(), "@tcp(db.local:3306)/biblios?parseTime=true") {
		t.Fatalf("MySQLDSN = %q", c.MySQLDSN())
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{AppPort: "8080", DBDriver: DriverSQLite, SQLitePath: "x.db", OpTimeout: time.Second}
	}

	cases := map[string]func(c *Config){
		"no port":        func(c *Config) { c.AppPort = "" },
		"bad driver":     func(c *Config) { c.DBDriver = "oracle" },
		"no sqlite path": func(c *Config) { c.SQLitePath = "" },
		"postgres dsn":   func(c *Config) { c.DBDriver = DriverPostgres },
		"mysql port": func(c *Config) {
			c.DBDriver = DriverMySQL
			c.MySQLHost, c.MySQLDB, c.MySQLUser, c.MySQLPort = "h", "d", "u", "not-a-port"
		},
		"zero timeout": func(c *Config) { c.OpTimeout = 0 },
	}
	for name, mutate := range cases {
		c := base()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	if err := base().Validate(); err != nil {
		t.Fatalf("base config invalid: %v", err)
	}
}

func TestSQLiteDSN(t *testing.T) {
	c := &Config{SQLitePath: "/tmp/b.db"}
	if got := c.SQLiteDSN(); !strings.HasPrefix(got, "file:/tmp/b.db?") || !strings.Contains(got, "_foreign_keys=1") {
		t.Fatalf("SQLiteDSN = %q", got)
	}
}
