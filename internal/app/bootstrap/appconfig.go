// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS). AppConfig is everything specific to this application,
// loaded in LoadConfig from env vars, config files, or flags.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Bearer token configuration
	TokenSecret string        // HMAC signing secret (must be strong in production)
	TokenIssuer string        // Issuer claim stamped on tokens
	TokenTTL    time.Duration // Token lifetime

	// Audit logging settings: "all" (db+log), "db", "log", or "off"
	AuditLogAuth  string // Auth events (login, register)
	AuditLogAdmin string // Admin events (catalog CRUD, role changes)

	// Login rate limiting
	LoginRateLimit  int           // Max credential attempts per window per IP
	LoginRateWindow time.Duration // Window duration

	// Membership reconciliation sweep
	ReconcileInterval time.Duration // How often the sweep runs; 0 disables it

	// SuperAdmin bootstrap
	SuperAdminEmail string // Email of the account promoted to admin on startup
}
