// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP ports,
// TLS, logging level, and request limits. AppConfig is where everything
// specific to BankHub lives: the MongoDB connection, session signing, and
// the per-operation timeout knobs.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey string // Secret key for signing session cookies (must be strong in production)

	// Operation timeouts (zero keeps the built-in defaults)
	TimeoutPing   time.Duration // health checks
	TimeoutShort  time.Duration // single-document reads
	TimeoutMedium time.Duration // list queries and writes
	TimeoutLong   time.Duration // reports and statement exports
}
