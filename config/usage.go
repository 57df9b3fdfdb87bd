package config

const dbConnStringHelp = `The connection string for your database

    	For sqlite3 this is the path to the database file.

    	For postgres, the connection string is of the format
    	"parameter=value parameter2=value2 parameter3=value3"

    	Valid parameters:

    	* dbname - The name of the database to connect to
    	* user - The user to sign in as
    	* password - The user's password
    	* host - The host to connect to. Values that start with / are for unix domain sockets. (default is localhost)
    	* port - The port to bind to. (default is 5432)
    	* sslmode - Whether or not to use SSL (default is require, this is not the default for libpq)
    	* connect_timeout - Maximum wait for connection, in seconds. Zero or not specified means wait indefinitely.

    	Valid sslmode values:

    	* disable - No SSL
    	* require - Always SSL (skip verification)
    	* verify-ca - Always SSL (verify that the certificate presented by the server was signed by a trusted CA)
    	* verify-full - Always SSL (verify that the certification presented by the server was signed by a trusted CA and the server host name matches the one in the certificate)

    	Use single quotes for values that contain whitespace:

    	"user=pgtest password='with spaces'"`

var usageStrings = map[string]string{
	"version":        "Whether to print the version and quit",
	"example-config": "Whether to print an example techstore.conf file and quit",
	"keygen":         "Whether to print freshly generated session keys and quit",
	"config":         "The path to the configuration file",
	"server":         "Whether or not to run in server mode",
	"jobs":           "Run background jobs",

	"airbrake-api-key":     "The API key to use for Airbrake notifications",
	"airbrake-project-id":  "The ID assigned to your Airbrake project",
	"airbrake-environment": "The environment tag under which errors are reported to Airbrake",

	"db-migrate":         "Whether or not to migrate the database on startup",
	"db-driver":          "The database driver; sqlite3 or postgres",
	"db-conn-string":     dbConnStringHelp,
	"db-max-connections": "The maximum number of connections to use",

	"host": "The hostname the storefront server binds to",
	"port": "The port of the storefront server",

	"request-id-header": "The header to send the storefront request ID back in. Not sent if blank.",

	"static-path":   "The directory product images and other static assets are served from",
	"seed-file":     "The catalog file imported on startup in dev mode. Ignored if missing.",
	"watch-seed":    "Whether or not to re-import the seed file when it changes in dev mode",
	"cache-catalog": "Whether or not to cache catalog data when serving storefront calls",

	"cors-enabled": "Set to false to disable CORS headers from being added to storefront responses.",
	"cors-origin":  "The Access-Control-Allow-Origin header value to send with storefront responses.",

	"force-ssl": "Whether or not to redirect plain HTTP requests to their https equivalent",

	"admin-path-prefix": "The path prefix the management area is accessible under",
	"admin-host":        "The host the management area is accessible via",

	"admin-session-name": "The name of the cookie to use for staff sessions. Staff sessions share the storefront session store and keys.",

	"admin-request-id-header": "The header to send the admin request ID back in. Not sent if blank.",

	"admin-cors-enabled": "Set to false to disable CORS headers from being added to admin responses.",
	"admin-cors-origin":  "The Access-Control-Allow-Origin header value to send with admin responses.",

	"admin-username": "The username to require with HTTP Basic Auth to protect the staff management functionality",
	"admin-password": "The password to require with HTTP Basic Auth to protect the staff management functionality",
	"admin-realm":    "The HTTP Basic realm to use. Optional.",

	"admin-show-version": "Whether or not to expose the TechStore version in the admin info endpoint",

	"sessions-store": "Where storefront sessions live; cookie or boltdb",
	"sessions-file":  "The bolt file storefront sessions are stored in when sessions-store is boltdb",

	"sessions-name":                  "The name of the cookie to use for storefront sessions.",
	"sessions-auth-key":              "The auth key to use for storefront sessions. 64 chars recommended. Required in server mode.",
	"sessions-encryption-key":        "The encryption key to use for storefront sessions. 32 chars recommended. If unset, encryption is disabled.",
	"sessions-auth-key-rotate":       "Same as sessions-auth-key, to be used during key rotation.",
	"sessions-encryption-key-rotate": "Same as sessions-encryption-key, to be used during key rotation.",
	"sessions-cookie-domain":         "The domain to set on the storefront session cookie.",

	"sessions-max-age":       "How long in seconds a storefront session lives",
	"sessions-sweep-minutes": "How often in minutes expired bolt sessions are swept. 0 disables sweeping.",

	"smtp-server":       "The address or name of the smtp server",
	"smtp-port":         "The port of the smtp server",
	"smtp-user":         "The user name for the smtp server",
	"smtp-password":     "The password for the smtp server",
	"smtp-sender":       "The sender of emails from the store",
	"smtp-email-scheme": "The scheme to be used in email links",
	"smtp-email-host":   "The host to be used in email links",
	"smtp-email-port":   "The port to be used in email links",

	"stripe-secret-key":      "Stripe API Secret Key",
	"stripe-publishable-key": "Stripe API Publishable Key",

	"stats-collect":         "Whether or not to collect stats on storefront usage.",
	"stats-migrate":         "Whether or not to migrate the stats database on startup.",
	"stats-driver":          "The stats database driver; sqlite3 or postgres.",
	"stats-conn-string":     dbConnStringHelp,
	"stats-max-connections": "The maximum number of connections to use.",
	"stats-flush-seconds":   "How often in seconds buffered stats are flushed to the stats database.",
}
