// Package config implements configuration parsing for TechStore.
package config

import (
	"flag"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
)

// Configuration specifies the complete TechStore configuration.
type Configuration struct {
	File          string `flag:"config" default:"techstore.conf"`
	Version       bool   `flag:"version" default:"false"`
	ExampleConfig bool   `flag:"example-config" default:"false"`
	Keygen        bool   `flag:"keygen" default:"false"`

	Server bool `flag:"server" default:"false"`
	Jobs   bool `flag:"jobs" default:"true"`

	Airbrake Airbrake
	Database Database
	Stats    Stats
	Shop     ShopServer
	Admin    AdminServer
	Sessions Sessions
	SMTP     SMTP
	Stripe   Stripe
}

// DevMode is true unless the instance was started in server mode.
func (c Configuration) DevMode() bool {
	return !c.Server
}

// Airbrake specifies configuration options for error reporting to Airbrake.
type Airbrake struct {
	APIKey      string `flag:"airbrake-api-key" default:""`
	ProjectID   int64  `flag:"airbrake-project-id" default:"0"`
	Environment string `flag:"airbrake-environment" default:""`
}

// Database specifies configuration options for your database
type Database struct {
	Migrate          bool   `flag:"db-migrate"     default:"false"`
	Driver           string `flag:"db-driver"      default:"sqlite3"`
	ConnectionString string `flag:"db-conn-string" default:"techstore.db"`
	MaxConnections   int64  `flag:"db-max-connections" default:"50"`
}

// Stats specifies configuration options for the stats database.
type Stats struct {
	Collect          bool   `flag:"stats-collect" default:"true"`
	Migrate          bool   `flag:"stats-migrate" default:"true"`
	Driver           string `flag:"stats-driver"  default:"sqlite3"`
	ConnectionString string `flag:"stats-conn-string" default:"techstore_stats.db"`
	MaxConnections   int64  `flag:"stats-max-connections" default:"5"`
	FlushSeconds     int64  `flag:"stats-flush-seconds" default:"10"`
}

// ShopServer specifies configuration options that apply to the storefront.
type ShopServer struct {
	Host string `flag:"host" default:"0.0.0.0"`
	Port int64  `flag:"port" default:"8000"`

	RequestIDHeader string `flag:"request-id-header" default:""`

	StaticPath   string `flag:"static-path" default:"static"`
	SeedFile     string `flag:"seed-file"   default:"catalog.seed.json"`
	WatchSeed    bool   `flag:"watch-seed" default:"true"`
	CacheCatalog bool   `flag:"cache-catalog" default:"true"`

	CORSEnabled bool   `flag:"cors-enabled" default:"true"`
	CORSOrigin  string `flag:"cors-origin" default:"*"`

	ForceSSL bool `flag:"force-ssl" default:"false"`
}

// AdminServer specifies configuration options that apply to the management
// section of the storefront.
type AdminServer struct {
	PathPrefix string `flag:"admin-path-prefix" default:"/admin/"`
	Host       string `flag:"admin-host"        default:""`

	// Staff sessions share the visitor session store and keys; only the
	// cookie name is their own.
	SessionName string `flag:"admin-session-name" default:"__techstore_admin"`

	RequestIDHeader string `flag:"admin-request-id-header" default:""`

	CORSEnabled bool   `flag:"admin-cors-enabled" default:"true"`
	CORSOrigin  string `flag:"admin-cors-origin" default:"*"`

	Username string `flag:"admin-username" default:"admin"`
	Password string `flag:"admin-password" default:""`
	Realm    string `flag:"admin-realm"    default:""`

	ShowVersion bool `flag:"admin-show-version" default:"true"`
}

// Sessions specifies configuration options for storefront visitor sessions.
type Sessions struct {
	Store string `flag:"sessions-store" default:"cookie"`
	File  string `flag:"sessions-file"  default:"techstore_sessions.db"`

	Name           string `flag:"sessions-name" default:"_techstore_session"`
	AuthKey        string `flag:"sessions-auth-key" default:""`
	EncryptionKey  string `flag:"sessions-encryption-key" default:""`
	AuthKey2       string `flag:"sessions-auth-key-rotate" default:""`
	EncryptionKey2 string `flag:"sessions-encryption-key-rotate" default:""`
	CookieDomain   string `flag:"sessions-cookie-domain" default:""`

	MaxAge       int64 `flag:"sessions-max-age" default:"1209600"`
	SweepMinutes int64 `flag:"sessions-sweep-minutes" default:"60"`
}

// SMTP specifies configuration options for outgoing mail.
type SMTP struct {
	Server   string `flag:"smtp-server" default:""`
	Port     int64  `flag:"smtp-port" default:"25"`
	User     string `flag:"smtp-user" default:""`
	Password string `flag:"smtp-password" default:""`
	Sender   string `flag:"smtp-sender" default:"orders@techstore.example"`

	EmailScheme string `flag:"smtp-email-scheme" default:"http"`
	EmailHost   string `flag:"smtp-email-host" default:"localhost"`
	EmailPort   int64  `flag:"smtp-email-port" default:"8000"`
}

// Configured is whether outgoing mail can be sent at all.
func (s SMTP) Configured() bool {
	return s.Server != ""
}

// Stripe specifies configuration options for card payments.
type Stripe struct {
	SecretKey      string `flag:"stripe-secret-key" default:""`
	PublishableKey string `flag:"stripe-publishable-key" default:""`
}

// Enabled is whether card payments are configured at all.
func (s Stripe) Enabled() bool {
	return s.SecretKey != ""
}

const envPrefix = "TECHSTORE_"

// Parse all configuration.
//
// Environment variables take precendence over the configuration file,
// but command line flags take precedence over both.
func Parse(args []string) (Configuration, error) {
	config := Configuration{}

	// Parse flags
	setupFlags(reflect.ValueOf(config))
	flag.Parse()

	// Parse environment
	setUnsetFlagsFromEnv()

	// Set default in our instance
	setDefaults(reflect.ValueOf(&config).Elem())

	// Override values with config file
	if err := parseConfigFile(&config); err != nil {
		return config, err
	}
	// Override values with flags (including environment)
	setFromFlags(reflect.ValueOf(&config).Elem())

	return config, nil
}

func parseConfigFile(config *Configuration) error {
	configFile := flag.Lookup("config").Value.String()
	_, err := toml.DecodeFile(configFile, config)
	if os.IsNotExist(err) {
		log.Printf(
			"%s Config file '%s' does not exist and will not be used.\n",
			System, configFile)
		return nil
	}
	return err
}

func setUnsetFlagsFromEnv() {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	flag.VisitAll(func(f *flag.Flag) {
		if !set[f.Name] {
			if val := envValueForFlag(f.Name); val != "" {
				flag.Set(f.Name, val)
			}
		}
	})
}

func envValueForFlag(name string) string {
	key := envPrefix + strings.ToUpper(strings.Replace(name, "-", "_", -1))
	return os.Getenv(key)
}
