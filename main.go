package main

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"time"

	"techstore/config"
	"techstore/errors/report"
	"techstore/logreport"
	"techstore/model"
	"techstore/shop"
	apsql "techstore/sql"
	"techstore/stats"
	statssql "techstore/stats/sql"
	"techstore/stats/ticker"
	"techstore/store"
	"techstore/version"

	"github.com/gorilla/securecookie"
	"github.com/jmoiron/sqlx"
	stripe "github.com/stripe/stripe-go/v76"
)

func main() {
	log.SetFlags(log.Ldate | log.Lmicroseconds)
	log.SetOutput(os.Stdout)

	conf, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatalf("%s Error parsing config file: %v", config.System, err)
	}

	if conf.Version {
		fmt.Printf("TechStore %s (%s)\n", version.Name(), version.Commit())
		return
	}
	if conf.ExampleConfig {
		config.PrintExample()
		return
	}
	if conf.Keygen {
		printSessionKeys()
		return
	}

	if conf.Airbrake.APIKey != "" && !conf.DevMode() {
		reporter := report.ConfigureAirbrake(conf.Airbrake.APIKey,
			conf.Airbrake.ProjectID, conf.Airbrake.Environment)
		report.RegisterReporter(reporter)
	}

	db, err := apsql.Connect(conf.Database)
	if err != nil {
		log.Fatalf("%s Error connecting to database: %v", config.System, err)
	}
	if !db.UpToDate() {
		if conf.Database.Migrate || conf.DevMode() {
			if err = db.Migrate(); err != nil {
				log.Fatalf("%s Error migrating database: %v", config.System, err)
			}
		} else {
			message := "The database is not up to date.\n"
			message += "Please migrate by invoking with the -db-migrate flag."
			log.Fatalf("%s %s", config.System, message)
		}
	}

	if !conf.DevMode() {
		if conf.Sessions.AuthKey == "" {
			log.Fatalf("%s A sessions auth key is required in server mode; generate one with -keygen",
				config.System)
		}
		if conf.Admin.Password == "" {
			log.Fatalf("%s A site owner password is required in server mode; set -admin-password",
				config.System)
		}
		exists, err := model.AnyUserExists(db)
		if err != nil {
			log.Fatalf("%s Error checking for staff users: %v", config.System, err)
		}
		if !exists {
			log.Printf("%s No staff users exist yet; create one through %susers with the site owner credentials",
				config.System, conf.Admin.PathPrefix)
		}
	}

	sessionStore, err := store.Configure(conf.Sessions)
	if err != nil {
		log.Fatalf("%s Error configuring session store: %v", config.System, err)
	}

	if conf.Stripe.Enabled() {
		stripe.Key = conf.Stripe.SecretKey
	}

	statsLogger, statsSampler := setupStats(conf.Stats)

	if conf.DevMode() {
		if err := shop.SeedCatalog(db, conf.Shop); err != nil {
			log.Fatalf("%s Error seeding catalog: %v", config.System, err)
		}
		if conf.Jobs && conf.Shop.WatchSeed {
			shop.WatchSeed(db, conf.Shop)
		}
	}

	if conf.Jobs {
		sweepSessions(sessionStore, conf.Sessions)
	}

	log.Printf("%s Starting TechStore %s", config.System, version.Name())
	server := shop.NewServer(conf, db, sessionStore, statsLogger, statsSampler)
	server.Run()
}

// setupStats connects the stats database, migrating it if configured to,
// and starts the flush ticker. Both returns are nil when collection is off.
func setupStats(conf config.Stats) (stats.Logger, stats.Sampler) {
	if !conf.Collect {
		return nil, nil
	}

	statsDb, err := sqlx.Connect(conf.Driver, conf.ConnectionString)
	if err != nil {
		log.Fatalf("%s Error connecting to stats database: %v", config.System, err)
	}
	statsDb.SetMaxOpenConns(int(conf.MaxConnections))

	if conf.Migrate {
		if err := statssql.Migrate(statsDb, statssql.Driver(conf.Driver)); err != nil {
			log.Fatalf("%s Error migrating stats database: %v", config.System, err)
		}
	}

	node, err := os.Hostname()
	if err != nil {
		node = "techstore"
	}
	backend := &statssql.SQL{ID: node, DB: statsDb}

	tkr := ticker.Make(backend)
	die := make(chan struct{})
	errs := make(chan error, 8)
	flush := time.NewTicker(time.Duration(conf.FlushSeconds) * time.Second)
	tkr.Start(die, flush.C, errs)
	go func() {
		for err := range errs {
			logreport.Printf("%s Error flushing stats: %v", config.Job, err)
		}
	}()

	return tkr, backend
}

// sweepSessions periodically clears expired server-side sessions. The
// cookie store sweeps nothing, so this only matters for boltdb sessions.
func sweepSessions(sessionStore store.Store, conf config.Sessions) {
	if conf.SweepMinutes < 1 {
		return
	}
	go func() {
		for range time.Tick(time.Duration(conf.SweepMinutes) * time.Minute) {
			swept, err := sessionStore.Sweep()
			if err != nil {
				logreport.Printf("%s Error sweeping sessions: %v", config.Job, err)
				continue
			}
			if swept > 0 {
				log.Printf("%s Swept %d expired sessions", config.Job, swept)
			}
		}
	}()
}

// printSessionKeys emits a fresh key pair in the configuration file format.
// The configured strings are used as raw key bytes, so the encryption key
// has to come out at exactly 32 characters.
func printSessionKeys() {
	fmt.Println("[sessions]")
	fmt.Printf("authkey = %q\n", randomKeyString(48))
	fmt.Printf("encryptionkey = %q\n", randomKeyString(24))
}

func randomKeyString(bytes int) string {
	return base64.RawURLEncoding.EncodeToString(securecookie.GenerateRandomKey(bytes))
}
