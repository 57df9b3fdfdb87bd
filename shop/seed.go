package shop

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"techstore/config"
	"techstore/logreport"
	"techstore/model"
	apsql "techstore/sql"

	"github.com/fsnotify/fsnotify"
)

// SeedCatalog loads the configured seed document into an empty catalog.
// Installs that already have products are left alone.
func SeedCatalog(db *apsql.DB, conf config.ShopServer) error {
	if conf.SeedFile == "" {
		return nil
	}

	count, err := model.CountProducts(db)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logreport.Printf("%s Seeding catalog from %s", config.System, conf.SeedFile)
	return importSeed(db, conf)
}

func importSeed(db *apsql.DB, conf config.ShopServer) error {
	document, err := os.ReadFile(conf.SeedFile)
	if err != nil {
		return err
	}

	if validationErrors := model.ValidateCatalog(document); !validationErrors.Empty() {
		return fmt.Errorf("Seed catalog is invalid: %v", validationErrors)
	}

	catalog := model.Catalog{}
	if err := json.Unmarshal(document, &catalog); err != nil {
		return err
	}

	imagesDir := ""
	if conf.StaticPath != "" {
		imagesDir = filepath.Join(conf.StaticPath, "images")
	}
	return db.DoInTransaction(func(tx *apsql.Tx) error {
		tx.PushTag(apsql.NotificationTagSeed)
		defer tx.PopTag()
		return catalog.Import(tx, imagesDir)
	})
}

// WatchSeed re-imports the seed document whenever it changes on disk, so
// edits show up in a dev instance without a restart. Import failures are
// logged and the old catalog stays.
func WatchSeed(db *apsql.DB, conf config.ShopServer) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logreport.Fatalf("%s Could not create filesystem watcher: %v",
			config.System, err)
	}

	// Watch the directory; editors replace the file, which drops a watch
	// held on the file itself.
	err = watcher.Add(filepath.Dir(conf.SeedFile))
	if err != nil {
		logreport.Fatalf("%s Could not watch seed file '%s': %v",
			config.System, conf.SeedFile, err)
	}

	seedName := filepath.Base(conf.SeedFile)
	go func() {
		for {
			select {
			case event := <-watcher.Events:
				if filepath.Base(event.Name) != seedName {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				logreport.Printf("%s Seed file changed; re-importing catalog",
					config.System)
				if err := importSeed(db, conf); err != nil {
					logreport.Printf("%s Error re-importing catalog: %v",
						config.System, err)
				}
			case err := <-watcher.Errors:
				logreport.Printf("%s Seed watcher error: %v", config.System, err)
			}
		}
	}()
}
