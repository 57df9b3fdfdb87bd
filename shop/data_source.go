package shop

import (
	"log"
	"sync"

	"techstore/config"
	"techstore/model"
	apsql "techstore/sql"
)

type catalogDataSource interface {
	Product(id int64) (*model.Product, error)
	ActiveProducts(categoryID int64, query string) ([]*model.Product, error)
	FeaturedProducts(limit int64) ([]*model.Product, error)
	Categories() ([]*model.Category, error)
}

type catalogPassthrough struct {
	db *apsql.DB
}

func newPassthroughCatalogDataSource(db *apsql.DB) *catalogPassthrough {
	return &catalogPassthrough{db: db}
}

func (c *catalogPassthrough) Product(id int64) (*model.Product, error) {
	return model.FindActiveProduct(c.db, id)
}

func (c *catalogPassthrough) ActiveProducts(categoryID int64, query string) ([]*model.Product, error) {
	return model.ActiveProducts(c.db, categoryID, query)
}

func (c *catalogPassthrough) FeaturedProducts(limit int64) ([]*model.Product, error) {
	return model.FeaturedProducts(c.db, limit)
}

func (c *catalogPassthrough) Categories() ([]*model.Category, error) {
	return model.AllCategories(c.db)
}

// catalogCache keeps the hot lookups in memory: products by id, the featured
// set, and the category list. Filtered product listings always go to the
// database, they vary by query.
type catalogCache struct {
	db *apsql.DB

	mutex sync.RWMutex

	products   map[int64]*model.Product // productID -> product
	featured   map[int64][]*model.Product
	categories []*model.Category
}

func newCachingCatalogDataSource(db *apsql.DB) *catalogCache {
	cache := &catalogCache{db: db}
	cache.products = make(map[int64]*model.Product)
	cache.featured = make(map[int64][]*model.Product)
	db.RegisterListener(cache)
	return cache
}

func (c *catalogCache) Product(id int64) (*model.Product, error) {
	c.mutex.RLock()
	product := c.products[id]
	c.mutex.RUnlock()
	if product != nil {
		return product, nil
	}

	product, err := model.FindActiveProduct(c.db, id)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	c.products[id] = product
	c.mutex.Unlock()

	return product, nil
}

func (c *catalogCache) ActiveProducts(categoryID int64, query string) ([]*model.Product, error) {
	return model.ActiveProducts(c.db, categoryID, query)
}

func (c *catalogCache) FeaturedProducts(limit int64) ([]*model.Product, error) {
	c.mutex.RLock()
	featured := c.featured[limit]
	c.mutex.RUnlock()
	if featured != nil {
		return featured, nil
	}

	featured, err := model.FeaturedProducts(c.db, limit)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	c.featured[limit] = featured
	c.mutex.Unlock()

	return featured, nil
}

func (c *catalogCache) Categories() ([]*model.Category, error) {
	c.mutex.RLock()
	categories := c.categories
	c.mutex.RUnlock()
	if categories != nil {
		return categories, nil
	}

	categories, err := model.AllCategories(c.db)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	c.categories = categories
	c.mutex.Unlock()

	return categories, nil
}

func (c *catalogCache) clearProduct(id int64) {
	c.mutex.Lock()
	delete(c.products, id)
	c.featured = make(map[int64][]*model.Product)
	c.mutex.Unlock()
}

func (c *catalogCache) clearCategories() {
	c.mutex.Lock()
	c.categories = nil
	c.mutex.Unlock()
}

func (c *catalogCache) clearAll() {
	log.Printf("%s Clearing catalog cache", config.System)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.products = make(map[int64]*model.Product)
	c.featured = make(map[int64][]*model.Product)
	c.categories = nil
}

func (c *catalogCache) Notify(n *apsql.Notification) {
	switch n.Table {
	case "products":
		go c.clearProduct(n.ID)
	case "categories":
		// Deleting a category cascades to its products.
		if n.Event == apsql.Delete {
			go c.clearAll()
		} else {
			go c.clearCategories()
		}
	}
}

func (c *catalogCache) Reconnect() {
	log.Printf("%s Catalog cache notified of database reconnection", config.System)
	go c.clearAll()
}
