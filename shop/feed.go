package shop

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"techstore/config"
	aphttp "techstore/http"
	"techstore/logreport"

	"github.com/clbanning/mxj"
)

// feedHandler renders the active catalog as an XML product feed for
// merchant and comparison-shopping consumers.
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	products, err := s.catalog.ActiveProducts(0, "")
	if err != nil {
		logreport.Printf("%s Error fetching products for feed: %v\n%v", config.Shop, err, r)
		return s.httpError(err)
	}

	items := make([]interface{}, 0, len(products))
	for _, product := range products {
		availability := "in stock"
		if product.Stock < 1 {
			availability = "out of stock"
		}
		items = append(items, map[string]interface{}{
			"id":           product.ID,
			"title":        product.Name,
			"description":  product.Description,
			"link":         fmt.Sprintf("/products/%d", product.ID),
			"price": fmt.Sprintf("%d.%02d %s", product.PriceCents/100,
				product.PriceCents%100, strings.ToUpper(product.Currency)),
			"availability": availability,
		})
	}

	m := mxj.Map(map[string]interface{}{
		"title":   "TechStore",
		"updated": time.Now().UTC().Format(time.RFC3339),
		"item":    items,
	})
	body, err := m.XmlIndent("", "    ", "feed")
	if err != nil {
		logreport.Printf("%s Error rendering feed: %v\n%v", config.Shop, err, r)
		return aphttp.DefaultServerError()
	}

	w.Header().Set("Content-Type", "application/xml")
	fmt.Fprintf(w, "%s\n", body)
	return nil
}
