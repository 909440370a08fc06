// Package refdata loads the static reference tables the pipeline reads:
// shipping locations with weather and disruption state, inventory by product,
// and pending orders. Everything is loaded once and immutable afterwards, so
// concurrent analyses share a Catalog without locking.
package refdata

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/harborline/disruption-shield/internal/contracts"
)

//go:embed data/*.csv
var dataFS embed.FS

// Inventory is the on-hand stock position for one product.
type Inventory struct {
	ProductID   string  `json:"product_id"`
	Stock       float64 `json:"stock"`
	DailyDemand float64 `json:"daily_demand"`
}

type Catalog struct {
	locations []Location
	byName    map[string]Location
	inventory map[string]Inventory
	orders    map[string][]contracts.Order
}

// Load builds the catalog from the seeded locations and the embedded CSVs.
func Load() (*Catalog, error) {
	c := &Catalog{
		locations: seedLocations,
		byName:    make(map[string]Location, len(seedLocations)),
		inventory: make(map[string]Inventory),
		orders:    make(map[string][]contracts.Order),
	}
	for _, loc := range seedLocations {
		c.byName[strings.ToLower(loc.Name)] = loc
	}

	if err := c.loadInventory(); err != nil {
		return nil, err
	}
	if err := c.loadOrders(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewCatalog builds a catalog from explicit fixtures. Tests use this to
// substitute reference data without touching the embedded tables.
func NewCatalog(locations []Location, inventory []Inventory, orders []contracts.Order) *Catalog {
	c := &Catalog{
		locations: locations,
		byName:    make(map[string]Location, len(locations)),
		inventory: make(map[string]Inventory, len(inventory)),
		orders:    make(map[string][]contracts.Order),
	}
	for _, loc := range locations {
		c.byName[strings.ToLower(loc.Name)] = loc
	}
	for _, inv := range inventory {
		c.inventory[inv.ProductID] = inv
	}
	for _, o := range orders {
		c.orders[o.ProductID] = append(c.orders[o.ProductID], o)
	}
	return c
}

func (c *Catalog) loadInventory() error {
	rows, err := readCSV("data/inventory.csv", 3)
	if err != nil {
		return err
	}
	for _, rec := range rows {
		stock, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return fmt.Errorf("parse inventory stock %q: %w", rec[1], err)
		}
		demand, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return fmt.Errorf("parse inventory demand %q: %w", rec[2], err)
		}
		c.inventory[rec[0]] = Inventory{ProductID: rec[0], Stock: stock, DailyDemand: demand}
	}
	return nil
}

func (c *Catalog) loadOrders() error {
	rows, err := readCSV("data/orders.csv", 4)
	if err != nil {
		return err
	}
	for _, rec := range rows {
		qty, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return fmt.Errorf("parse order quantity %q: %w", rec[2], err)
		}
		due, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return fmt.Errorf("parse order due days %q: %w", rec[3], err)
		}
		order := contracts.Order{OrderID: rec[0], ProductID: rec[1], Quantity: qty, DueDays: due}
		c.orders[order.ProductID] = append(c.orders[order.ProductID], order)
	}
	return nil
}

func readCSV(name string, fields int) ([][]string, error) {
	f, err := dataFS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = fields

	// Header row.
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}

	var rows [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// Locations returns every known shipping location.
func (c *Catalog) Locations() []Location {
	out := make([]Location, len(c.locations))
	copy(out, c.locations)
	return out
}

// Nodes returns the locations as route nodes, usable as a bypass candidate
// pool.
func (c *Catalog) Nodes() []contracts.Node {
	nodes := make([]contracts.Node, 0, len(c.locations))
	for _, loc := range c.locations {
		nodes = append(nodes, loc.Node())
	}
	return nodes
}

// Weather returns the forecast for a location, or a clear-conditions default
// when the location is unknown.
func (c *Catalog) Weather(location string) Weather {
	if loc, ok := c.byName[strings.ToLower(location)]; ok {
		return loc.Weather
	}
	return defaultWeather
}

// Disruption returns the active disruption at a location, or nil.
func (c *Catalog) Disruption(location string) *contracts.Disruption {
	if loc, ok := c.byName[strings.ToLower(location)]; ok {
		return loc.Disruption
	}
	return nil
}

func (c *Catalog) Inventory(productID string) (Inventory, bool) {
	inv, ok := c.inventory[productID]
	return inv, ok
}

func (c *Catalog) Orders(productID string) []contracts.Order {
	return c.orders[productID]
}
