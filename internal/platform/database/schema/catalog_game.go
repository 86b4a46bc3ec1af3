// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogGameTable represents the 'catalog.game' table
type CatalogGameTable struct {
	Table     string
	ID        string
	Name      string
	Publisher string
	Price     string
}

// CatalogGame is the schema definition for catalog.game
var CatalogGame = CatalogGameTable{
	Table:     "catalog.game",
	ID:        "id",
	Name:      "name",
	Publisher: "publisher",
	Price:     "price",
}

// Columns lists the table columns in scan order.
func (t CatalogGameTable) Columns() []string {
	return []string{t.ID, t.Name, t.Publisher, t.Price}
}
