// Package models holds the GORM table mappings for catalog and marketing
// records. Domain types carry no ORM tags; each model converts to and from
// its domain type with ToDomain and a From* constructor.
package models
