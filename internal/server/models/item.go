package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Signal item types with server-side write policies.
const (
	TypeTrigger = "trigger"
	TypeList    = "list"
)

// Item is a named, owned signal record. The (owner, name) pair is unique
// within a collection; writes upsert on that key. Data only grows, except
// for the initial payload when a list item is first created.
type Item struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Owner      string             `bson:"owner" json:"owner"`
	Name       string             `bson:"name" json:"name"`
	Type       string             `bson:"type,omitempty" json:"type,omitempty"`
	Desc       string             `bson:"desc,omitempty" json:"desc,omitempty"`
	CreateDate time.Time          `bson:"create_date,omitempty" json:"create_date,omitempty"`
	LastUpdate time.Time          `bson:"last_update,omitempty" json:"last_update,omitempty"`
	Data       []any              `bson:"data" json:"data"`
}

// Reading is one appended trigger observation.
type Reading struct {
	Value    any       `bson:"value" json:"value"`
	Date     time.Time `bson:"date" json:"date"`
	Location string    `bson:"location" json:"location"`
}

// Summary is the per-item projection returned by collection listings:
// document counts plus the set of distinct value-type tags observed in the
// data array.
type Summary struct {
	Owner      string    `bson:"owner" json:"owner"`
	Name       string    `bson:"name" json:"name"`
	CreateDate time.Time `bson:"create_date,omitempty" json:"create_date,omitempty"`
	LastUpdate time.Time `bson:"last_update,omitempty" json:"last_update,omitempty"`
	Count      int       `bson:"count" json:"count"`
	Types      []string  `bson:"types" json:"types"`
}

// Template describes an available signal source template shown to clients
// when they browse creatable collections.
type Template struct {
	Name string `bson:"name" json:"name"`
	Type string `bson:"type" json:"type"`
	Desc string `bson:"desc,omitempty" json:"desc,omitempty"`
}
