package dataset

import (
	"os"
)

const (
	defaultDatasetPath    = "data/players.csv"
	defaultIndexDBPath    = "index/vectors.db"
	defaultCollectionName = "cricket_players"
)

type Env struct {
	DatasetPath    string
	IndexDBPath    string
	CollectionName string
}

func NewDatasetEnv() *Env {
	return &Env{}
}

func (d *Env) Populate() error {
	d.DatasetPath = defaultDatasetPath
	if path := os.Getenv("DATASET_PATH"); path != "" {
		d.DatasetPath = path
	}

	d.IndexDBPath = defaultIndexDBPath
	if path := os.Getenv("INDEX_DB_PATH"); path != "" {
		d.IndexDBPath = path
	}

	d.CollectionName = defaultCollectionName
	if name := os.Getenv("COLLECTION_NAME"); name != "" {
		d.CollectionName = name
	}

	return nil
}
