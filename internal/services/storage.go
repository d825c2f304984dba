package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jira-dashboard/internal/common"
	"jira-dashboard/internal/interfaces"
	"jira-dashboard/internal/models"

	bolt "go.etcd.io/bbolt"
)

const (
	snapshotBucket = "snapshot"
	metadataBucket = "metadata"

	latestSnapshotKey = "latest"
	filterResultsKey  = "filters"
	lastCollectionKey = "last_collection"
)

type storage struct {
	db *bolt.DB
}

// NewStorage opens the bbolt database and creates the buckets.
func NewStorage(config *common.StorageConfig) (interfaces.Storage, error) {
	dbDir := filepath.Dir(config.DatabasePath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(config.DatabasePath, 0600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(snapshotBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(metadataBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &storage{db: db}, nil
}

func (s *storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *storage) SaveSnapshot(snapshot *models.IssueSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return common.WrapError(err, common.ErrorTypeStorage, "marshal_snapshot", "failed to marshal snapshot")
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(snapshotBucket)).Put([]byte(latestSnapshotKey), data); err != nil {
			return err
		}
		now, _ := time.Now().MarshalBinary()
		return tx.Bucket([]byte(metadataBucket)).Put([]byte(lastCollectionKey), now)
	})
}

func (s *storage) LoadSnapshot() (*models.IssueSnapshot, error) {
	var snapshot *models.IssueSnapshot

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(snapshotBucket)).Get([]byte(latestSnapshotKey))
		if data == nil {
			return nil
		}
		snapshot = &models.IssueSnapshot{}
		return json.Unmarshal(data, snapshot)
	})
	if err != nil {
		return nil, common.WrapError(err, common.ErrorTypeStorage, "load_snapshot", "failed to load snapshot")
	}

	return snapshot, nil
}

func (s *storage) SaveFilterResults(filters map[string]models.FilterResult) error {
	data, err := json.Marshal(filters)
	if err != nil {
		return common.WrapError(err, common.ErrorTypeStorage, "marshal_filters", "failed to marshal filter results")
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(snapshotBucket)).Put([]byte(filterResultsKey), data)
	})
}

func (s *storage) LoadFilterResults() (map[string]models.FilterResult, error) {
	filters := make(map[string]models.FilterResult)

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(snapshotBucket)).Get([]byte(filterResultsKey))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &filters)
	})
	if err != nil {
		return nil, common.WrapError(err, common.ErrorTypeStorage, "load_filters", "failed to load filter results")
	}

	return filters, nil
}

func (s *storage) GetLastCollection() (string, error) {
	var last time.Time

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(metadataBucket)).Get([]byte(lastCollectionKey))
		if data == nil {
			return nil
		}
		return last.UnmarshalBinary(data)
	})
	if err != nil {
		return "", err
	}

	if last.IsZero() {
		return "", nil
	}
	return last.Format("2006-01-02 15:04"), nil
}
