package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
)

// RecordKey is the metadata key holding the persisted session. Its absence
// means logged out.
const RecordKey = "auth_session"

// Store is the durable home of the session across restarts. It has no expiry
// of its own.
type Store interface {
	Save(ctx context.Context, s models.Session) error
	// Load returns (nil, nil) when nothing is stored. A stored record is
	// returned as is, even if only half of it is present; judging it is the
	// Manager's job.
	Load(ctx context.Context) (*models.Session, error)
	Clear(ctx context.Context) error
}

// MetadataStore keeps the session as one JSON record under RecordKey in the
// sqlite metadata table.
type MetadataStore struct {
	db      *sql.DB
	records func(dbx.DBTX) metadata.Repository
}

func NewMetadataStore(db *sql.DB) *MetadataStore {
	return &MetadataStore{db: db, records: sqliteRecords}
}

func sqliteRecords(q dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(q)
}

func (s *MetadataStore) Save(ctx context.Context, sess models.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.records(tx).Set(ctx, RecordKey, b)
	})
}

func (s *MetadataStore) Load(ctx context.Context) (*models.Session, error) {
	b, err := s.records(s.db).Get(ctx, RecordKey)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	var sess models.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return &sess, nil
}

func (s *MetadataStore) Clear(ctx context.Context) error {
	return s.records(s.db).Delete(ctx, RecordKey)
}
