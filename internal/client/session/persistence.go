package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/nexaboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/nexaboard/internal/dbx"
)

const (
	tokenCredential = "token"
	userMetadataKey = "user"
)

// Record is the persisted form of a session. Token is empty when the token
// was not remembered or has expired. User is nil when no identity is stored
// or the stored one cannot be decoded.
type Record struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// Persistence is the durable backing of a Store.
type Persistence interface {
	Load(ctx context.Context) (Record, error)
	// Save writes the identity and, when rec.Token is set, the token with
	// its expiry. An empty token removes any persisted one.
	Save(ctx context.Context, rec Record) error
	// Clear removes token and identity in one step.
	Clear(ctx context.Context) error
}

// SQLPersistence keeps the token in the credentials table and the identity
// under the "user" metadata key.
type SQLPersistence struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLPersistence(db *sql.DB) *SQLPersistence {
	return &SQLPersistence{db: db, now: time.Now}
}

// repos binds the repositories to a connection or a transaction.
type repos struct {
	metadata    metadata.Repository
	credentials credentials.Repository
}

func reposOn(db dbx.DBTX) repos {
	return repos{
		metadata:    metadata.NewSQLiteRepository(db),
		credentials: credentials.NewSQLiteRepository(db),
	}
}

func (p *SQLPersistence) Load(ctx context.Context) (Record, error) {
	var rec Record
	r := reposOn(p.db)

	token, err := r.credentials.Get(ctx, tokenCredential, p.now())
	if err != nil {
		return Record{}, err
	}
	rec.Token = token

	raw, err := r.metadata.Get(ctx, userMetadataKey)
	if err != nil {
		return Record{}, err
	}
	rec.User = decodeUser(raw)

	return rec, nil
}

func (p *SQLPersistence) Save(ctx context.Context, rec Record) error {
	if rec.User == nil {
		return fmt.Errorf("save session: no identity")
	}
	raw, err := json.Marshal(rec.User)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := reposOn(tx)
		if err := r.metadata.Set(ctx, userMetadataKey, raw); err != nil {
			return err
		}
		if rec.Token == "" {
			return r.credentials.Delete(ctx, tokenCredential)
		}
		return r.credentials.Set(ctx, tokenCredential, rec.Token, rec.ExpiresAt)
	})
}

func (p *SQLPersistence) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := reposOn(tx)
		if err := r.credentials.Delete(ctx, tokenCredential); err != nil {
			return err
		}
		return r.metadata.Delete(ctx, userMetadataKey)
	})
}

func decodeUser(raw []byte) *models.User {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil
	}
	return &u
}
