package repos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// KV is the durable string-valued store the commerce engine persists into.
// Implementations must treat a missing key as (value="", ok=false), not an error.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

type KVRepo struct{ db *sqlx.DB }

func NewKVRepo(db *sqlx.DB) *KVRepo { return &KVRepo{db: db} }

func (r *KVRepo) Get(key string) (string, bool, error) {
	var v string
	err := r.db.Get(&v, `SELECT value FROM client_store WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *KVRepo) Set(key, value string) error {
	_, err := r.db.Exec(`
	  INSERT INTO client_store(key,value,updated_at) VALUES(?,?,?)
	  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().Format(time.RFC3339))
	return err
}

func (r *KVRepo) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM client_store WHERE key = ?`, key)
	return err
}

// ScopedKV prefixes every key with a client/session namespace so no two
// clients can read or write each other's state.
type ScopedKV struct {
	kv     KV
	prefix string
}

func NewScopedKV(kv KV, scope string) *ScopedKV { return &ScopedKV{kv: kv, prefix: scope + ":"} }

func (s *ScopedKV) Get(key string) (string, bool, error) { return s.kv.Get(s.prefix + key) }
func (s *ScopedKV) Set(key, value string) error          { return s.kv.Set(s.prefix+key, value) }
func (s *ScopedKV) Delete(key string) error              { return s.kv.Delete(s.prefix + key) }
