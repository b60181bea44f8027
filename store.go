package scene

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mitchellh/go-homedir"
)

const (
	sqlCreateBlobs = `CREATE TABLE IF NOT EXISTS blobs(
		key TEXT PRIMARY KEY,
		data TEXT NOT NULL
	    );`
	sqlGetBlob    = `SELECT key, data FROM blobs WHERE key=:key LIMIT 1;`
	sqlListBlobs  = `SELECT key FROM blobs WHERE key LIKE :prefix ORDER BY key;`
	sqlUpdateBlob = `INSERT INTO blobs (key, data) VALUES (:key, :data) ON CONFLICT (key) DO UPDATE SET data=EXCLUDED.data;`
)

// dbBlob is a single row of the blobs table
type dbBlob struct {
	Key  string `db:"key"`
	Data string `db:"data"`
}

// SQLStore is a Storage kept in a SQL database, either sqlite3 (a local
// file) or postgres.
type SQLStore struct {
	db *sqlx.DB
}

// OpenSQLStore connects to the database with the given driver ("sqlite3" or
// "postgres") & creates our table if it doesn't exist.
// For sqlite3 the dsn is a file path (~ is expanded).
func OpenSQLStore(driver, dsn string) (*SQLStore, error) {
	switch driver {
	case "sqlite3":
		var err error
		dsn, err = homedir.Expand(dsn)
		if err != nil {
			return nil, err
		}
	case "postgres":
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	s := &SQLStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// init creates the blobs table
func (s *SQLStore) init() error {
	_, err := s.db.Exec(sqlCreateBlobs)
	return err
}

// Get implements Storage
func (s *SQLStore) Get(key string) ([]byte, error) {
	rows, err := s.db.NamedQuery(sqlGetBlob, map[string]interface{}{"key": key})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blob := dbBlob{}
	found := false
	for rows.Next() { // at most one due to LIMIT 1
		if err := rows.StructScan(&blob); err != nil {
			return nil, err
		}
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return []byte(blob.Data), nil
}

// Put implements Storage
func (s *SQLStore) Put(key string, data []byte) error {
	_, err := s.db.NamedExec(sqlUpdateBlob, dbBlob{Key: key, Data: string(data)})
	return err
}

// List implements Storage
func (s *SQLStore) List(prefix string) ([]string, error) {
	rows, err := s.db.NamedQuery(sqlListBlobs, map[string]interface{}{"prefix": escapeLike(prefix) + "%"})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		if strings.HasPrefix(key, prefix) { // LIKE can be case insensitive
			keys = append(keys, key)
		}
	}
	return keys, rows.Err()
}

// Close implements Storage
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// escapeLike strips LIKE wildcards from a prefix.
// Keys that contained them are filtered again in List.
func escapeLike(in string) string {
	return strings.NewReplacer("%", "_", "\\", "_").Replace(in)
}

// MemoryStore is a Storage that lives only as long as the process
type MemoryStore struct {
	lock sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

// Get implements Storage
func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return bytes.Clone(data), nil
}

// Put implements Storage
func (m *MemoryStore) Put(key string, data []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.data[key] = bytes.Clone(data)
	return nil
}

// List implements Storage
func (m *MemoryStore) List(prefix string) ([]string, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	keys := []string{}
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements Storage
func (m *MemoryStore) Close() error {
	return nil
}

// ProjectStore saves projects to a Storage under "<namespace>/<name>"
type ProjectStore struct {
	storage   Storage
	namespace string
}

// NewProjectStore returns a ProjectStore writing into `storage`
func NewProjectStore(storage Storage, namespace string) *ProjectStore {
	return &ProjectStore{storage: storage, namespace: namespace}
}

func (ps *ProjectStore) key(name string) string {
	return ps.namespace + "/" + name
}

// Save a project under the given name
func (ps *ProjectStore) Save(name string, p *Project) error {
	buff := bytes.Buffer{}
	if err := p.Encode(&buff); err != nil {
		return err
	}
	return ps.storage.Put(ps.key(name), buff.Bytes())
}

// Load the project saved under name. Missing projects return an error
// wrapping ErrNotFound.
func (ps *ProjectStore) Load(name string) (*Project, error) {
	data, err := ps.storage.Get(ps.key(name))
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewBuffer(data))
}

// List the names of all saved projects
func (ps *ProjectStore) List() ([]string, error) {
	prefix := ps.key("")
	keys, err := ps.storage.List(prefix)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = strings.TrimPrefix(k, prefix)
	}
	return names, nil
}
