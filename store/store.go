/*
Package store keeps an SQLite index of regression results
*/
package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go-ml.dev/pkg/vacancy/fu"
	"go-ml.dev/pkg/vacancy/model"
	"golang.org/x/xerrors"
)

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL UNIQUE,
	charge       TEXT NOT NULL,
	regressor    TEXT NOT NULL,
	random_state INTEGER NOT NULL,
	train_size   INTEGER NOT NULL,
	test_size    INTEGER NOT NULL,
	rmse_train   REAL NOT NULL,
	mae_train    REAL NOT NULL,
	r2_train     REAL NOT NULL,
	rmse_test    REAL NOT NULL,
	mae_test     REAL NOT NULL,
	r2_test      REAL NOT NULL,
	digest       TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	record       TEXT NOT NULL
)`

/*
Run is a row of the index
*/
type Run struct {
	ID        string
	Name      string
	Charge    string
	Digest    string // dataset digest
	CreatedAt time.Time
	*model.Statistics
}

/*
Index is an SQLite database of runs
*/
type Index struct {
	db *sql.DB
}

/*
Open opens or creates the index database and its directory.
Use ":memory:" for a transient index
*/
func Open(path string) (*Index, error) {
	if path != ":memory:" {
		if err := fu.EnsureDir(path); err != nil {
			return nil, xerrors.Errorf("open index: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, xerrors.Errorf("open index: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, xerrors.Errorf("create index schema: %w", err)
	}
	return &Index{db: db}, nil
}

func (x *Index) Close() error {
	return x.db.Close()
}

/*
Put inserts the run or replaces a run with the same name
*/
func (x *Index) Put(r Run) (string, error) {
	b, err := r.ToStorage()
	if err != nil {
		return "", err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err = x.db.Exec(
		`INSERT OR REPLACE INTO runs (id, name, charge, regressor, random_state, train_size, test_size,
			rmse_train, mae_train, r2_train, rmse_test, mae_test, r2_test, digest, created_at, record)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Charge, string(r.Regressor), r.RandomState, r.TrainSize, r.TestSize,
		r.RmseTrain, r.MaeTrain, r.R2Train, r.RmseTest, r.MaeTest, r.R2Test,
		r.Digest, r.CreatedAt.Format(time.RFC3339Nano), string(b),
	)
	if err != nil {
		return "", xerrors.Errorf("put run %v: %w", r.Name, err)
	}
	return r.ID, nil
}

const columns = `id, name, charge, digest, created_at, record`

func scan(rows interface{ Scan(...interface{}) error }) (Run, error) {
	var r Run
	var created, record string
	if err := rows.Scan(&r.ID, &r.Name, &r.Charge, &r.Digest, &created, &record); err != nil {
		return r, err
	}
	var err error
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return r, xerrors.Errorf("run %v created_at: %w", r.Name, err)
	}
	if r.Statistics, err = model.FromStorage([]byte(record)); err != nil {
		return r, xerrors.Errorf("run %v: %w", r.Name, err)
	}
	return r, nil
}

/*
Get returns the run by name, sql.ErrNoRows is wrapped if it does not exist
*/
func (x *Index) Get(name string) (Run, error) {
	r, err := scan(x.db.QueryRow(`SELECT `+columns+` FROM runs WHERE name = ?`, name))
	if err != nil {
		return r, xerrors.Errorf("get run %v: %w", name, err)
	}
	return r, nil
}

func (x *Index) query(q string, args ...interface{}) ([]Run, error) {
	rows, err := x.db.Query(q, args...)
	if err != nil {
		return nil, xerrors.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	var r []Run
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		r = append(r, v)
	}
	return r, rows.Err()
}

/*
List returns all runs ordered by name
*/
func (x *Index) List() ([]Run, error) {
	return x.query(`SELECT ` + columns + ` FROM runs ORDER BY name`)
}

var metrics = map[string]string{
	"rmse_test": "rmse_test ASC",
	"mae_test":  "mae_test ASC",
	"r2_test":   "r2_test DESC",
}

/*
Best returns the best run of the charge subset by a test metric:
rmse_test, mae_test or r2_test
*/
func (x *Index) Best(charge, metric string) (Run, error) {
	order, ok := metrics[metric]
	if !ok {
		return Run{}, model.Misconfigured("unknown metric `%v`", metric)
	}
	rs, err := x.query(`SELECT `+columns+` FROM runs WHERE charge = ? ORDER BY `+order+`, name LIMIT 1`, charge)
	if err != nil {
		return Run{}, err
	}
	if len(rs) == 0 {
		return Run{}, xerrors.Errorf("no runs for charge %v: %w", charge, sql.ErrNoRows)
	}
	return rs[0], nil
}
