package database

import (
	"database/sql"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"
)

// DriverName is the mattn driver registered with the reader's SQL functions.
const DriverName = "sqlite3_biblereader"

// FoldFunc lowers text with Unicode case rules. SQLite's LOWER and LIKE
// only fold ASCII, so every case-insensitive match goes through it.
const FoldFunc = "ulower"

var registerDriver sync.Once

func registerSQLiteDriver() {
	registerDriver.Do(func() {
		sql.Register(DriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc(FoldFunc, strings.ToLower, true)
			},
		})
	})
}
