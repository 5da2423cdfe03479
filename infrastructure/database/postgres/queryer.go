package postgres

import (
	"database/sql"
)

// Queryer é o subconjunto de *sql.DB que os repositórios usam. Mantê-lo como
// interface permite trocar a conexão por uma transação ou um handle de teste.
type Queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}
