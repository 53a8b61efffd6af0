package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/invorya/pos-ledger/internal/domain"
)

// Querier es la superficie común de *sql.DB y *sql.Tx que usa el Executor,
// de modo que los repositorios funcionen igual dentro o fuera de transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Valores por defecto del reintento: 3 intentos con backoff lineal desde 200ms.
const (
	DefaultRetryAttempts = 3
	DefaultRetryBackoff  = 200 * time.Millisecond
)

// Executor envuelve cada sentencia en un lazo de reintentos acotado que
// absorbe la clase "base de datos ocupada" (SQLITE_BUSY/SQLITE_LOCKED); todo
// otro fallo se propaga de inmediato. Es la única vía permitida hacia las
// tablas inventory e inventory_movements: los orquestadores no emiten SQL.
//
// Agotados los reintentos devuelve domain.ErrStorageContention; una violación
// de constraint devuelve domain.ErrStorageConstraint sin reintentar.
type Executor struct {
	q        Querier
	attempts int
	backoff  time.Duration
}

// NewExecutor construye el executor sobre un pool o una transacción.
// attempts <= 0 o backoff <= 0 aplican los valores por defecto.
func NewExecutor(q Querier, attempts int, backoff time.Duration) *Executor {
	if attempts <= 0 {
		attempts = DefaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}
	return &Executor{q: q, attempts: attempts, backoff: backoff}
}

// Exec ejecuta una sentencia de escritura con reintentos.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	err := e.retry(ctx, func() error {
		var err error
		res, err = e.q.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// QueryRowScan ejecuta una sentencia que devuelve una sola fila (incluidos
// UPDATE/INSERT ... RETURNING) y escanea en dest, con reintentos. Propaga
// sql.ErrNoRows tal cual para que el caller decida su significado.
func (e *Executor) QueryRowScan(ctx context.Context, query string, args []any, dest ...any) error {
	return e.retry(ctx, func() error {
		return e.q.QueryRowContext(ctx, query, args...).Scan(dest...)
	})
}

// Query ejecuta una consulta de varias filas con reintentos sobre la apertura
// del cursor. El caller es dueño de rows.Close().
func (e *Executor) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	var rows *sql.Rows
	err := e.retry(ctx, func() error {
		var err error
		rows, err = e.q.QueryContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// retry ejecuta fn hasta attempts veces con backoff lineal entre intentos.
// Solo la clase busy/locked reintenta; el resto se clasifica y propaga.
func (e *Executor) retry(ctx context.Context, fn func() error) error {
	var last error
	for attempt := 1; attempt <= e.attempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !isBusy(err) {
			return classify(err)
		}
		last = err
		if attempt == e.attempts {
			break
		}
		select {
		case <-time.After(time.Duration(attempt) * e.backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w (último error: %v)", domain.ErrStorageContention, last)
}

// classify traduce errores del driver a la taxonomía de dominio.
func classify(err error) error {
	if isConstraint(err) {
		return fmt.Errorf("%w (%v)", domain.ErrStorageConstraint, err)
	}
	return err
}
