package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Los tres primeros grupos son disjuntos a propósito: errores de negocio
// (validación, stock), errores de almacenamiento (contención, constraint)
// y errores de sesión. El caller decide qué es reintentable: contención sí,
// constraint y validación no.
var (
	// Negocio
	ErrValidation        = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrItemInactive      = errors.New("artículo inactivo")
	ErrDocumentCancelled = errors.New("el documento ya fue anulado")
	ErrLedgerConflict    = errors.New("existen movimientos posteriores sobre el artículo")

	// Almacenamiento
	ErrStorageContention = errors.New("base de datos ocupada, reintentos agotados")
	ErrStorageConstraint = errors.New("violación de constraint en base de datos")

	// Sesión
	ErrUnauthenticated = errors.New("no hay usuario autenticado")
)
