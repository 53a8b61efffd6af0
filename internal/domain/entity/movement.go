package entity

import "time"

// Tipos de referencia: documento de negocio que originó el movimiento.
const (
	ReferenceInvoice              = "invoice"
	ReferencePurchase             = "purchase"
	ReferenceInvoiceCancellation  = "invoice_cancellation"
	ReferencePurchaseCancellation = "purchase_cancellation"
)

// Movement es un hecho inmutable del libro de movimientos: captura el delta
// aplicado a cada contador y el valor de ambos contadores antes y después,
// tal como existían en el instante de la escritura.
//
// Invariante: NewQuantity = PreviousQuantity + QuantityChange y
// NewStock = PreviousStock + StockChange. Una fila jamás se actualiza ni se
// borra; las correcciones se hacen agregando un movimiento compensatorio.
type Movement struct {
	ID               int64
	ItemID           int64
	MovementTypeID   int64
	QuantityChange   int64 // delta con signo sobre quantity
	StockChange      int64 // delta con signo sobre stock
	PreviousQuantity int64
	NewQuantity      int64
	PreviousStock    int64
	NewStock         int64
	UserID           int64
	ReferenceID      *int64 // documento de negocio que lo causó, si aplica
	ReferenceType    string
	Notes            string
	CreatedAt        time.Time
}

// MovementFilter restringe listados del libro por rango de fechas, tipo de
// movimiento o usuario. Los punteros en nil no filtran.
type MovementFilter struct {
	From           *time.Time
	To             *time.Time
	MovementTypeID *int64
	UserID         *int64
	Limit          int
	Offset         int
}
