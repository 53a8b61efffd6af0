package entity

// IDs de los tipos de movimiento. Conjunto cerrado: una semántica nueva de
// movimiento implica lógica nueva de orquestación, no solo una fila más, así
// que el catálogo vive en código y se siembra en movement_types para que el
// libro mantenga la foreign key.
const (
	MovementTypeInitialEntry   int64 = 1 // Entrada inicial
	MovementTypePurchase       int64 = 2 // Compra (recepción física)
	MovementTypeSale           int64 = 3 // Venta
	MovementTypeAdjustmentPos  int64 = 4 // Ajuste positivo
	MovementTypeAdjustmentNeg  int64 = 5 // Ajuste negativo
	MovementTypeReservation    int64 = 6 // Reserva (solo stock)
	MovementTypeReservationRel int64 = 7 // Liberación de reserva (solo stock)
	MovementTypeLoss           int64 = 8 // Pérdida
)

// MovementType describe una categoría de movimiento y qué contadores puede
// tocar. AffectsQuantity/AffectsStock definen la forma del delta permitido;
// los orquestadores los consultan antes de aplicar cambios.
type MovementType struct {
	ID              int64
	Name            string
	AffectsQuantity bool
	AffectsStock    bool
	Description     string
}

// movementTypes es el catálogo completo, inmutable tras la siembra.
var movementTypes = []MovementType{
	{ID: MovementTypeInitialEntry, Name: "Entrada inicial", AffectsQuantity: true, AffectsStock: true, Description: "Alta de artículo con existencias iniciales"},
	{ID: MovementTypePurchase, Name: "Compra", AffectsQuantity: true, AffectsStock: true, Description: "Recepción de mercancía de proveedor"},
	{ID: MovementTypeSale, Name: "Venta", AffectsQuantity: true, AffectsStock: true, Description: "Salida por factura de venta"},
	{ID: MovementTypeAdjustmentPos, Name: "Ajuste positivo", AffectsQuantity: true, AffectsStock: true, Description: "Corrección manual al alza"},
	{ID: MovementTypeAdjustmentNeg, Name: "Ajuste negativo", AffectsQuantity: true, AffectsStock: true, Description: "Corrección manual a la baja"},
	{ID: MovementTypeReservation, Name: "Reserva", AffectsQuantity: false, AffectsStock: true, Description: "Aparta unidades disponibles sin salida física"},
	{ID: MovementTypeReservationRel, Name: "Liberación de reserva", AffectsQuantity: false, AffectsStock: true, Description: "Devuelve unidades reservadas al disponible"},
	{ID: MovementTypeLoss, Name: "Pérdida", AffectsQuantity: true, AffectsStock: true, Description: "Merma, daño o extravío"},
}

// MovementTypes devuelve el catálogo completo (copia, para que nadie lo mute).
func MovementTypes() []MovementType {
	out := make([]MovementType, len(movementTypes))
	copy(out, movementTypes)
	return out
}

// MovementTypeByID busca un tipo por id. Devuelve false si no existe.
func MovementTypeByID(id int64) (MovementType, bool) {
	for _, mt := range movementTypes {
		if mt.ID == id {
			return mt, true
		}
	}
	return MovementType{}, false
}
