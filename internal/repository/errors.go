package repository

import "errors"

// Domain errors surfaced to services/handlers. Persistence failures are
// returned wrapped from the store and are not represented here.
var (
	ErrNotFound       = errors.New("registro no encontrado")
	ErrDuplicatePlate = errors.New("ya existe un vehiculo con esa placa")
)
