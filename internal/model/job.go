package model

import "time"

// Job statuses (órdenes de trabajo).
const (
	StatusAbierto   = "abierto"
	StatusEnProceso = "en_proceso"
	StatusListo     = "listo"
	StatusEntregado = "entregado"
	StatusPausado   = "pausado"
)

// ValidStatus reports whether s is one of the known job statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusAbierto, StatusEnProceso, StatusListo, StatusEntregado, StatusPausado:
		return true
	}
	return false
}

// Checklist is the fixed vehicle-intake inventory: which accessories the
// vehicle arrived with. The field set matches the paper intake form.
type Checklist struct {
	Antenas       bool `json:"antenas"`
	Botiquin      bool `json:"botiquin"`
	Documentos    bool `json:"documentos"`
	Encendedor    bool `json:"encendedor"`
	Extintor      bool `json:"extintor"`
	Gato          bool `json:"gato"`
	Herramientas  bool `json:"herramientas"`
	Llave1        bool `json:"llave1"`
	Llave2        bool `json:"llave2"`
	LlaveRueda    bool `json:"llave_rueda"`
	Pisos         bool `json:"pisos"`
	RuedaRepuesto bool `json:"rueda_repuesto"`
	Tag           bool `json:"tag"`
	Tapas         bool `json:"tapas"`
	Triangulos    bool `json:"triangulos"`
}

// Job is a work order (OT). DeliveryDate is set only while the job is in
// status "entregado".
type Job struct {
	ID           int        `json:"id"`
	VehicleID    int        `json:"vehicle_id"`
	MechanicID   int        `json:"mechanic_id"`
	Reason       string     `json:"reason"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	IntakeDate   time.Time  `json:"intake_date"`
	DeliveryDate *time.Time `json:"delivery_date"`
	OdometerKm   *int       `json:"odometer_km"`
	FuelLevel    string     `json:"fuel_level"`
	Checklist    Checklist  `json:"checklist"`
}
