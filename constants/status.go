package constants

// Estado de reserva
const (
	ReservationStatusPending   = 0
	ReservationStatusConfirmed = 1
	ReservationStatusCompleted = 2
	ReservationStatusCancelled = 3
	ReservationStatusNoShow    = 4
)

// Plataforma de origen de la reserva
const (
	PlatformAirbnb  = "AIRBNB"
	PlatformBooking = "BOOKING"
	PlatformVrbo    = "VRBO"
	PlatformDirect  = "DIRECT"
	PlatformOther   = "OTHER"
)

// Tipo de comisión y de limpieza
const (
	ChargeTypePercentage          = "PERCENTAGE"
	ChargeTypeFixedPerReservation = "FIXED_PER_RESERVATION"
	ChargeTypePerNight            = "PER_NIGHT"
)

// Receptor de los cobros de las OTAs
const (
	IncomeReceiverManager = "MANAGER"
	IncomeReceiverOwner   = "OWNER"
)

// Tipo fiscal del propietario
const (
	OwnerTypePersonaFisica = "PERSONA_FISICA"
	OwnerTypeEmpresa       = "EMPRESA"
)

// Modo de liquidación
const (
	LiquidationModeGroup      = "GROUP"
	LiquidationModeIndividual = "INDIVIDUAL"
)

// Roles de usuario
const (
	RoleAdmin   = 1
	RoleManager = 2
)

// Estado de usuario
const (
	UserStatusInactive = 0
	UserStatusActive   = 1
)
