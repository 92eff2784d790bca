package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"vacarent/constants"
)

// columnAliases mapea cada concepto a las etiquetas de columna con las
// que aparece en las distintas revisiones de los exports. Dar soporte a
// un formato nuevo es añadir alias aquí, no tocar código.
var columnAliases = map[string][]string{
	"confirmationCode": {"Código de confirmación", "Codigo de confirmacion", "Confirmation code", "Confirmation Code", "Referencia", "Reservation ID", "Código"},
	"guestName":        {"Nombre del huésped", "Nombre del cliente", "Guest name", "Guest Name", "Huésped", "Cliente", "Booked by"},
	"checkIn":          {"Entrada", "Fecha de entrada", "Check-in", "Check in", "Start date", "Llegada", "Arrival"},
	"checkOut":         {"Salida", "Fecha de salida", "Check-out", "Check out", "End date", "Departure"},
	"nights":           {"Noches", "# de noches", "Nights", "N. noches", "Length of stay"},
	"status":           {"Estado", "Estado de la reserva", "Status", "Reservation status"},
	"roomTotal":        {"Importe", "Ingresos", "Precio", "Amount", "Room total", "Total payout", "Earnings", "Ganancia bruta"},
	"platformFee":      {"Comisión", "Comision", "Service fee", "Host service fee", "Comisión de servicio", "Commission amount"},
	"cleaningFee":      {"Limpieza", "Tarifa de limpieza", "Cleaning fee", "Gastos de limpieza"},
	"unitLabel":        {"Alojamiento", "Propiedad", "Unidad", "Listing", "Property name", "Nombre del anuncio", "Apartamento"},
	"platform":         {"Plataforma", "Canal", "Platform", "Channel", "Source"},
}

// Estados del export que equivalen a una cancelación aunque no
// contengan la palabra "cancel".
var cancelledTokens = []string{"no_show", "no-show", "noshow", "anulada", "anulado"}

// ImportedReservation es la forma canónica de una fila ya interpretada,
// previa a casarla con un alojamiento y persistirla.
type ImportedReservation struct {
	ConfirmationCode   string
	GuestName          string
	CheckIn            time.Time
	CheckOut           time.Time
	Nights             int
	Platform           string
	Status             int
	RoomTotal          decimal.Decimal
	PlatformCommission decimal.Decimal
	HostEarnings       decimal.Decimal
	CleaningFee        decimal.Decimal
	Currency           string
	UnitLabel          string

	// Avisos de parseo leniente (importes ilegibles convertidos en 0)
	// para que el 0 silencioso quede a la vista en el resultado.
	Warnings []string
}

// FindValue busca en la fila la primera columna cuyo nombre coincida con
// la lista de alias; primero por igualdad exacta y después sin
// distinguir mayúsculas.
func FindValue(row Row, aliases []string) (string, bool) {
	for _, alias := range aliases {
		if v, ok := row[alias]; ok {
			return v, true
		}
	}
	for _, alias := range aliases {
		for key, v := range row {
			if strings.EqualFold(strings.TrimSpace(key), alias) {
				return v, true
			}
		}
	}
	return "", false
}

func findConcept(row Row, concept string) string {
	v, _ := FindValue(row, columnAliases[concept])
	return v
}

// MapRow interpreta una fila normalizada. Devuelve skip=true para las
// filas sin consecuencia económica (canceladas sin ingresos), que se
// cuentan como omitidas y no como error.
func MapRow(row Row, now time.Time) (*ImportedReservation, bool, error) {
	res := &ImportedReservation{}

	res.ConfirmationCode = strings.TrimSpace(findConcept(row, "confirmationCode"))
	if res.ConfirmationCode == "" {
		return nil, false, fmt.Errorf("la fila no tiene código de confirmación")
	}
	res.GuestName = strings.TrimSpace(findConcept(row, "guestName"))

	checkIn := ParseDate(findConcept(row, "checkIn"))
	if checkIn == nil {
		return nil, false, fmt.Errorf("fecha de entrada no válida: %q", findConcept(row, "checkIn"))
	}
	checkOut := ParseDate(findConcept(row, "checkOut"))
	if checkOut == nil {
		return nil, false, fmt.Errorf("fecha de salida no válida: %q", findConcept(row, "checkOut"))
	}
	if !checkOut.After(*checkIn) {
		return nil, false, fmt.Errorf("la fecha de salida debe ser posterior a la de entrada")
	}
	res.CheckIn = *checkIn
	res.CheckOut = *checkOut

	res.Nights = resolveNights(findConcept(row, "nights"), *checkIn, *checkOut)

	roomTotalText := findConcept(row, "roomTotal")
	roomTotal, currency := ParseAmountWithCurrency(roomTotalText)
	res.warnSilentZero("importe", roomTotalText, roomTotal)
	res.RoomTotal = roomTotal
	res.Currency = currency

	feeText := findConcept(row, "platformFee")
	res.PlatformCommission = ParseAmount(feeText)
	res.warnSilentZero("comisión", feeText, res.PlatformCommission)
	// Lo que la OTA abona al anfitrión, antes de la comisión del gestor
	res.HostEarnings = roomTotal.Sub(res.PlatformCommission)

	cleaningText := findConcept(row, "cleaningFee")
	res.CleaningFee = ParseAmount(cleaningText)
	res.warnSilentZero("limpieza", cleaningText, res.CleaningFee)
	res.UnitLabel = strings.TrimSpace(findConcept(row, "unitLabel"))
	res.Platform = classifyPlatform(findConcept(row, "platform"))
	res.Status = classifyStatus(findConcept(row, "status"), *checkOut, now)

	// Una cancelación sin ingresos no se importa
	if res.Status == constants.ReservationStatusCancelled && !res.HostEarnings.IsPositive() {
		return res, true, nil
	}

	return res, false, nil
}

// resolveNights prefiere la columna de noches del export; si falta o no
// es numérica, deriva el número de días entre entrada y salida.
func resolveNights(text string, checkIn, checkOut time.Time) int {
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		if n, err := strconv.Atoi(trimmed); err == nil && n >= 0 {
			return n
		}
	}
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// classifyStatus normaliza el estado textual del export. Un estado de
// tipo "ok" es COMPLETED si la salida ya pasó y CONFIRMED si no.
func classifyStatus(text string, checkOut, now time.Time) int {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if strings.Contains(normalized, "cancel") {
		return constants.ReservationStatusCancelled
	}
	for _, token := range cancelledTokens {
		if normalized == token {
			return constants.ReservationStatusCancelled
		}
	}

	if checkOut.Before(now) {
		return constants.ReservationStatusCompleted
	}
	return constants.ReservationStatusConfirmed
}

func classifyPlatform(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(normalized, "airbnb"):
		return constants.PlatformAirbnb
	case strings.Contains(normalized, "booking"):
		return constants.PlatformBooking
	case strings.Contains(normalized, "vrbo"), strings.Contains(normalized, "homeaway"):
		return constants.PlatformVrbo
	case strings.Contains(normalized, "direct"), strings.Contains(normalized, "directa"):
		return constants.PlatformDirect
	case normalized == "":
		return constants.PlatformOther
	default:
		return constants.PlatformOther
	}
}

// warnSilentZero deja aviso cuando un texto no vacío se quedó en 0 por
// el parseo leniente, para que no se confunda con un cero real.
func (r *ImportedReservation) warnSilentZero(field, text string, value decimal.Decimal) {
	if value.IsZero() && strings.TrimSpace(text) != "" && !isZeroText(text) {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%s ilegible %q interpretado como 0", field, text))
	}
}

func isZeroText(text string) bool {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", "."), 64)
	return err == nil && v == 0
}
