package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vacarent/constants"
	"vacarent/models"
	"vacarent/services/logger"
)

// fakeImportStore guarda en memoria lo que el orquestador persiste
type fakeImportStore struct {
	properties   []Property
	units        map[uint]*models.BillingUnit
	configs      map[uint]*models.PropertyBillingConfig
	existing     map[string]bool
	reservations []*models.Reservation
	logs         []*models.ImportLog
}

func newFakeStore() *fakeImportStore {
	unit1, unit2 := uint(1), uint(2)
	config10 := uint(10)
	return &fakeImportStore{
		properties: []Property{
			{UnitID: &unit1, Name: "Piso Centro Málaga"},
			{UnitID: &unit2, Name: "Ático Playa"},
			{ConfigID: &config10, Name: "Casa Rural El Olivo"},
		},
		units: map[uint]*models.BillingUnit{
			1: {
				ID:              1,
				Name:            "Piso Centro Málaga",
				CommissionType:  strPtr(constants.ChargeTypePercentage),
				CommissionValue: decPtr("15"),
				CleaningType:    strPtr(constants.ChargeTypeFixedPerReservation),
				CleaningValue:   decPtr("50"),
			},
			2: {ID: 2, Name: "Ático Playa"},
		},
		configs: map[uint]*models.PropertyBillingConfig{
			10: {ID: 10, PropertyName: "Casa Rural El Olivo", CommissionValue: decPtr("20")},
		},
		existing: map[string]bool{},
	}
}

func (f *fakeImportStore) Properties() ([]Property, error) { return f.properties, nil }

func (f *fakeImportStore) UnitByID(id uint) (*models.BillingUnit, error) {
	return f.units[id], nil
}

func (f *fakeImportStore) ConfigByID(id uint) (*models.PropertyBillingConfig, error) {
	return f.configs[id], nil
}

func (f *fakeImportStore) IsDuplicate(platform, code string, unitID, configID *uint) (bool, error) {
	return f.existing[platform+"/"+code], nil
}

func (f *fakeImportStore) SaveReservation(r *models.Reservation) error {
	f.reservations = append(f.reservations, r)
	return nil
}

func (f *fakeImportStore) SaveLog(l *models.ImportLog) error {
	f.logs = append(f.logs, l)
	return nil
}

func testImportService(store ImportStore) *ImportService {
	return newImportServiceWithStore(store, logger.NewDefaultLogger(logger.ErrorLevel), DefaultBilling())
}

func importCSV(header string, rows ...string) []byte {
	out := header + "\n"
	for _, r := range rows {
		out += r + "\n"
	}
	return []byte(out)
}

const importHeader = "Código de confirmación,Entrada,Salida,Noches,Estado,Importe,Comisión,Alojamiento,Plataforma"

func TestImportReservations(t *testing.T) {
	ctx := context.Background()

	t.Run("fila válida con reparto calculado", func(t *testing.T) {
		store := newFakeStore()
		svc := testImportService(store)

		data := importCSV(importHeader,
			`HM001,2025-05-10,2025-05-13,3,ok,"1.100,00","100,00",Piso Centro Málaga,Airbnb`)
		result, err := svc.ImportReservations(ctx, ImportOptions{Filename: "reservas.csv", Data: data, SkipDuplicates: true})
		require.NoError(t, err)

		assert.Equal(t, 1, result.TotalRows)
		assert.Equal(t, 1, result.ImportedCount)
		assert.Equal(t, 0, result.ErrorCount)

		require.Len(t, store.reservations, 1)
		saved := store.reservations[0]
		assert.Equal(t, "HM001", saved.ConfirmationCode)
		require.NotNil(t, saved.BillingUnitID)
		assert.Equal(t, uint(1), *saved.BillingUnitID)
		assert.Equal(t, "1000", saved.HostEarnings.String())
		// comisión del 15% sobre 950 (neto de limpieza fija de 50)
		assert.Equal(t, "142.5", saved.ManagerAmount.String())
		assert.Equal(t, "857.5", saved.OwnerAmount.String())
	})

	t.Run("mezcla de filas: importada, omitida y con error", func(t *testing.T) {
		store := newFakeStore()
		svc := testImportService(store)

		data := importCSV(importHeader,
			`HM001,2025-05-10,2025-05-13,3,ok,1000,0,Atico Playa,Airbnb`,
			`HM002,2025-05-11,2025-05-12,1,cancelled,0,0,Atico Playa,Airbnb`,
			`HM003,fecha-rota,2025-05-13,3,ok,1000,0,Atico Playa,Airbnb`)
		result, err := svc.ImportReservations(ctx, ImportOptions{Filename: "reservas.csv", Data: data})
		require.NoError(t, err)

		assert.Equal(t, 3, result.TotalRows)
		assert.Equal(t, 1, result.ImportedCount)
		assert.Equal(t, 1, result.SkippedCount)
		assert.Equal(t, 1, result.ErrorCount)
		require.Len(t, result.Errors, 1)
		// la fila 1 es la cabecera, HM003 va en la cuarta línea
		assert.Equal(t, 4, result.Errors[0].Row)
	})

	t.Run("duplicados omitidos solo si se pide", func(t *testing.T) {
		store := newFakeStore()
		store.existing["AIRBNB/HM001"] = true
		svc := testImportService(store)

		data := importCSV(importHeader,
			`HM001,2025-05-10,2025-05-13,3,ok,1000,0,Piso Centro,Airbnb`)

		result, err := svc.ImportReservations(ctx, ImportOptions{Filename: "reservas.csv", Data: data, SkipDuplicates: true})
		require.NoError(t, err)
		assert.Equal(t, 1, result.SkippedCount)
		assert.Empty(t, store.reservations)

		result, err = svc.ImportReservations(ctx, ImportOptions{Filename: "reservas.csv", Data: data, SkipDuplicates: false})
		require.NoError(t, err)
		assert.Equal(t, 1, result.ImportedCount)
		assert.Len(t, store.reservations, 1)
	})

	t.Run("etiquetas sin casar, sin repetir y ordenadas", func(t *testing.T) {
		store := newFakeStore()
		svc := testImportService(store)

		data := importCSV(importHeader,
			`HM001,2025-05-10,2025-05-13,3,ok,1000,0,Villa Desconocida,Airbnb`,
			`HM002,2025-05-10,2025-05-13,3,ok,1000,0,Villa Desconocida,Airbnb`,
			`HM003,2025-05-10,2025-05-13,3,ok,1000,0,Chalet Sin Alta,Airbnb`)
		result, err := svc.ImportReservations(ctx, ImportOptions{Filename: "reservas.csv", Data: data})
		require.NoError(t, err)

		assert.Equal(t, 3, result.ErrorCount)
		assert.Equal(t, []string{"Chalet Sin Alta", "Villa Desconocida"}, result.UnmatchedUnits)
	})

	t.Run("alojamiento por defecto como último recurso", func(t *testing.T) {
		store := newFakeStore()
		svc := testImportService(store)
		defaultUnit := uint(2)

		data := importCSV(importHeader,
			`HM001,2025-05-10,2025-05-13,3,ok,1000,0,Villa Desconocida,Airbnb`,
			`HM002,2025-05-10,2025-05-13,3,ok,1000,0,,Airbnb`)
		result, err := svc.ImportReservations(ctx, ImportOptions{
			Filename:      "reservas.csv",
			Data:          data,
			DefaultUnitID: &defaultUnit,
		})
		require.NoError(t, err)

		assert.Equal(t, 2, result.ImportedCount)
		// la etiqueta sin casar se registra aunque haya fallback
		assert.Equal(t, []string{"Villa Desconocida"}, result.UnmatchedUnits)
		require.Len(t, store.reservations, 2)
		for _, r := range store.reservations {
			require.NotNil(t, r.BillingUnitID)
			assert.Equal(t, uint(2), *r.BillingUnitID)
		}
	})

	t.Run("alojamiento por defecto inexistente aborta", func(t *testing.T) {
		store := newFakeStore()
		svc := testImportService(store)
		missing := uint(99)

		data := importCSV(importHeader,
			`HM001,2025-05-10,2025-05-13,3,ok,1000,0,Piso Centro,Airbnb`)
		_, err := svc.ImportReservations(ctx, ImportOptions{
			Filename:      "reservas.csv",
			Data:          data,
			DefaultUnitID: &missing,
		})
		assert.Error(t, err)
	})

	t.Run("reserva casada con configuración antigua", func(t *testing.T) {
		store := newFakeStore()
		svc := testImportService(store)

		data := importCSV(importHeader,
			`HM001,2025-05-10,2025-05-13,3,ok,1000,0,Casa Rural El Olivo,Booking`)
		result, err := svc.ImportReservations(ctx, ImportOptions{Filename: "reservas.csv", Data: data})
		require.NoError(t, err)

		assert.Equal(t, 1, result.ImportedCount)
		require.Len(t, store.reservations, 1)
		saved := store.reservations[0]
		assert.Nil(t, saved.BillingUnitID)
		require.NotNil(t, saved.PropertyConfigID)
		assert.Equal(t, uint(10), *saved.PropertyConfigID)
		// comisión del 20% de la configuración antigua
		assert.Equal(t, "200", saved.ManagerAmount.String())
		assert.Equal(t, "800", saved.OwnerAmount.String())
	})

	t.Run("el registro de auditoría se guarda siempre", func(t *testing.T) {
		store := newFakeStore()
		svc := testImportService(store)

		data := importCSV(importHeader,
			`HM001,2025-05-10,2025-05-13,3,ok,1000,0,Piso Centro,Airbnb`)
		_, err := svc.ImportReservations(ctx, ImportOptions{Filename: "reservas.csv", Data: data})
		require.NoError(t, err)

		require.Len(t, store.logs, 1)
		assert.Equal(t, "reservas.csv", store.logs[0].Filename)
		assert.Equal(t, "CSV", store.logs[0].Source)
		assert.Equal(t, 1, store.logs[0].ImportedCount)
	})

	t.Run("fichero ilegible aborta pero deja registro", func(t *testing.T) {
		store := newFakeStore()
		svc := testImportService(store)

		_, err := svc.ImportReservations(ctx, ImportOptions{Filename: "reservas.csv", Data: []byte("")})
		assert.Error(t, err)
		require.Len(t, store.logs, 1)
		assert.Equal(t, 0, store.logs[0].TotalRows)
	})
}
