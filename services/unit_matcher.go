package services

import (
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Umbral de similitud para aceptar el candidato de closestmatch cuando
// no hay contención directa entre etiqueta y nombre.
const matchSimilarityThreshold = 0.82

// Property es un alojamiento candidato para el matching: una
// BillingUnit o una PropertyBillingConfig antigua.
type Property struct {
	UnitID   *uint
	ConfigID *uint
	Name     string
}

// UnitMatcher casa la etiqueta de alojamiento que trae el export con
// uno de los alojamientos gestionados.
type UnitMatcher struct {
	properties []Property
	normalized []string
	index      *closestmatch.ClosestMatch
}

func NewUnitMatcher(properties []Property) *UnitMatcher {
	normalized := make([]string, len(properties))
	for i, p := range properties {
		normalized[i] = normalizeLabel(p.Name)
	}

	var index *closestmatch.ClosestMatch
	if len(normalized) > 0 {
		index = closestmatch.New(normalized, []int{2, 3})
	}

	return &UnitMatcher{
		properties: properties,
		normalized: normalized,
		index:      index,
	}
}

// Match devuelve el alojamiento que corresponde a la etiqueta, o nil si
// ninguno encaja. La comparación ignora mayúsculas y acentos y acepta
// contención en los dos sentidos (el export suele truncar o ampliar el
// nombre del anuncio).
func (m *UnitMatcher) Match(label string) *Property {
	normalized := normalizeLabel(label)
	if normalized == "" {
		return nil
	}

	for i, name := range m.normalized {
		if name == "" {
			continue
		}
		if strings.Contains(normalized, name) || strings.Contains(name, normalized) {
			return &m.properties[i]
		}
	}

	// Sin contención: se consulta el índice de n-gramas y se acepta el
	// candidato solo si la distancia de edición queda bajo el umbral.
	if m.index != nil {
		candidate := m.index.Closest(normalized)
		if candidate != "" && similarity(normalized, candidate) >= matchSimilarityThreshold {
			for i, name := range m.normalized {
				if name == candidate {
					return &m.properties[i]
				}
			}
		}
	}

	return nil
}

// normalizeLabel limpia la etiqueta: minúsculas y sin acentos
func normalizeLabel(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// similarity calcula la similitud entre dos cadenas a partir de la
// distancia de Levenshtein
func similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}
