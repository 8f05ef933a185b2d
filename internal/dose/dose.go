// Package dose estimates nicotine intake from what the user consumed.
package dose

import (
	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/models"
)

// EstimateMg returns the estimated milligrams of nicotine for quantity units
// of source at the given strength. Non-positive input yields 0.
//
// Strength is mg/ml for Vape (quantity is puffs), mg per cigarette for
// Cigarettes and mg per portion for Snus.
func EstimateMg(source models.Source, quantity, strengthPerUnit float64) float64 {
	if quantity <= 0 || strengthPerUnit <= 0 {
		return 0
	}

	switch source {
	case models.SourceVape:
		return strengthPerUnit / constants.PuffsPerMl * quantity
	case models.SourceCigarettes, models.SourceSnus:
		return strengthPerUnit * quantity
	default:
		return 0
	}
}

// UnitFor returns the unit label stored alongside an amount of source
func UnitFor(source models.Source) string {
	switch source {
	case models.SourceVape:
		return "puffs"
	case models.SourceCigarettes:
		return "cigarettes"
	case models.SourceSnus:
		return "portions"
	default:
		return ""
	}
}

// StrengthUnitFor returns the unit the strength of source is expressed in
func StrengthUnitFor(source models.Source) string {
	switch source {
	case models.SourceVape:
		return "mg/ml"
	case models.SourceCigarettes:
		return "mg/cigarette"
	case models.SourceSnus:
		return "mg/portion"
	default:
		return ""
	}
}

// DefaultStrength returns the strength pre-filled in entry forms
func DefaultStrength(source models.Source) float64 {
	switch source {
	case models.SourceVape:
		return constants.DefaultVapeStrength
	case models.SourceCigarettes:
		return constants.DefaultCigaretteStrength
	case models.SourceSnus:
		return constants.DefaultSnusStrength
	default:
		return 0
	}
}
