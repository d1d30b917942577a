// Package translate turns legacy group records into target-schema IGroup
// and FGroup records: classification, field normalization, and schedule
// synthesis. Everything here is pure — resolution against imported areas
// and communities lives in internal/mapping.
package translate

import (
	"regexp"
	"strings"

	"github.com/tcassidy/brotherhood-data/internal/legacy"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

// Kind is the target shape a legacy group maps to.
type Kind string

const (
	KindIGroup Kind = "IGroup"
	KindFGroup Kind = "FGroup"
)

var (
	bareCircleRe = regexp.MustCompile(`\bcircle\b`)
	bareGroupRe  = regexp.MustCompile(`\bgroup\b`)
)

// Classify decides whether a legacy record becomes an IGroup or an FGroup.
// The explicit type field wins over name heuristics; unclassifiable records
// default to IGroup so nothing is ever rejected here.
func Classify(rec *legacy.GroupRecord) Kind {
	typ := strings.ToLower(rec.Type.String())
	if typ != "" {
		if strings.Contains(typ, "i-group") || strings.Contains(typ, "i group") {
			return KindIGroup
		}
		if strings.Contains(typ, "f-group") || strings.Contains(typ, "f group") ||
			strings.Contains(typ, "circle") {
			return KindFGroup
		}
	}

	name := strings.ToLower(rec.Name.String())
	switch {
	case strings.Contains(name, "men's circle"),
		strings.Contains(name, "open circle"),
		strings.Contains(name, "closed circle"),
		bareCircleRe.MatchString(name):
		return KindFGroup
	case strings.Contains(name, "i-group"),
		strings.Contains(name, "i group"),
		strings.Contains(name, "igroup"),
		bareGroupRe.MatchString(name):
		return KindIGroup
	}
	return KindIGroup
}

// ClassifyFGroupSubtype picks one of the four facilitation-group subtypes.
// Only meaningful for records Classify sent to FGroup.
func ClassifyFGroupSubtype(rec *legacy.GroupRecord) string {
	if ParseBool(rec.IsMixedGender.String()) {
		return model.FGroupTypeMixed
	}
	name := strings.ToLower(rec.Name.String())
	if strings.Contains(name, "open") {
		return model.FGroupTypeOpen
	}
	if strings.Contains(name, "closed") ||
		strings.EqualFold(rec.Status.String(), "closed") {
		return model.FGroupTypeClosed
	}
	return model.FGroupTypeMens
}
