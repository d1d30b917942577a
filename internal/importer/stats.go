// Package importer contains the legacy translation and import batch
// drivers: directory walking, foreign-key validation, upsert-or-skip
// decisions, and run statistics.
//
// Per-record failures never unwind past the per-file loop; a run only
// fails outright when the source directory or configuration is unusable.
package importer

import (
	"fmt"
	"sort"
	"strings"
)

// Stats tracks counts and warnings accumulated across one run.
type Stats struct {
	Processed int
	Created   int
	Updated   int
	Skipped   int
	Errors    int

	IGroupsCreated int
	FGroupsCreated int
	Subtypes       map[string]int

	MissingAreaMappings      int
	MissingCommunityMappings int

	Failures []string
}

// AddSubtype records one facilitation-group subtype outcome.
func (s *Stats) AddSubtype(subtype string) {
	if s.Subtypes == nil {
		s.Subtypes = make(map[string]int)
	}
	s.Subtypes[subtype]++
}

// AddFailure records a per-record failure message and bumps the error count.
func (s *Stats) AddFailure(format string, args ...any) {
	s.Errors++
	s.Failures = append(s.Failures, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable one-line summary of the run.
func (s *Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "processed=%d created=%d updated=%d skipped=%d errors=%d",
		s.Processed, s.Created, s.Updated, s.Skipped, s.Errors)
	if s.IGroupsCreated > 0 || s.FGroupsCreated > 0 {
		fmt.Fprintf(&b, " i_groups=%d f_groups=%d", s.IGroupsCreated, s.FGroupsCreated)
	}
	if len(s.Subtypes) > 0 {
		keys := make([]string, 0, len(s.Subtypes))
		for k := range s.Subtypes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%d", strings.ReplaceAll(strings.ToLower(k), " ", "_"), s.Subtypes[k])
		}
	}
	if s.MissingAreaMappings > 0 || s.MissingCommunityMappings > 0 {
		fmt.Fprintf(&b, " missing_area_mappings=%d missing_community_mappings=%d",
			s.MissingAreaMappings, s.MissingCommunityMappings)
	}
	return b.String()
}
