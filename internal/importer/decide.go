package importer

// Decision is the outcome of the upsert-or-skip check for one record
// against one target table.
type Decision int

const (
	// Insert: no existing row, create it.
	Insert Decision = iota
	// Update: row exists and force mode is on — full field overwrite.
	Update
	// Skip: row exists and force mode is off — leave it untouched.
	Skip
)

func (d Decision) String() string {
	switch d {
	case Insert:
		return "insert"
	case Update:
		return "update"
	default:
		return "skip"
	}
}

// Decide applies the upsert-or-skip table. Evaluated once per record per
// target table; existing data is never touched unless force is set.
func Decide(exists, force bool) Decision {
	switch {
	case !exists:
		return Insert
	case force:
		return Update
	default:
		return Skip
	}
}
