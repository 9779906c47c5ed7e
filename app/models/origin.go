package models

// Origin tags whether a record came from the seed catalogue or was created
// by a user. Seed records are immutable: never edited, never deleted.
type Origin string

const (
	// OriginSeed marks catalogue content shipped with the application.
	// The literal "original" matches the legacy persisted data.
	OriginSeed Origin = "original"

	// OriginUser marks records created through store actions.
	OriginUser Origin = "user"
)

// Mutable reports whether records with this origin may be edited or deleted.
func (o Origin) Mutable() bool {
	return o != OriginSeed
}
