package codec

// migration upgrades a layer record from one schema version to the next.
// Each step is pure: it backfills exactly the fields its target version
// introduced and bumps the record's version by one.
type migration struct {
	from  int
	apply func(*LayerRecord)
}

// migrations is the ordered pipeline. A record at version N has
// migrations[N-1:] applied in sequence.
var migrations = []migration{
	{from: 1, apply: migrateV1toV2},
}

// migrateV1toV2 backfills the fields introduced in schema version 2:
// zero content offsets, identity scale, no rotation, and an empty effect
// list.
func migrateV1toV2(r *LayerRecord) {
	if r.OffsetX == nil {
		r.OffsetX = ptr(0.0)
	}
	if r.OffsetY == nil {
		r.OffsetY = ptr(0.0)
	}
	if r.Rotation == nil {
		r.Rotation = ptr(0.0)
	}
	if r.ScaleX == nil {
		r.ScaleX = ptr(1.0)
	}
	if r.ScaleY == nil {
		r.ScaleY = ptr(1.0)
	}
	if r.Effects == nil {
		r.Effects = []EffectRecord{}
	}
}

// MigrateLayer upgrades a record to [CurrentVersion]. Records without a
// version are treated as version 1. Migrating an already-current record
// is a no-op, so the function is idempotent.
func MigrateLayer(r LayerRecord) LayerRecord {
	if r.SchemaVersion <= 0 {
		r.SchemaVersion = 1
	}
	for _, m := range migrations {
		if r.SchemaVersion == m.from {
			m.apply(&r)
			r.SchemaVersion++
		}
	}
	return r
}

// MigrateDocument upgrades every layer record in the document and stamps
// the document with the current schema version.
func MigrateDocument(r DocumentRecord) DocumentRecord {
	for i := range r.Layers {
		r.Layers[i] = MigrateLayer(r.Layers[i])
	}
	r.Version = CurrentVersion
	return r
}
