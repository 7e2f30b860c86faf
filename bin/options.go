package bin

import "go.uber.org/zap"

// ReadOptions controls how Read interprets a parsed scene, mirroring the
// format's read_flags.
type ReadOptions struct {
	// Logger receives non-fatal parse conditions (missing RGBA chunk,
	// dangling layer reference, ...). A nil Logger falls back to the
	// vlog package's default, which is a no-op unless a caller has
	// installed one with vlog.SetLogger.
	Logger *zap.Logger

	// KeepEmptyModelInstances keeps instances whose model turned out to be
	// empty instead of dropping them during post-processing.
	KeepEmptyModelInstances bool
	// KeepDuplicateModels skips the deduplication post-processing pass.
	KeepDuplicateModels bool
	// KeepGroups keeps the flattener's resolved group table in the output
	// scene. When false, Groups is empty and every instance's GroupIndex is
	// reset to vox.NoParentGroup: each instance's world Transform already
	// bakes in every ancestor group's static transform, so nothing but the
	// ability to re-sample an ancestor's keyframed transform is lost.
	KeepGroups bool
	// Keyframes, when false, discards animation data read from nTRN/nSHP
	// frames after the static (frame-0) values have been applied.
	Keyframes bool
	// MaterialInfo, when false, discards round-tripped MATL/MATT chunks.
	MaterialInfo bool
}

// DefaultReadOptions keeps groups, keyframes, and material chunks.
// Duplicate models are still merged and empty models (with their
// instances) are still dropped.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{KeepGroups: true, Keyframes: true, MaterialInfo: true}
}

// WriteOptions controls chunk-writer emission.
type WriteOptions struct {
	// Version is the file-format version written to the header. Zero
	// selects the writer's default of 150.
	Version uint32
}

// DefaultWriteOptions returns the writer's canonical defaults.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Version: defaultVersion}
}
