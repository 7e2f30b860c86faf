package bin

import (
	"go.uber.org/zap"

	vox "github.com/jpaver/ogtvox"
	voxerrors "github.com/jpaver/ogtvox/errors"

	"github.com/jpaver/ogtvox/flatten"
	"github.com/jpaver/ogtvox/vlog"
)

// Read decodes a complete ".vox" file held in buf into a *vox.Scene. It
// performs the chunk reader's single pass, then the flattener, then the
// post-processing passes, in that dependency order. Non-fatal problems
// accumulate in the returned Errors; a non-nil error means no scene is
// returned at all, per the format's "no partial scene escapes the reader"
// rule.
func Read(buf []byte, opts ReadOptions) (*vox.Scene, voxerrors.Errors, error) {
	logger := opts.Logger
	if logger == nil {
		logger = vlog.L
	}

	rs, warns, err := parseBuffer(buf, logger)
	if err != nil {
		return nil, warns, err
	}

	var result flatten.Result
	if len(rs.Nodes.Nodes) == 0 {
		if len(rs.Models) == 1 {
			result.Instances = []vox.Instance{{Transform: vox.Identity(), ModelIndex: 0, LayerIndex: 0}}
		}
	} else {
		result, err = flatten.Flatten(&rs.Nodes)
		if err != nil {
			return nil, warns, err
		}
	}

	// danglingWarns collects this resolution pass's own complaints
	// separately from parseBuffer's, then Union folds the two lists
	// together (flattening rather than nesting, since both are Errors).
	var danglingWarns voxerrors.Errors

	for i := range result.Instances {
		if result.Instances[i].LayerIndex >= len(rs.Layers) {
			logger.Warn("instance references a layer index past the LAYR table, clamping to 0",
				zap.Int("layerIndex", result.Instances[i].LayerIndex), zap.Int("layerCount", len(rs.Layers)))
			danglingWarns = danglingWarns.Append(voxerrors.ErrDanglingReference)
			result.Instances[i].LayerIndex = 0
		}
	}

	validInstances := make([]vox.Instance, 0, len(result.Instances))
	for _, inst := range result.Instances {
		if inst.ModelIndex < 0 || inst.ModelIndex >= len(rs.Models) {
			logger.Warn("instance references a model index past the model table, dropping instance",
				zap.Int("modelIndex", inst.ModelIndex), zap.Int("modelCount", len(rs.Models)))
			danglingWarns = danglingWarns.Append(voxerrors.ErrDanglingReference)
			continue
		}
		danglingKeyframe := false
		for _, mk := range inst.ModelKeyframes {
			if mk.Model < 0 || mk.Model >= len(rs.Models) {
				logger.Warn("instance's model keyframe references a model index past the model table, dropping instance",
					zap.Int("modelIndex", mk.Model), zap.Int("modelCount", len(rs.Models)))
				danglingWarns = danglingWarns.Append(voxerrors.ErrDanglingReference)
				danglingKeyframe = true
				break
			}
		}
		if danglingKeyframe {
			continue
		}
		validInstances = append(validInstances, inst)
	}
	result.Instances = validInstances

	if u := voxerrors.Union(warns, danglingWarns); u != nil {
		warns = u.(voxerrors.Errors)
	} else {
		warns = nil
	}

	models, instances := postProcess(rs.Models, result.Instances, opts)
	if !opts.Keyframes {
		for i := range instances {
			instances[i].TransformKeyframes = nil
			instances[i].ModelKeyframes = nil
		}
		for i := range result.Groups {
			result.Groups[i].TransformKeyframes = nil
		}
	}

	extra := rs.Extra
	if !opts.MaterialInfo {
		filtered := extra[:0:0]
		for _, e := range extra {
			if e.Sig != sigMATL && e.Sig != sigMATT {
				filtered = append(filtered, e)
			}
		}
		extra = filtered
	}

	groups := result.Groups
	if !opts.KeepGroups {
		groups = nil
		for i := range instances {
			instances[i].GroupIndex = vox.NoParentGroup
		}
	}

	scene := &vox.Scene{
		Models:    models,
		Instances: instances,
		Layers:    rs.Layers,
		Groups:    groups,
		Palette:   rs.Palette,
		Extra:     extra,
	}
	return scene, warns, nil
}
