package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/ctxlog"
	"github.com/vk/legcfg/internal/fsutil"
	"github.com/vk/legcfg/internal/schema"
)

// Extension is the file extension of robot definition files.
const Extension = ".hcl"

// AssetsDirVar is the expression variable holding the asset root.
const AssetsDirVar = "assets_dir"

var _ config.Loader = (*Loader)(nil)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	assetsDir string
}

// NewLoader creates a new HCL configuration loader. assetsDir is exposed to
// expressions as the `assets_dir` variable.
func NewLoader(assetsDir string) *Loader {
	return &Loader{assetsDir: assetsDir}
}

// fileSchema lists the blocks allowed at the top level of a file. Anything
// else is reported as an error with its position.
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: schema.RobotBlockType, LabelNames: []string{"name"}},
	},
}

// Load parses every .hcl file found under paths and translates each `robot`
// block into a definition, in file order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()
	evalCtx := l.evalContext()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		content, diags := hclFile.Body.Content(fileSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range content.Blocks {
			var body schema.Robot
			if diags := gohcl.DecodeBody(block.Body, evalCtx, &body); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode robot %q in %s: %w", block.Labels[0], file, diags)
			}
			def, err := translateRobot(block, &body, filepath.Dir(file))
			if err != nil {
				return nil, err
			}
			logger.Debug("Translated robot block.", "name", def.Name, "source", def.Source, "extends", def.Extends)
			model.Robots = append(model.Robots, def)
		}
	}

	logger.Debug("HCL loading complete.", "files", len(files), "robots", len(model.Robots))
	return model, nil
}

// evalContext returns the variables and functions available to expressions.
func (l *Loader) evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			AssetsDirVar: cty.StringVal(l.assetsDir),
		},
		Functions: map[string]function.Function{
			"abs":    stdlib.AbsoluteFunc,
			"concat": stdlib.ConcatFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"lower":  stdlib.LowerFunc,
			"max":    stdlib.MaxFunc,
			"min":    stdlib.MinFunc,
			"upper":  stdlib.UpperFunc,
		},
	}
}
