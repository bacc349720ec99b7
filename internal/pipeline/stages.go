package pipeline

// Stage identifies one of the six ordered pipeline stages.
type Stage int

const (
	StageBrandAnalysis Stage = iota
	StageContentPlan
	StageWriting
	StageEditing
	StageSchema
	StageOutput
)

func (s Stage) String() string {
	names := [...]string{
		"brand-analysis",
		"content-plan",
		"writing",
		"editing",
		"schema",
		"output",
	}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// stageParams are the sampling parameters one agent uses for its call.
type stageParams struct {
	Temperature     float32
	MaxOutputTokens int32
}

// StageSpec describes one entry of the fixed stage table. Recoverable marks
// a stage whose failure is replaced by a synthetic result instead of
// aborting the pipeline; today only brand analysis opts in.
type StageSpec struct {
	Stage       Stage
	Title       string
	Weight      int
	Recoverable bool
}

// stageTable is the fixed execution order with progress weights summing
// to 100.
var stageTable = []StageSpec{
	{Stage: StageBrandAnalysis, Title: "Analyzing brand voice", Weight: 10, Recoverable: true},
	{Stage: StageContentPlan, Title: "Planning content structure", Weight: 15},
	{Stage: StageWriting, Title: "Writing draft", Weight: 30},
	{Stage: StageEditing, Title: "Editing and scoring", Weight: 25},
	{Stage: StageSchema, Title: "Generating structured markup", Weight: 10},
	{Stage: StageOutput, Title: "Rendering output", Weight: 10},
}

// progressBefore returns cumulative progress before the given stage runs.
func progressBefore(s Stage) int {
	sum := 0
	for _, spec := range stageTable {
		if spec.Stage == s {
			return sum
		}
		sum += spec.Weight
	}
	return sum
}

// progressAfter returns cumulative progress once the given stage completed.
func progressAfter(s Stage) int {
	sum := 0
	for _, spec := range stageTable {
		sum += spec.Weight
		if spec.Stage == s {
			return sum
		}
	}
	return sum
}

func specFor(s Stage) StageSpec {
	for _, spec := range stageTable {
		if spec.Stage == s {
			return spec
		}
	}
	return StageSpec{Stage: s, Title: s.String()}
}
