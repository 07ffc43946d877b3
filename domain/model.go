package domain

// SceneStatus is the terminal state of a single scene in the pipeline.
type SceneStatus string

const (
	SceneCompleted SceneStatus = "completed"
	SceneFailed    SceneStatus = "failed"
)

// ProjectStatus summarizes how many scenes of a project survived the pipeline.
type ProjectStatus string

const (
	ProjectCompleted          ProjectStatus = "completed"
	ProjectPartiallyCompleted ProjectStatus = "partially_completed"
	ProjectFailed             ProjectStatus = "failed"
)

// LocalArtifactPrefix tags renderer results that are files on the renderer
// host rather than fetchable URLs. Callers must not treat tagged values as
// playable links.
const LocalArtifactPrefix = "local-file:"

// DefaultTopic is used when a render request carries no user idea.
const DefaultTopic = "User's Animation Project"

// StoryboardScene is one entry of the high-level plan produced from a user
// idea. All three fields are required.
type StoryboardScene struct {
	Title             string `json:"scene_title"`
	Narration         string `json:"narration"`
	VisualDescription string `json:"visual_description"`
}

func (s StoryboardScene) Valid() bool {
	return s.Title != "" && s.Narration != "" && s.VisualDescription != ""
}

// SceneGenerationRequest carries everything the scene program generator needs
// to produce the animation code for a single scene.
type SceneGenerationRequest struct {
	Narration            string
	VisualDescription    string
	SceneNumber          int
	TotalScenes          int
	Topic                string
	PreviousSceneContext string
}

// SceneOutcome records the result of the pipeline for one scene. Outcomes are
// append-only: once produced they are never revised.
type SceneOutcome struct {
	SceneNumber      int         `json:"scene_number"`
	Title            string      `json:"scene_title"`
	Narration        string      `json:"narration"`
	GeneratedProgram string      `json:"manim_code_generated"`
	Status           SceneStatus `json:"status"`
	VideoURL         string      `json:"video_url,omitempty"`
	ErrorMessage     string      `json:"error_message,omitempty"`
}

// ProjectResult is the aggregate returned once every scene has been attempted.
type ProjectResult struct {
	ProjectID  string            `json:"projectId"`
	Topic      string            `json:"userIdea"`
	Storyboard []StoryboardScene `json:"storyboard"`
	Scenes     []SceneOutcome    `json:"scenes"`
	Status     ProjectStatus     `json:"status"`
}

// DeriveProjectStatus maps scene outcomes to the overall project status:
// every scene completed means completed, none means failed, anything in
// between is partially completed.
func DeriveProjectStatus(scenes []SceneOutcome) ProjectStatus {
	completed := 0
	for _, scene := range scenes {
		if scene.Status == SceneCompleted {
			completed++
		}
	}
	switch {
	case len(scenes) > 0 && completed == len(scenes):
		return ProjectCompleted
	case completed > 0:
		return ProjectPartiallyCompleted
	default:
		return ProjectFailed
	}
}
