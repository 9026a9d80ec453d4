package domain

// ProjectMetadata describes one SDK project found in the workspace through its
// elrond.json descriptor.
type ProjectMetadata struct {
	Path                   string `json:"path" yaml:"path"`
	ProjectPath            string `json:"projectPath" yaml:"projectPath"`
	ProjectPathInWorkspace string `json:"projectPathInWorkspace" yaml:"projectPathInWorkspace"`
	ProjectName            string `json:"projectName" yaml:"projectName"`
	Language               string `json:"language" yaml:"language"`
}

// MetadataFileName is the per-project descriptor file.
const MetadataFileName = "elrond.json"

// WorkspaceFileName marks the root of a workspace.
const WorkspaceFileName = "elrond.workspace.json"
