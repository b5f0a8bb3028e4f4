package models

// FileStatus is the change status a diff provider reports for a file
type FileStatus string

const (
	StatusAdded     FileStatus = "added"
	StatusModified  FileStatus = "modified"
	StatusRemoved   FileStatus = "removed"
	StatusRenamed   FileStatus = "renamed"
	StatusCopied    FileStatus = "copied"
	StatusChanged   FileStatus = "changed"
	StatusUnchanged FileStatus = "unchanged"
)

// ChangedFileRecord describes one file touched by a pull request
type ChangedFileRecord struct {
	Filename  string     `json:"filename"`
	Status    FileStatus `json:"status"`
	Additions int        `json:"additions"`
	Deletions int        `json:"deletions"`
}

// PullRequestIdentity identifies the pull/merge request a run is working on
type PullRequestIdentity struct {
	Repository string `json:"repository"` // owner/name on GitHub, project path or ID on GitLab
	Number     int    `json:"number"`
	HeadSHA    string `json:"head_sha"`
}

// GeneratedTestArtifact is the test source produced for a single input file
type GeneratedTestArtifact struct {
	SourcePath string `json:"source_path"`
	TargetPath string `json:"target_path"`
	SourceText string `json:"-"`
}
