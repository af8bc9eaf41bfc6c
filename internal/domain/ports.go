package domain

// ProjectScanner walks a project directory and returns candidate source files.
type ProjectScanner interface {
	Scan(projectPath string, excludePaths ...string) (*ScanResult, error)
}

// SourceReader loads the contents of one source file. Files larger than
// limit bytes are rejected with ErrFileTooLarge; limit <= 0 disables the check.
type SourceReader interface {
	ReadSource(path string, limit int64) ([]byte, error)
}

// SyntaxParser turns a source file into the syntax facts used for structural
// augmentation. A file that does not parse yields an error wrapping ErrSyntax.
type SyntaxParser interface {
	Parse(path string, src []byte) ([]SyntaxNode, error)
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// RevisionReader reports the version-control revision of a project.
type RevisionReader interface {
	IsGitRepo(projectPath string) bool
	Revision(projectPath string) (Revision, error)
}

// Revision identifies the checked-out state of a repository.
type Revision struct {
	Commit string `json:"commit"`
	Branch string `json:"branch,omitempty"`
}

// ScanResult holds the result of scanning a project directory. File paths are
// relative to RootPath, in lexical walk order.
type ScanResult struct {
	RootPath    string   `json:"root_path"`
	GoFiles     []string `json:"go_files"`
	PythonFiles []string `json:"python_files"`
}

// SourceFiles returns Go files followed by Python files.
func (s *ScanResult) SourceFiles() []string {
	files := make([]string, 0, len(s.GoFiles)+len(s.PythonFiles))
	files = append(files, s.GoFiles...)
	files = append(files, s.PythonFiles...)
	return files
}
