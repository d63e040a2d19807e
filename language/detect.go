package language

import (
	"path/filepath"
	"strings"
)

// ExtensionToLanguage maps file extensions (without dot) to display names.
// The set leans toward the formats that actually grow to indexing size:
// logs, line-delimited data, dumps and exports, plus the common source
// languages.
var ExtensionToLanguage = map[string]string{
	// Logs and line-delimited data
	"log":    "Log",
	"jsonl":  "JSON Lines",
	"ndjson": "JSON Lines",
	"csv":    "CSV",
	"tsv":    "TSV",
	"txt":    "Text",
	// Dumps and interchange
	"sql":  "SQL",
	"json": "JSON", "jsonc": "JSON",
	"xml": "XML", "xsl": "XML",
	"yaml": "YAML", "yml": "YAML",
	"toml": "TOML",
	"ini":  "INI",
	"env":  "Env",
	// Markup
	"md": "Markdown", "mdx": "Markdown",
	"rst":  "reStructuredText",
	"html": "HTML", "htm": "HTML",
	"css": "CSS", "scss": "SCSS",
	"svg": "SVG",
	// Source
	"go": "Go",
	"js": "JavaScript", "jsx": "JavaScript", "mjs": "JavaScript",
	"ts": "TypeScript", "tsx": "TypeScript",
	"py": "Python", "pyi": "Python",
	"rs":   "Rust",
	"java": "Java", "kt": "Kotlin",
	"c": "C", "h": "C",
	"cpp": "C++", "cc": "C++", "hpp": "C++",
	"cs":    "C#",
	"rb":    "Ruby",
	"php":   "PHP",
	"swift": "Swift",
	"sh":    "Shell", "bash": "Shell", "zsh": "Shell",
	"ps1":   "PowerShell",
	"lua":   "Lua",
	"proto": "Protobuf",
	"tf":    "Terraform",
	"bat":   "Batch", "cmd": "Batch",
}

// DetectLanguage returns the display language for a file path: well-known
// basenames first (Makefile, .gitignore and friends have no usable
// extension), then the extension table. Returns "Unknown" when nothing
// matches.
func DetectLanguage(filePath string) string {
	switch strings.ToLower(filepath.Base(filePath)) {
	case "makefile", "gnumakefile":
		return "Makefile"
	case "dockerfile", "containerfile":
		return "Dockerfile"
	case "gemfile", "rakefile":
		return "Ruby"
	case ".gitignore", ".gitattributes":
		return "Git Config"
	case ".env":
		return "Env"
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	if lang, ok := ExtensionToLanguage[ext]; ok {
		return lang
	}
	return "Unknown"
}
