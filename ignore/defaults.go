package ignore

// DefaultIgnorePatterns lists what a file walk always skips: trees that hold
// no editable text and binary formats that cannot be line-addressed. Plain
// big text (logs, CSV exports, SQL dumps, minified bundles) is deliberately
// NOT here; those are the files this server exists for. Bare names match any
// path component, globs match the basename, all lowercase.
var DefaultIgnorePatterns = []string{
	// Version control internals
	".git",
	".svn",
	".hg",

	// Dependency trees
	"node_modules",
	"bower_components",
	".npm",
	".yarn",

	// Python environments
	"__pycache__",
	"*.pyc",
	".venv",
	"venv",

	// IDE / editor leftovers
	".idea",
	".vscode",
	"*.swp",
	"*.swo",
	"*~",

	// OS noise
	".ds_store",
	"thumbs.db",
	"desktop.ini",

	// Compiled artifacts
	"*.exe",
	"*.dll",
	"*.so",
	"*.dylib",
	"*.o",
	"*.a",
	"*.class",
	"*.jar",
	"*.wasm",

	// Archives
	"*.zip",
	"*.tar",
	"*.gz",
	"*.tgz",
	"*.bz2",
	"*.xz",
	"*.zst",
	"*.rar",
	"*.7z",

	// Images
	"*.png",
	"*.jpg",
	"*.jpeg",
	"*.gif",
	"*.bmp",
	"*.ico",
	"*.webp",
	"*.tiff",

	// Fonts
	"*.woff",
	"*.woff2",
	"*.ttf",
	"*.eot",
	"*.otf",

	// Audio / video
	"*.mp3",
	"*.mp4",
	"*.avi",
	"*.mov",
	"*.mkv",
	"*.wav",
	"*.flac",

	// Binary documents
	"*.pdf",
	"*.doc",
	"*.docx",
	"*.xls",
	"*.xlsx",
	"*.ppt",
	"*.pptx",

	// Binary databases
	"*.sqlite",
	"*.sqlite3",
	"*.db",
	"*.parquet",
}
