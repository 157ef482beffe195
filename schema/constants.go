package schema

import (
	"path"
	"strings"
)

// Custom string types for type safety.
type (
	// Language represents a supported source language.
	Language string

	// OutputMode represents the format of the summary output.
	OutputMode string

	// Severity represents how serious an issue is.
	Severity string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string
)

// All languages supported by the metrics engine.
const (
	PythonLang     Language = "python"
	JavaLang       Language = "java"
	GoLang         Language = "go"
	JavaScriptLang Language = "javascript"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All issue severities.
const (
	InfoSeverity    Severity = "info"
	WarningSeverity Severity = "warning"
	ErrorSeverity   Severity = "error"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllLanguages returns a list of all supported languages.
var AllLanguages = []Language{PythonLang, JavaLang, GoLang, JavaScriptLang}

// ValidLanguages lists all valid languages.
var ValidLanguages = map[Language]struct{}{
	PythonLang:     {},
	JavaLang:       {},
	GoLang:         {},
	JavaScriptLang: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// languageExtensions maps file extensions to languages.
var languageExtensions = map[string]Language{
	".py":   PythonLang,
	".java": JavaLang,
	".go":   GoLang,
	".js":   JavaScriptLang,
	".jsx":  JavaScriptLang,
	".mjs":  JavaScriptLang,
}

// LanguageForPath returns the language of a file path by extension.
// The second return value is false for unsupported extensions.
func LanguageForPath(p string) (Language, bool) {
	ext := strings.ToLower(path.Ext(p))
	lang, ok := languageExtensions[ext]
	return lang, ok
}

// Extensions returns the file extensions associated with a language.
func (l Language) Extensions() []string {
	var exts []string
	for ext, lang := range languageExtensions {
		if lang == l {
			exts = append(exts, ext)
		}
	}
	return exts
}
