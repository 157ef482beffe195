package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/docu3c/autocodex/schema"
)

// Default values for configuration.
const (
	DefaultMaxFiles  = 20
	MaxFilesLimit    = 100
	DefaultPrecision = 1
	DefaultModel     = "gemini-2.0-flash"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// LanguageRulesRaw holds per-language rule threshold overrides from the YAML
// config file. Use pointers so absent fields fall back to defaults.
type LanguageRulesRaw struct {
	MaxLineLength     *int `mapstructure:"max_line_length"`
	MaxFunctionLength *int `mapstructure:"max_function_length"`
	MaxComplexity     *int `mapstructure:"max_complexity"`
	MaxDuplication    *int `mapstructure:"max_duplication"`
}

// RulesRawInput holds all rule override definitions from the YAML config file.
type RulesRawInput struct {
	Python     *LanguageRulesRaw `mapstructure:"python"`
	Java       *LanguageRulesRaw `mapstructure:"java"`
	Go         *LanguageRulesRaw `mapstructure:"go"`
	JavaScript *LanguageRulesRaw `mapstructure:"javascript"`
}

// Config holds the runtime configuration for a review.
// This struct remains the "final, validated" config.
type Config struct {
	Owner string
	Repo  string

	GitHubToken  string // Please use env var as this is plaintext
	GeminiAPIKey string // Please use env var as this is plaintext
	Model        string

	MaxFiles   int
	Languages  []schema.Language
	PathFilter string // Only review paths under this prefix
	Excludes   []string

	Precision     int
	Output        schema.OutputMode
	OutputFile    string
	ReportFile    string
	DashboardFile string
	Width         int // Terminal width override (0 = auto-detect)

	UseColors bool
	LintTools bool // Run pylint/pmd when available
	NoAI      bool // Skip generative suggestions entirely

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// Rules is the final threshold set per language, computed from
	// defaults + config file overrides.
	Rules map[schema.Language]schema.RuleSet
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoArg string

	// --- Fields from rootCmd.PersistentFlags() ---
	GitHubToken      string `mapstructure:"github-token"`
	GeminiAPIKey     string `mapstructure:"gemini-api-key"`
	Model            string `mapstructure:"model"`
	MaxFiles         int    `mapstructure:"max-files"`
	Languages        string `mapstructure:"languages"`
	Filter           string `mapstructure:"filter"`
	Exclude          string `mapstructure:"exclude"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	ReportFile       string `mapstructure:"report-file"`
	DashboardFile    string `mapstructure:"dashboard-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	Lint             string `mapstructure:"lint"`
	NoAI             string `mapstructure:"no-ai"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Rule overrides from config file ---
	Rules RulesRawInput `mapstructure:"rules"`
}

// Clone returns a deep copy of the config so per-request overrides never
// mutate the shared base configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Languages = append([]schema.Language(nil), c.Languages...)
	clone.Excludes = append([]string(nil), c.Excludes...)
	clone.Rules = make(map[schema.Language]schema.RuleSet, len(c.Rules))
	for lang, rs := range c.Rules {
		conventions := make(map[string]string, len(rs.NamingConventions))
		for k, v := range rs.NamingConventions {
			conventions[k] = v
		}
		rs.NamingConventions = conventions
		clone.Rules[lang] = rs
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := processRepoArg(cfg, input); err != nil {
		return err
	}
	return ProcessAndValidateServer(cfg, input)
}

// ProcessAndValidateServer runs all parsing and validation except the
// repository argument. Used by commands where the repository is supplied
// later (MCP tool calls) or not needed at all (rules, check).
func ProcessAndValidateServer(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processRuleOverrides(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateCredentials checks that the tokens needed for a live review are set.
// Commands that never touch the network skip this check.
func ValidateCredentials(cfg *Config) error {
	if cfg.GitHubToken == "" {
		return fmt.Errorf("GitHub token is required: set AUTOCODEX_GITHUB_TOKEN or --github-token")
	}
	if cfg.GeminiAPIKey == "" && !cfg.NoAI {
		return fmt.Errorf("Gemini API key is required: set AUTOCODEX_GEMINI_API_KEY or --gemini-api-key")
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// processRepoArg splits the positional "owner/repo" argument.
func processRepoArg(cfg *Config, input *ConfigRawInput) error {
	arg := strings.TrimSpace(input.RepoArg)
	if arg == "" {
		return fmt.Errorf("repository argument is required in 'owner/repo' form")
	}

	// Tolerate a full URL prefix like https://github.com/owner/repo
	arg = strings.TrimSuffix(arg, "/")
	if idx := strings.Index(arg, "github.com/"); idx >= 0 {
		arg = arg[idx+len("github.com/"):]
	}
	arg = strings.TrimSuffix(arg, ".git")

	parts := strings.Split(arg, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid repository '%s'. expected 'owner/repo'", input.RepoArg)
	}
	cfg.Owner = parts[0]
	cfg.Repo = parts[1]
	return nil
}

// validateSimpleInputs processes and validates all non-backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.GitHubToken = input.GitHubToken
	cfg.GeminiAPIKey = input.GeminiAPIKey
	cfg.OutputFile = input.OutputFile
	cfg.ReportFile = input.ReportFile
	cfg.DashboardFile = input.DashboardFile
	cfg.Width = input.Width
	cfg.PathFilter = strings.TrimSpace(input.Filter)

	cfg.Model = strings.TrimSpace(input.Model)
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// Parse lint flag
	lint, err := ParseBoolString(input.Lint)
	if err != nil {
		return fmt.Errorf("invalid --lint value: %w", err)
	}
	cfg.LintTools = lint

	// Parse no-ai flag
	noAI, err := ParseBoolString(input.NoAI)
	if err != nil {
		return fmt.Errorf("invalid --no-ai value: %w", err)
	}
	cfg.NoAI = noAI

	// --- 1. MaxFiles Validation ---
	if input.MaxFiles <= 0 || input.MaxFiles > MaxFilesLimit {
		return fmt.Errorf("max-files must be greater than 0 and cannot exceed %d (received %d)", MaxFilesLimit, input.MaxFiles)
	}
	cfg.MaxFiles = input.MaxFiles

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 3. Languages Processing ---
	cfg.Languages = nil
	if input.Languages != "" {
		for _, p := range strings.Split(input.Languages, ",") {
			name := schema.Language(strings.ToLower(strings.TrimSpace(p)))
			if name == "" {
				continue
			}
			if _, ok := schema.ValidLanguages[name]; !ok {
				return fmt.Errorf("invalid language '%s'. must be python, java, go, javascript", name)
			}
			cfg.Languages = append(cfg.Languages, name)
		}
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = append(cfg.Languages, schema.AllLanguages...)
	}

	// --- 4. Excludes Processing ---
	defaults := []string{
		"vendor/", "node_modules/", "dist/", "build/", "out/", "target/", "bin/",
		".min.js",
		"_test.go", "test_", "Test.java",
	}
	cfg.Excludes = defaults // Set defaults first

	if input.Exclude != "" {
		for _, p := range strings.Split(input.Exclude, ",") {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
			return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
		}
		cfg.HistoryDBConnect = input.HistoryDBConnect
		if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			return err
		}

		// Validate that cache and history use different databases
		if cfg.CacheBackend == cfg.HistoryBackend && cfg.CacheBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			historyDBPath := cfg.HistoryDBConnect
			if historyDBPath == "" {
				historyDBPath = GetHistoryDBFilePath()
			}
			if cacheDBPath == historyDBPath {
				return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
			}
		}
	}

	return nil
}

// processRuleOverrides merges config file rule overrides into the language defaults.
func processRuleOverrides(cfg *Config, input *ConfigRawInput) error {
	rules := schema.DefaultRuleSets()

	overrides := map[schema.Language]*LanguageRulesRaw{
		schema.PythonLang:     input.Rules.Python,
		schema.JavaLang:       input.Rules.Java,
		schema.GoLang:         input.Rules.Go,
		schema.JavaScriptLang: input.Rules.JavaScript,
	}

	for lang, raw := range overrides {
		if raw == nil {
			continue
		}
		rs := rules[lang]
		if raw.MaxLineLength != nil {
			rs.MaxLineLength = *raw.MaxLineLength
		}
		if raw.MaxFunctionLength != nil {
			rs.MaxFunctionLength = *raw.MaxFunctionLength
		}
		if raw.MaxComplexity != nil {
			rs.MaxComplexity = *raw.MaxComplexity
		}
		if raw.MaxDuplication != nil {
			rs.MaxDuplication = *raw.MaxDuplication
		}
		for field, value := range map[string]int{
			"max_line_length":     rs.MaxLineLength,
			"max_function_length": rs.MaxFunctionLength,
			"max_complexity":      rs.MaxComplexity,
			"max_duplication":     rs.MaxDuplication,
		} {
			if value <= 0 {
				return fmt.Errorf("rule override %s.%s must be greater than 0 (received %d)", lang, field, value)
			}
		}
		rules[lang] = rs
	}

	cfg.Rules = rules
	return nil
}
