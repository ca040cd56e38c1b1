package doctor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ConfigSyntaxCheck validates that config and env files parse.
type ConfigSyntaxCheck struct {
	files []string
}

var _ Check = (*ConfigSyntaxCheck)(nil)

// NewConfigSyntaxCheck creates a check over files. Missing files are
// reported as info, not errors.
func NewConfigSyntaxCheck(files ...string) *ConfigSyntaxCheck {
	return &ConfigSyntaxCheck{files: files}
}

// Name returns the unique identifier for this check.
func (c *ConfigSyntaxCheck) Name() string {
	return "config-syntax"
}

// Category returns the grouping for this check.
func (c *ConfigSyntaxCheck) Category() string {
	return "config"
}

// syntaxFileResult represents the validation result for a single file.
type syntaxFileResult struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Run executes the syntax validation check across all files.
func (c *ConfigSyntaxCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Details:  make(map[string]any),
	}

	var fileResults []syntaxFileResult
	var errorCount, passCount, infoCount int

	for _, path := range c.files {
		if path == "" {
			continue
		}
		fr := c.validateFile(path)
		fileResults = append(fileResults, fr)
		switch fr.Status {
		case "pass":
			passCount++
		case "error":
			errorCount++
		case "info":
			infoCount++
		}
	}

	result.Details["files"] = fileResults
	result.Details["checked"] = len(fileResults)
	result.Details["passed"] = passCount
	result.Details["errors"] = errorCount
	result.Details["missing"] = infoCount

	switch {
	case errorCount > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d config file(s) have syntax errors", errorCount)
		result.FixHint = "review the error details and fix the syntax in each file"
	case passCount > 0:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d config file(s) validated successfully", passCount)
	default:
		result.Status = SeverityInfo
		result.Message = "no config files found; using defaults and environment"
	}

	return result
}

// validateFile checks if a file is syntactically valid.
func (c *ConfigSyntaxCheck) validateFile(filePath string) syntaxFileResult {
	fr := syntaxFileResult{Path: filePath}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fr.Status = "info"
			fr.Message = "file does not exist (not configured)"
			return fr
		}
		if errors.Is(err, os.ErrPermission) {
			fr.Status = "error"
			fr.Message = fmt.Sprintf("permission denied: %v", err)
			return fr
		}
		fr.Status = "error"
		fr.Message = fmt.Sprintf("read error: %v", err)
		return fr
	}

	// Empty files are valid (no content to parse)
	if len(bytes.TrimSpace(data)) == 0 {
		fr.Status = "pass"
		fr.Message = "empty file"
		return fr
	}

	base := strings.ToLower(filepath.Base(filePath))
	if base == ".env" || strings.HasSuffix(base, ".env") || strings.HasPrefix(base, ".env.") {
		return c.validateEnv(data, fr)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return c.validateJSON(data, fr)
	case ".toml":
		return c.validateTOML(data, fr)
	default:
		return c.validateYAML(data, fr)
	}
}

// validateYAML validates YAML syntax. yaml.v3 errors already carry the line.
func (c *ConfigSyntaxCheck) validateYAML(data []byte, fr syntaxFileResult) syntaxFileResult {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		fr.Status = "error"
		fr.Message = fmt.Sprintf("YAML error: %v", err)
		return fr
	}
	if v != nil {
		if _, ok := v.(map[string]any); !ok {
			fr.Status = "error"
			fr.Message = "YAML error: top level must be a mapping"
			return fr
		}
	}
	fr.Status = "pass"
	return fr
}

// validateEnv validates dotenv syntax.
func (c *ConfigSyntaxCheck) validateEnv(data []byte, fr syntaxFileResult) syntaxFileResult {
	if _, err := godotenv.UnmarshalBytes(data); err != nil {
		fr.Status = "error"
		fr.Message = fmt.Sprintf("dotenv error: %v", err)
		return fr
	}
	fr.Status = "pass"
	return fr
}

// validateJSON validates JSON syntax and returns position info on errors.
func (c *ConfigSyntaxCheck) validateJSON(data []byte, fr syntaxFileResult) syntaxFileResult {
	var v any
	err := json.Unmarshal(data, &v)
	if err != nil {
		fr.Status = "error"
		fr.Message = formatJSONError(err, data)
		return fr
	}
	fr.Status = "pass"
	return fr
}

// validateTOML validates TOML syntax and returns position info on errors.
func (c *ConfigSyntaxCheck) validateTOML(data []byte, fr syntaxFileResult) syntaxFileResult {
	var v any
	err := toml.Unmarshal(data, &v)
	if err != nil {
		fr.Status = "error"
		fr.Message = formatTOMLError(err)
		return fr
	}
	fr.Status = "pass"
	return fr
}

// formatJSONError extracts position information from JSON syntax errors.
func formatJSONError(err error, data []byte) string {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(data, int(syntaxErr.Offset))
		return fmt.Sprintf("JSON syntax error at line %d, column %d: %s", line, col, syntaxErr.Error())
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := offsetToLineCol(data, int(typeErr.Offset))
		return fmt.Sprintf("JSON type error at line %d, column %d: %s", line, col, typeErr.Error())
	}

	return fmt.Sprintf("JSON error: %v", err)
}

// formatTOMLError extracts position information from TOML decode errors.
func formatTOMLError(err error) string {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("TOML syntax error at line %d, column %d: %s",
			row, col, decodeErr.Error())
	}

	return fmt.Sprintf("TOML error: %v", err)
}

// offsetToLineCol converts a byte offset to line and column numbers.
// Lines and columns are 1-indexed.
func offsetToLineCol(data []byte, offset int) (line, col int) {
	if offset > len(data) {
		offset = len(data)
	}
	if offset < 0 {
		offset = 0
	}

	line = 1
	lineStart := 0

	for i := range offset {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	col = offset - lineStart + 1
	return line, col
}
